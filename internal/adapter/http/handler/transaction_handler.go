package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// LedgerService defines the behavior needed by TransactionHandler.
type LedgerService interface {
	Post(ctx context.Context, input usecase.PostEntryInput) (*domain.Transaction, error)
	Update(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Recent(ctx context.Context, userID string) ([]*domain.Transaction, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
	Summary(ctx context.Context, userID, month string) (*usecase.MonthlySummary, error)
}

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// PostExpense records an expense.
func (h *TransactionHandler) PostExpense(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, domain.TransactionKindExpense)
}

// PostIncome records an income.
func (h *TransactionHandler) PostIncome(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, domain.TransactionKindIncome)
}

// PayBill records a bill payment.
func (h *TransactionHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, domain.TransactionKindBill)
}

func (h *TransactionHandler) post(w http.ResponseWriter, r *http.Request, kind domain.TransactionKind) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.PostTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	txn, err := h.ledger.Post(r.Context(), req.ToUseCaseInput(session.UserID, kind))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Update edits transaction metadata.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	txn, err := h.ledger.Update(r.Context(), req.ToUseCaseInput(session.UserID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete removes a transaction and reverses its balance effect.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Delete(r.Context(), session.UserID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Recent returns the newest transactions across all accounts.
func (h *TransactionHandler) Recent(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, []*dto.TransactionResponse{})
		return
	}

	txns, err := h.ledger.Recent(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// ListByAccount lists transactions for one account.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	txns, err := h.ledger.ListByAccount(r.Context(), usecase.ListByAccountInput{
		UserID:    session.UserID,
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}

// MonthlySummary returns the dashboard aggregate for a month.
func (h *TransactionHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, &usecase.MonthlySummary{})
		return
	}

	summary, err := h.ledger.Summary(r.Context(), session.UserID, r.URL.Query().Get("month"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
