package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Create(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transfer, error)
	Get(ctx context.Context, userID, id string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transfer, error)
}

// TransferHandler handles transfer requests.
type TransferHandler struct {
	transfers TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfers TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Create moves money between accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	transfer, err := h.transfers.Create(r.Context(), req.ToUseCaseInput(session.UserID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get retrieves one transfer.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	transfer, err := h.transfers.Get(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByAccount lists transfers touching one account.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	transfers, err := h.transfers.ListByAccount(r.Context(), usecase.ListByAccountInput{
		UserID:    session.UserID,
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
