package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Create(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Get(ctx context.Context, userID, id string) (*domain.Account, error)
	List(ctx context.Context, userID string) ([]*domain.Account, error)
	Update(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, userID, id string) error
}

// AccountHandler handles account requests.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accounts.Create(r.Context(), req.ToUseCaseInput(session.UserID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// List lists the user's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, []*dto.AccountResponse{})
		return
	}

	accounts, err := h.accounts.List(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Get retrieves one account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.Get(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Update edits account metadata.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := h.accounts.Update(r.Context(), req.ToUseCaseInput(session.UserID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account and its transactions.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Delete(r.Context(), session.UserID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
