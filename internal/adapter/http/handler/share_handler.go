package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneyman/moneyman/internal/usecase"
)

// ShareService defines the read-only share code operations.
type ShareService interface {
	Issue(ctx context.Context, ownerID string) (*usecase.ShareCode, error)
	Resolve(ctx context.Context, code string) (*usecase.SharedSnapshot, error)
}

// ShareHandler handles QR share codes.
type ShareHandler struct {
	shares ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shares ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

// Generate issues a signed share code for the caller's data.
func (h *ShareHandler) Generate(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	code, err := h.shares.Issue(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, code)
}

// Resolve renders the read-only snapshot behind a share code. No
// session is established.
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.shares.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
