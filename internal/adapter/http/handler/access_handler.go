package handler

import (
	"context"
	"net/http"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// AccessService defines the pairing handshake operations.
type AccessService interface {
	Request(ctx context.Context, input usecase.RequestAccessInput) (*domain.AccessGrantRequest, error)
	Approve(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error)
	Reject(ctx context.Context, ownerID, requestID string) error
	Verify(ctx context.Context, requestID, code string) (*usecase.VerifyResult, error)
}

// SharedSessionOpener opens a session on the owner's data after a
// successful code verification.
type SharedSessionOpener interface {
	OpenSharedSession(ctx context.Context, owner *domain.User) (*domain.Session, error)
}

// AccessHandler handles QR pairing requests.
type AccessHandler struct {
	access   AccessService
	sessions SharedSessionOpener
	cookie   CookieConfig
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(access AccessService, sessions SharedSessionOpener, cookie CookieConfig) *AccessHandler {
	return &AccessHandler{access: access, sessions: sessions, cookie: cookie}
}

// Request starts the handshake. The requesting device needs no session:
// it identifies the owner and account from the scanned QR payload.
func (h *AccessHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.AccessRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	grant, err := h.access.Request(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccessRequestFromDomain(grant))
}

// Approve resolves a pending request. Approving releases the one-time
// code to the owner's devices; rejecting drops the record so the code
// is never issued. Only the owner's session may resolve.
func (h *AccessHandler) Approve(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.AccessApproveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !req.Approve {
		if err := h.access.Reject(r.Context(), session.UserID, req.RequestID); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
		return
	}

	grant, err := h.access.Approve(r.Context(), session.UserID, req.RequestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccessRequestFromDomain(grant))
}

// Verify redeems the code and opens a shared-access session on the
// owner's data.
func (h *AccessHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.AccessVerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.access.Verify(r.Context(), req.RequestID, req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	session, err := h.sessions.OpenSharedSession(r.Context(), result.Owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	setSessionCookie(w, h.cookie, session.ID)
	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}
