package handler

import (
	"context"
	"net/http"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// UserService defines the profile and data management operations.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error
	Stats(ctx context.Context, userID string) (*usecase.UserStats, error)
	Notifications(ctx context.Context, userID string) ([]*domain.Notification, error)
	ClearNotifications(ctx context.Context, userID string) error
	Export(ctx context.Context, userID string) (*usecase.UserDataExport, error)
	Import(ctx context.Context, session *domain.Session, data *usecase.UserDataExport) error
	ClearData(ctx context.Context, session *domain.Session) (map[string]int64, error)
}

// UserHandler handles profile and data management requests.
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the owner profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	user, err := h.users.Profile(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(user))
}

// UpdateProfile edits the owner's name or email.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), usecase.UpdateProfileInput{
		UserID:  session.UserID,
		Session: session,
		Name:    req.Name,
		Email:   req.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(user))
}

// ChangePassword rotates the password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.users.ChangePassword(r.Context(), usecase.ChangePasswordInput{
		UserID:      session.UserID,
		Session:     session,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// Stats returns row counts for the profile screen.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	stats, err := h.users.Stats(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Notifications returns the in-app feed.
func (h *UserHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	session, ok := optionalSession(r)
	if !ok {
		writeJSON(w, http.StatusOK, []*dto.NotificationResponse{})
		return
	}

	items, err := h.users.Notifications(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromDomain(items))
}

// ClearNotifications empties the feed.
func (h *UserHandler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.users.ClearNotifications(r.Context(), session.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Export streams the full data snapshot.
func (h *UserHandler) Export(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	data, err := h.users.Export(r.Context(), session.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="moneyman-export.json"`)
	writeJSON(w, http.StatusOK, dto.ExportFromUseCase(data))
}

// Import replaces the user's data with an uploaded snapshot.
func (h *UserHandler) Import(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req dto.ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.users.Import(r.Context(), session, req.ToUseCaseInput()); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}

// ClearData wipes everything the user owns and reseeds defaults.
func (h *UserHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	counts, err := h.users.ClearData(r.Context(), session)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared", "deleted": counts})
}
