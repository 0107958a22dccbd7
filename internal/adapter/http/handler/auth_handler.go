package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

// CookieConfig controls how session cookies are issued.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.Session, error)
	Login(ctx context.Context, input usecase.LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler handles signup, login and session lifecycle.
type AuthHandler struct {
	users  AuthService
	cookie CookieConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{users: users, cookie: cookie}
}

// Signup registers a user and opens a session.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.users.Signup(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	setSessionCookie(w, h.cookie, session.ID)
	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(session))
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	session, err := h.users.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	setSessionCookie(w, h.cookie, session.ID)
	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Logout discards the session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.users.Logout(r.Context(), session.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	clearSessionCookie(w, h.cookie)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

func setSessionCookie(w http.ResponseWriter, cfg CookieConfig, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
