package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/adapter/http/middleware"
	"github.com/moneyman/moneyman/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the uniform error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: message})
}

// writeDomainError maps a domain error to its status and writes it.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapDomainError(err), err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccessRequestNotFound),
		errors.Is(err, domain.ErrShareCodeInvalid):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidAccountKind),
		errors.Is(err, domain.ErrInvalidTransactionKind),
		errors.Is(err, domain.ErrInvalidCategoryKind),
		errors.Is(err, domain.ErrInvalidInvestmentType),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrNoFieldsToUpdate),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak),
		errors.Is(err, domain.ErrApprovalPending),
		errors.Is(err, domain.ErrCodeMismatch),
		errors.Is(err, domain.ErrAttemptsExhausted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireSession returns the session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return session, true
}

// optionalSession returns the session if one is attached. Anonymous
// reads get empty collections rather than a 401.
func optionalSession(r *http.Request) (*domain.Session, bool) {
	return middleware.SessionFromContext(r.Context())
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
