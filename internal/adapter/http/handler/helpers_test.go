package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/recent?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/transactions/recent?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"transfer not found", domain.ErrTransferNotFound, http.StatusNotFound},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound},
		{"access request not found", domain.ErrAccessRequestNotFound, http.StatusNotFound},
		{"share code invalid", domain.ErrShareCodeInvalid, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid account kind", domain.ErrInvalidAccountKind, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"code mismatch", domain.ErrCodeMismatch, http.StatusBadRequest},
		{"attempts exhausted", domain.ErrAttemptsExhausted, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "account not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "account not found" {
		t.Fatalf("unexpected error message: %q", body.Error)
	}
}
