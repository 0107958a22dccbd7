package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moneyman/moneyman/internal/adapter/http/dto"
	"github.com/moneyman/moneyman/internal/domain"
	"github.com/moneyman/moneyman/internal/usecase"
)

type accessServiceStub struct {
	requestFn func(ctx context.Context, input usecase.RequestAccessInput) (*domain.AccessGrantRequest, error)
	approveFn func(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error)
	rejectFn  func(ctx context.Context, ownerID, requestID string) error
	verifyFn  func(ctx context.Context, requestID, code string) (*usecase.VerifyResult, error)
}

func (s *accessServiceStub) Request(ctx context.Context, input usecase.RequestAccessInput) (*domain.AccessGrantRequest, error) {
	return s.requestFn(ctx, input)
}

func (s *accessServiceStub) Approve(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error) {
	return s.approveFn(ctx, ownerID, requestID)
}

func (s *accessServiceStub) Reject(ctx context.Context, ownerID, requestID string) error {
	return s.rejectFn(ctx, ownerID, requestID)
}

func (s *accessServiceStub) Verify(ctx context.Context, requestID, code string) (*usecase.VerifyResult, error) {
	return s.verifyFn(ctx, requestID, code)
}

type sessionOpenerStub struct {
	openFn func(ctx context.Context, owner *domain.User) (*domain.Session, error)
}

func (s *sessionOpenerStub) OpenSharedSession(ctx context.Context, owner *domain.User) (*domain.Session, error) {
	return s.openFn(ctx, owner)
}

func testCookieConfig() CookieConfig {
	return CookieConfig{Name: "msid", TTL: time.Hour}
}

func TestAccessHandler_Request_NeverLeaksCode(t *testing.T) {
	grant := &domain.AccessGrantRequest{
		ID:        "req-1",
		OwnerID:   "owner-1",
		Code:      "482913",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}

	h := NewAccessHandler(&accessServiceStub{
		requestFn: func(ctx context.Context, input usecase.RequestAccessInput) (*domain.AccessGrantRequest, error) {
			return grant, nil
		},
	}, nil, testCookieConfig())

	body, _ := json.Marshal(dto.AccessRequestRequest{OwnerID: "owner-1", AccountID: "acc-1", DeviceInfo: "phone"})
	req := httptest.NewRequest(http.MethodPost, "/api/access/request", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Request(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("482913")) {
		t.Fatal("one-time code must not appear in the HTTP response")
	}

	var resp dto.AccessRequestResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RequestID != "req-1" {
		t.Fatalf("unexpected request id %q", resp.RequestID)
	}
}

func TestAccessHandler_Approve_UsesSessionOwner(t *testing.T) {
	h := NewAccessHandler(&accessServiceStub{
		approveFn: func(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error) {
			if ownerID != "owner-1" {
				t.Fatalf("expected owner from session, got %q", ownerID)
			}
			return &domain.AccessGrantRequest{ID: requestID, OwnerID: ownerID, Approved: true}, nil
		},
	}, nil, testCookieConfig())

	body, _ := json.Marshal(dto.AccessApproveRequest{RequestID: "req-1", Approve: true})
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/access/approve", bytes.NewReader(body)), "owner-1")
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccessHandler_Reject_NeverIssuesCode(t *testing.T) {
	var rejected bool
	h := NewAccessHandler(&accessServiceStub{
		approveFn: func(ctx context.Context, ownerID, requestID string) (*domain.AccessGrantRequest, error) {
			t.Fatal("a rejection must not run the approval path")
			return nil, nil
		},
		rejectFn: func(ctx context.Context, ownerID, requestID string) error {
			if ownerID != "owner-1" || requestID != "req-1" {
				t.Fatalf("unexpected reject args %q %q", ownerID, requestID)
			}
			rejected = true
			return nil
		},
	}, nil, testCookieConfig())

	body, _ := json.Marshal(dto.AccessApproveRequest{RequestID: "req-1", Approve: false})
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/access/approve", bytes.NewReader(body)), "owner-1")
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !rejected {
		t.Fatal("expected the pending request to be rejected")
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("rejected")) {
		t.Fatalf("expected rejected status in body, got %s", rec.Body.String())
	}
}

func TestAccessHandler_Approve_RequiresSession(t *testing.T) {
	h := NewAccessHandler(&accessServiceStub{}, nil, testCookieConfig())

	body, _ := json.Marshal(dto.AccessApproveRequest{RequestID: "req-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/access/approve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Approve(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccessHandler_Verify_OpensSharedSession(t *testing.T) {
	owner := &domain.User{ID: "owner-1", Name: "Alice", Email: "alice@example.com"}

	access := &accessServiceStub{
		verifyFn: func(ctx context.Context, requestID, code string) (*usecase.VerifyResult, error) {
			if requestID != "req-1" || code != "482913" {
				t.Fatalf("unexpected verify args %q %q", requestID, code)
			}
			return &usecase.VerifyResult{Owner: owner, Request: &domain.AccessGrantRequest{ID: requestID}}, nil
		},
	}
	opener := &sessionOpenerStub{
		openFn: func(ctx context.Context, got *domain.User) (*domain.Session, error) {
			if got.ID != "owner-1" {
				t.Fatalf("expected owner, got %q", got.ID)
			}
			return &domain.Session{ID: "shared-sess", UserID: got.ID, SharedAccess: true}, nil
		},
	}

	h := NewAccessHandler(access, opener, testCookieConfig())

	body, _ := json.Marshal(dto.AccessVerifyRequest{RequestID: "req-1", Code: "482913"})
	req := httptest.NewRequest(http.MethodPost, "/api/access/verify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "msid" && c.Value == "shared-sess" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected session cookie on verify response")
	}

	var resp dto.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.SharedAccess {
		t.Fatal("expected shared access flag on session")
	}
}

func TestAccessHandler_Verify_CodeMismatch(t *testing.T) {
	h := NewAccessHandler(&accessServiceStub{
		verifyFn: func(ctx context.Context, requestID, code string) (*usecase.VerifyResult, error) {
			return nil, domain.ErrCodeMismatch
		},
	}, nil, testCookieConfig())

	body, _ := json.Marshal(dto.AccessVerifyRequest{RequestID: "req-1", Code: "000000"})
	req := httptest.NewRequest(http.MethodPost, "/api/access/verify", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
