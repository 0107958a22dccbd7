package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moneyman/moneyman/internal/domain"
)

type fakeResolver struct {
	sessions map[string]*domain.Session
}

func (f *fakeResolver) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}

func newSessionTestHandler(t *testing.T) (http.Handler, *fakeResolver) {
	t.Helper()

	resolver := &fakeResolver{sessions: map[string]*domain.Session{
		"sess-1": {ID: "sess-1", UserID: "user-1"},
	}}
	mw := NewSessionMiddleware(resolver, "msid")

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, ok := SessionFromContext(r.Context()); ok {
			w.Write([]byte(session.UserID))
			return
		}
		w.Write([]byte("anonymous"))
	}))
	return handler, resolver
}

func TestSessionMiddleware_ResolvesCookie(t *testing.T) {
	handler, _ := newSessionTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.AddCookie(&http.Cookie{Name: "msid", Value: "sess-1"})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Body.String() != "user-1" {
		t.Fatalf("expected resolved session, got %q", rr.Body.String())
	}
}

func TestSessionMiddleware_MissingCookieIsAnonymous(t *testing.T) {
	handler, _ := newSessionTestHandler(t)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	if rr.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous request, got %q", rr.Body.String())
	}
}

func TestSessionMiddleware_DeadCookieIsAnonymous(t *testing.T) {
	handler, _ := newSessionTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.AddCookie(&http.Cookie{Name: "msid", Value: "expired"})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Body.String() != "anonymous" {
		t.Fatalf("expected anonymous request, got %q", rr.Body.String())
	}
}
