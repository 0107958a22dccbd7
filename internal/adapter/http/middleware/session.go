package middleware

import (
	"context"
	"net/http"

	"github.com/moneyman/moneyman/internal/domain"
)

type sessionContextKey struct{}

// SessionResolver loads the session behind a cookie value.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionMiddleware resolves the session cookie on every request.
// Resolution failures are not fatal here: handlers decide whether a
// missing session is a 401 or an empty response.
type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(resolver SessionResolver, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver, cookieName: cookieName}
}

// Wrap attaches the resolved session to the request context.
func (m *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.resolver.Resolve(r.Context(), cookie.Value)
		if err != nil {
			// Dead cookie. Let the handler treat the request as anonymous.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), session)))
	})
}

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext extracts the resolved session, if any.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*domain.Session)
	return session, ok
}
