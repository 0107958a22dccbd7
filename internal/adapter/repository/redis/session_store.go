package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moneyman/moneyman/internal/domain"
)

// SessionStore implements usecase.SessionStore using Redis. Sessions
// expire server-side through the key TTL, so a Get miss means the
// caller must re-authenticate.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Create stores a session with the given TTL.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+session.ID, payload, ttl).Err()
}

// Get retrieves a session by ID. Expired or unknown sessions return
// domain.ErrUnauthorized.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
