// Package accessmem holds pending access-grant requests in process
// memory. The handshake is short-lived by design, so losing pending
// requests on restart is acceptable.
package accessmem

import (
	"context"
	"sync"
	"time"

	"github.com/moneyman/moneyman/internal/domain"
)

// Store implements usecase.AccessGrantStore with a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	requests map[string]*domain.AccessGrantRequest
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		requests: make(map[string]*domain.AccessGrantRequest),
		now:      time.Now,
	}
}

// Create registers a pending request.
func (s *Store) Create(_ context.Context, req *domain.AccessGrantRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

// Get returns the request by ID. Expired records are treated as absent
// and removed on sight.
func (s *Store) Get(_ context.Context, id string) (*domain.AccessGrantRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrAccessRequestNotFound
	}
	if req.Expired(s.now()) {
		delete(s.requests, id)
		return nil, domain.ErrAccessRequestNotFound
	}

	clone := *req
	return &clone, nil
}

// Update replaces the stored request.
func (s *Store) Update(_ context.Context, req *domain.AccessGrantRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[req.ID]; !ok {
		return domain.ErrAccessRequestNotFound
	}

	clone := *req
	s.requests[req.ID] = &clone
	return nil
}

// IncrementAttempts bumps the failure counter under the store lock and
// returns the new count, so racing verifies each see a distinct value.
func (s *Store) IncrementAttempts(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return 0, domain.ErrAccessRequestNotFound
	}
	if req.Expired(s.now()) {
		delete(s.requests, id)
		return 0, domain.ErrAccessRequestNotFound
	}

	req.Attempts++
	return req.Attempts, nil
}

// Delete removes the request. Absent records are a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.requests, id)
	return nil
}

// SweepExpired drops every expired record and returns the count.
func (s *Store) SweepExpired(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, req := range s.requests {
		if req.Expired(now) {
			delete(s.requests, id)
			removed++
		}
	}
	return removed
}
