package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// placeholder marks a key that is claimed but whose response is not
// recorded yet.
const placeholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet claims the key atomically. The first caller wins and gets
// (false, nil, nil); later callers get the stored value. A nil response
// claims the key with a placeholder so concurrent duplicates are held
// off while the first request is still in flight.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	value := any(response)
	if response == nil {
		value = placeholder
	}

	set, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		// Key expired between SetNX and Get. Treat as first sight.
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, existing, nil
}

// Update overwrites the key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
