package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// processingMarker reserves an idempotency key while the first request for
// it is still in flight.
const processingMarker = "processing"

// IdempotencyStore implements usecase.IdempotencyStore on Redis. Money
// movement endpoints use it so a retried request replays the stored
// response instead of moving money twice.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "bankcore:idem:",
	}
}

// CheckAndSet atomically claims key for the caller. It returns
// (true, stored) when the key was already claimed, (false, nil) when this
// caller won the claim. With a nil response the key is reserved with a
// processing marker until Update stores the real response.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	if response != nil {
		set, err := s.client.SetNX(ctx, fullKey, response, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if set {
			return false, nil, nil
		}
	} else {
		set, err := s.client.SetNX(ctx, fullKey, processingMarker, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if set {
			return false, nil, nil
		}
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	return true, existing, nil
}

// Update stores the final response under an already-claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
