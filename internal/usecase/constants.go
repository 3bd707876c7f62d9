package usecase

import "time"

const (
	// AccountCacheTTL bounds how long a cached account read may lag a
	// committed write that bypassed invalidation.
	AccountCacheTTL = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
