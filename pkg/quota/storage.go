package quota

import (
	"context"
	"time"
)

// Store defines the counter operations the limiter needs from a backing
// store. Implementations must make Incr atomic: concurrent calls for the
// same key each observe a distinct, strictly increasing value.
type Store interface {
	// Incr atomically increments the counter at key and returns the
	// post-increment value. A missing counter starts at zero, so the
	// first call returns 1.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire attaches a time-to-live to key. Expiry of the counter is
	// owned entirely by the store; the limiter never deletes keys.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// TimeSource defines an interface for getting time from the storage engine.
// Using storage engine time instead of application server time keeps period
// boundaries consistent across distributed gateway instances.
type TimeSource interface {
	// Now returns the current time from the storage engine.
	// Returns an error if the engine doesn't support time queries.
	Now(ctx context.Context) (time.Time, error)
}
