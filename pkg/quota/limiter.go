// Package quota implements a per-identity, per-calendar-month admission
// limiter backed by a shared atomic counter store.
package quota

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultLimit is the number of admitted generations per identity per
	// calendar month on the free plan.
	DefaultLimit = 20

	// DefaultNamespace is the key namespace prepended to every counter key.
	DefaultNamespace = "gen"
)

// Decision is the outcome of a single admission check.
type Decision struct {
	// Admitted reports whether the request may proceed.
	Admitted bool

	// Count is the counter value observed at this request's increment.
	// Denied requests keep incrementing past the limit; the cap applies
	// to admission, not to the stored value.
	Count int

	// Remaining is Limit - Count for admitted requests, 0 otherwise.
	Remaining int

	// Limit is the configured ceiling.
	Limit int

	// Period is the month bucket the decision was made in, e.g. "2025-01".
	Period string
}

// Config holds limiter configuration.
type Config struct {
	// Limit is the admission ceiling per identity per month (default: 20).
	Limit int

	// Namespace is prepended to counter keys (default: "gen").
	Namespace string

	// TimeSource supplies the current time, typically from the storage
	// engine to avoid clock skew between instances (default: local clock).
	TimeSource TimeSource

	// Logger is used for structured logging (default: NoopLogger).
	Logger Logger

	// Metrics is used for tracking admissions and store calls
	// (default: NoopMetrics).
	Metrics Metrics
}

// Limiter enforces the monthly quota. It never performs a read-modify-write
// on the counter; the store's atomic increment is the only mutation.
type Limiter struct {
	store  Store
	config Config
}

// NewLimiter creates a limiter with the given store and configuration.
func NewLimiter(store Store, config Config) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreUnavailable
	}

	// Set defaults
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if config.Namespace == "" {
		config.Namespace = DefaultNamespace
	}
	if config.Logger == nil {
		config.Logger = &NoopLogger{}
	}
	if config.Metrics == nil {
		config.Metrics = &NoopMetrics{}
	}

	return &Limiter{
		store:  store,
		config: config,
	}, nil
}

// Key returns the counter key for an identity within a period.
// Distinct identities or periods never collide.
func (l *Limiter) Key(identity, period string) string {
	return fmt.Sprintf("%s:%s:%s", l.config.Namespace, identity, period)
}

// Admit charges one unit against identity's monthly quota and reports the
// decision. The increment happens before the limit check, so the request
// that crosses the ceiling consumes a slot and is itself denied. Slots are
// never refunded.
func (l *Limiter) Admit(ctx context.Context, identity string) (Decision, error) {
	if identity == "" {
		return Decision{}, ErrInvalidIdentity
	}

	now := l.now(ctx)
	period := PeriodKey(now)
	key := l.Key(identity, period)

	start := time.Now()
	count, err := l.store.Incr(ctx, key)
	l.config.Metrics.RecordStoreOperation("incr", time.Since(start), err)
	if err != nil {
		l.config.Logger.Error("quota increment failed",
			Field{Key: "key", Value: key},
			Field{Key: "error", Value: err.Error()},
		)
		return Decision{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if count == 1 {
		// First increment this period: install the expiry so the store
		// cleans the counter up at the month boundary. Two concurrent
		// first-increments may both land here; the duplicate expiry-set
		// computes an equivalent TTL and is harmless.
		ttl := TTLUntilNextPeriod(now)
		start = time.Now()
		expireErr := l.store.Expire(ctx, key, ttl)
		l.config.Metrics.RecordStoreOperation("expire", time.Since(start), expireErr)
		if expireErr != nil {
			// Best effort: the counter still enforces the limit without
			// an expiry, it just lingers past the period.
			l.config.Logger.Warn("expiry install failed",
				Field{Key: "key", Value: key},
				Field{Key: "error", Value: expireErr.Error()},
			)
		}
	}

	decision := Decision{
		Count:  int(count),
		Limit:  l.config.Limit,
		Period: period,
	}
	if count > int64(l.config.Limit) {
		decision.Admitted = false
		decision.Remaining = 0
	} else {
		decision.Admitted = true
		decision.Remaining = l.config.Limit - int(count)
	}

	l.config.Metrics.RecordAdmission(period, decision.Admitted)
	l.config.Logger.Debug("admission decision",
		Field{Key: "identity", Value: identity},
		Field{Key: "period", Value: period},
		Field{Key: "count", Value: decision.Count},
		Field{Key: "admitted", Value: decision.Admitted},
	)

	return decision, nil
}

// Limit returns the configured admission ceiling.
func (l *Limiter) Limit() int {
	return l.config.Limit
}

// now resolves the current time, preferring the storage engine's clock.
func (l *Limiter) now(ctx context.Context) time.Time {
	if l.config.TimeSource != nil {
		if t, err := l.config.TimeSource.Now(ctx); err == nil {
			return t.UTC()
		}
		l.config.Logger.Warn("time source failed, using local clock")
	}
	return time.Now().UTC()
}
