// Package redis provides the Redis implementation of the quota.Store and
// subscribe.Store interfaces. The counter relies on Redis's atomic INCR;
// no Lua is needed because the limiter never reads before writing.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/viralprompt/scriptgen/pkg/subscribe"
)

const (
	subscribersKey      = "subscribers"
	subscriberKeyPrefix = "subscriber:"
)

// Config holds Redis storage configuration.
type Config struct {
	// KeyPrefix is prepended to all Redis keys (default: "viralprompt:").
	KeyPrefix string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		KeyPrefix: "viralprompt:",
	}
}

// Store implements quota.Store, quota.TimeSource and subscribe.Store
// using Redis.
type Store struct {
	client redis.UniversalClient
	config Config
}

// New creates a new Redis storage adapter.
// The client can be *redis.Client, *redis.ClusterClient, or *redis.Ring.
func New(client redis.UniversalClient, config Config) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "viralprompt:"
	}

	return &Store{
		client: client,
		config: config,
	}, nil
}

// Incr implements quota.Store via the atomic INCR command. A missing key
// is created at 1.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Incr(ctx, s.config.KeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return count, nil
}

// Expire implements quota.Store. Repeating the call with an equivalent TTL
// is idempotent; the counter value is untouched.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Expire(ctx, s.config.KeyPrefix+key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set expiry: %w", err)
	}
	return nil
}

// Now implements quota.TimeSource using the Redis TIME command, so all
// gateway instances bucket periods on the store's clock.
func (s *Store) Now(ctx context.Context) (time.Time, error) {
	t, err := s.client.Time(ctx).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get redis time: %w", err)
	}
	return t, nil
}

// AddSubscriber implements subscribe.Store. The email joins a set for
// cheap membership listing and the details land in a per-subscriber hash.
func (s *Store) AddSubscriber(ctx context.Context, sub subscribe.Subscriber) error {
	setKey := s.config.KeyPrefix + subscribersKey
	hashKey := s.config.KeyPrefix + subscriberKeyPrefix + sub.Email

	if err := s.client.SAdd(ctx, setKey, sub.Email).Err(); err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}

	fields := map[string]interface{}{
		"email": sub.Email,
		"plan":  sub.Plan,
		"ts":    sub.SubscribedAt.UnixMilli(),
		"ip":    sub.IP,
	}
	if err := s.client.HSet(ctx, hashKey, fields).Err(); err != nil {
		return fmt.Errorf("failed to store subscriber details: %w", err)
	}

	return nil
}
