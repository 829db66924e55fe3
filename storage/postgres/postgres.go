// Package postgres provides a PostgreSQL implementation of the quota.Store
// interface. The counter increment is a single upsert, so concurrent
// requests for one key serialize on the row and never lose updates.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements quota.Store using PostgreSQL.
type Store struct {
	pool   *pgxpool.Pool
	config Config
}

// Config holds PostgreSQL storage configuration.
type Config struct {
	// ConnectionString is the PostgreSQL connection string.
	ConnectionString string

	// Pool configuration
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// Schema returns the DDL for the counters table. Callers own migrations;
// the adapter never creates tables implicitly.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS quota_counters (
    key        TEXT PRIMARY KEY,
    count      BIGINT NOT NULL DEFAULT 0,
    expires_at TIMESTAMPTZ
);`
}

// New creates a new PostgreSQL storage adapter.
func New(ctx context.Context, config Config) (*Store, error) {
	if config.ConnectionString == "" {
		return nil, fmt.Errorf("connection string is required")
	}

	poolConfig, err := pgxpool.ParseConfig(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	if config.MinConns > 0 {
		poolConfig.MinConns = config.MinConns
	}
	if config.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = config.MaxConnLifetime
	}
	if config.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Store{
		pool:   pool,
		config: config,
	}, nil
}

// Incr implements quota.Store. A row whose expiry has lapsed is reset to 1,
// matching the create-on-first-increment lifecycle of an expired Redis key.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	const q = `
INSERT INTO quota_counters (key, count, expires_at)
VALUES ($1, 1, NULL)
ON CONFLICT (key) DO UPDATE SET
    count = CASE
        WHEN quota_counters.expires_at IS NOT NULL AND quota_counters.expires_at <= now()
        THEN 1
        ELSE quota_counters.count + 1
    END,
    expires_at = CASE
        WHEN quota_counters.expires_at IS NOT NULL AND quota_counters.expires_at <= now()
        THEN NULL
        ELSE quota_counters.expires_at
    END
RETURNING count;`

	var count int64
	if err := s.pool.QueryRow(ctx, q, key).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return count, nil
}

// Expire implements quota.Store.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	const q = `
UPDATE quota_counters
SET expires_at = now() + $2 * interval '1 second'
WHERE key = $1;`

	if _, err := s.pool.Exec(ctx, q, key, ttl.Seconds()); err != nil {
		return fmt.Errorf("failed to set expiry: %w", err)
	}
	return nil
}

// Now implements quota.TimeSource using the database clock.
func (s *Store) Now(ctx context.Context) (time.Time, error) {
	var t time.Time
	if err := s.pool.QueryRow(ctx, `SELECT now();`).Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("failed to get database time: %w", err)
	}
	return t, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
