// Package memory provides an in-memory implementation of the quota.Store
// interface. This implementation is primarily intended for testing and
// development.
package memory

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	value     int64
	expiresAt time.Time // zero means no expiry
}

// Store implements quota.Store using a mutex-guarded map.
type Store struct {
	mu       sync.Mutex
	counters map[string]*counter
	offset   time.Duration
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		counters: make(map[string]*counter),
	}
}

// Incr implements quota.Store.
func (s *Store) Incr(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || s.expired(c) {
		c = &counter{}
		s.counters[key] = c
	}
	c.value++
	return c.value, nil
}

// Expire implements quota.Store. Setting an expiry on a missing key is a
// no-op, matching Redis EXPIRE semantics.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || s.expired(c) {
		return nil
	}
	c.expiresAt = s.now().Add(ttl)
	return nil
}

// Value returns the current counter value, or 0 if the key is absent or
// expired. Test helper.
func (s *Store) Value(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || s.expired(c) {
		return 0
	}
	return c.value
}

// TTL returns the remaining time-to-live for key, or 0 if the key is absent
// or has no expiry. Test helper.
func (s *Store) TTL(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || s.expired(c) || c.expiresAt.IsZero() {
		return 0
	}
	return c.expiresAt.Sub(s.now())
}

// FastForward advances the store's clock, causing counters whose expiry has
// lapsed to be treated as absent. Test helper.
func (s *Store) FastForward(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset += d
}

func (s *Store) now() time.Time {
	return time.Now().Add(s.offset)
}

func (s *Store) expired(c *counter) bool {
	return !c.expiresAt.IsZero() && !c.expiresAt.After(s.now())
}
