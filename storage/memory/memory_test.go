package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestIncr(t *testing.T) {
	s := New()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := s.Incr(ctx, "k")
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if got != want {
			t.Errorf("Incr = %d, want %d", got, want)
		}
	}

	if v := s.Value("other"); v != 0 {
		t.Errorf("untouched key value = %d, want 0", v)
	}
}

func TestIncr_IsolatedKeys(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Incr(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Incr(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("fresh key counter = %d, want 1", got)
	}
}

func TestExpire(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Incr(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Expire(ctx, "k", time.Hour); err != nil {
		t.Fatalf("Expire: %v", err)
	}

	if ttl := s.TTL("k"); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within (0, 1h]", ttl)
	}

	s.FastForward(2 * time.Hour)

	if v := s.Value("k"); v != 0 {
		t.Errorf("expired key value = %d, want 0", v)
	}
	got, err := s.Incr(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("counter after expiry = %d, want 1", got)
	}
}

func TestExpire_MissingKeyIsNoop(t *testing.T) {
	s := New()
	if err := s.Expire(context.Background(), "absent", time.Hour); err != nil {
		t.Errorf("Expire on missing key: %v", err)
	}
	if ttl := s.TTL("absent"); ttl != 0 {
		t.Errorf("TTL = %v, want 0", ttl)
	}
}

func TestExpire_PreservesValue(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Incr(ctx, "k"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Expire(ctx, "k", time.Hour); err != nil {
		t.Fatal(err)
	}
	if v := s.Value("k"); v != 5 {
		t.Errorf("value after Expire = %d, want 5", v)
	}
}

func TestIncr_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				if _, err := s.Incr(ctx, "k"); err != nil {
					t.Errorf("Incr: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if v := s.Value("k"); v != goroutines*perGoroutine {
		t.Errorf("value = %d, want %d", v, goroutines*perGoroutine)
	}
}
