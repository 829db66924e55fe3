package gateway_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viralprompt/scriptgen/pkg/gateway"
	"github.com/viralprompt/scriptgen/pkg/provider"
	"github.com/viralprompt/scriptgen/pkg/quota"
	"github.com/viralprompt/scriptgen/storage/memory"
)

// recordingGenerator counts calls and returns a canned script or error.
type recordingGenerator struct {
	calls int
	last  provider.Request
	text  string
	err   error
}

func (g *recordingGenerator) Generate(_ context.Context, req provider.Request) (string, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) Expire(context.Context, string, time.Duration) error {
	return errors.New("connection refused")
}

func newTestGateway(t *testing.T, limit int, gen provider.TextGenerator) (*gateway.Gateway, *memory.Store) {
	t.Helper()
	store := memory.New()
	limiter, err := quota.NewLimiter(store, quota.Config{Limit: limit})
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}
	gw, err := gateway.New(gateway.Config{Limiter: limiter, Generator: gen})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gw, store
}

func TestNew_RequiresLimiterAndGenerator(t *testing.T) {
	if _, err := gateway.New(gateway.Config{}); err == nil {
		t.Error("expected error with no limiter")
	}

	store := memory.New()
	limiter, _ := quota.NewLimiter(store, quota.Config{})
	if _, err := gateway.New(gateway.Config{Limiter: limiter}); err == nil {
		t.Error("expected error with no generator")
	}
}

func TestGenerate_Success(t *testing.T) {
	gen := &recordingGenerator{text: "HOOK: watch this\nBEATS:\n- one\nCTA: follow"}
	gw, _ := newTestGateway(t, 20, gen)

	res, err := gw.Generate(context.Background(), gateway.Request{
		Request: provider.Request{Prompt: "sell my grinder", Mode: provider.ModeProducts},
		Email:   "User@Example.com",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Text != gen.text {
		t.Errorf("Text = %q, want %q", res.Text, gen.text)
	}
	if res.Remaining != 19 {
		t.Errorf("Remaining = %d, want 19", res.Remaining)
	}
	if res.Score.Score == 0 {
		t.Error("expected a non-zero score for a structured script")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if gen.last.Prompt != "sell my grinder" {
		t.Errorf("generator saw prompt %q", gen.last.Prompt)
	}
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	gen := &recordingGenerator{text: "x"}
	gw, store := newTestGateway(t, 20, gen)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := gw.Generate(context.Background(), gateway.Request{
			Request: provider.Request{Prompt: prompt},
			Email:   "a@b.com",
		})
		if !errors.Is(err, gateway.ErrEmptyPrompt) {
			t.Errorf("prompt %q: err = %v, want ErrEmptyPrompt", prompt, err)
		}
	}

	// Rejected before admission: nothing charged, provider never called.
	if gen.calls != 0 {
		t.Errorf("generator called %d times for empty prompts", gen.calls)
	}
	if v := store.Value("gen:a@b.com:" + currentPeriod()); v != 0 {
		t.Errorf("quota charged %d for empty prompts", v)
	}
}

func TestGenerate_DeniedNeverReachesProvider(t *testing.T) {
	gen := &recordingGenerator{text: "script"}
	gw, _ := newTestGateway(t, 2, gen)

	ctx := context.Background()
	req := gateway.Request{
		Request: provider.Request{Prompt: "go"},
		Email:   "busy@example.com",
	}

	for i := 0; i < 2; i++ {
		if _, err := gw.Generate(ctx, req); err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
	}

	_, err := gw.Generate(ctx, req)
	if !errors.Is(err, gateway.ErrLimitReached) {
		t.Fatalf("err = %v, want ErrLimitReached", err)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestGenerate_ProviderFailureKeepsCharge(t *testing.T) {
	gen := &recordingGenerator{err: errors.New("upstream timeout")}
	gw, store := newTestGateway(t, 20, gen)

	_, err := gw.Generate(context.Background(), gateway.Request{
		Request: provider.Request{Prompt: "go"},
		Email:   "x@y.com",
	})
	if err == nil || errors.Is(err, gateway.ErrLimitReached) || errors.Is(err, gateway.ErrEmptyPrompt) {
		t.Fatalf("err = %v, want a provider failure", err)
	}

	// No refund: the failed attempt still consumed a slot.
	if v := store.Value("gen:x@y.com:" + currentPeriod()); v != 1 {
		t.Errorf("counter = %d after failed generation, want 1", v)
	}
}

func TestGenerate_StoreFailure(t *testing.T) {
	gen := &recordingGenerator{text: "x"}
	limiter, err := quota.NewLimiter(failingStore{}, quota.Config{})
	if err != nil {
		t.Fatalf("NewLimiter: %v", err)
	}
	gw, err := gateway.New(gateway.Config{Limiter: limiter, Generator: gen})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = gw.Generate(context.Background(), gateway.Request{
		Request: provider.Request{Prompt: "go"},
		Email:   "a@b.com",
	})
	if !errors.Is(err, quota.ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on store failure", gen.calls)
	}
}

func TestGenerate_AnonymousCallersShareIdentity(t *testing.T) {
	gen := &recordingGenerator{text: "x"}
	gw, _ := newTestGateway(t, 1, gen)

	ctx := context.Background()
	if _, err := gw.Generate(ctx, gateway.Request{Request: provider.Request{Prompt: "a"}}); err != nil {
		t.Fatalf("first anonymous request: %v", err)
	}

	_, err := gw.Generate(ctx, gateway.Request{Request: provider.Request{Prompt: "b"}})
	if !errors.Is(err, gateway.ErrLimitReached) {
		t.Errorf("second anonymous request: err = %v, want ErrLimitReached", err)
	}
}

func currentPeriod() string {
	return quota.PeriodKey(time.Now())
}
