// Package gateway orchestrates a generation request: validate, resolve the
// caller's identity, charge the monthly quota, then call the text
// generation provider. Denied requests never reach the provider.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viralprompt/scriptgen/pkg/identity"
	"github.com/viralprompt/scriptgen/pkg/provider"
	"github.com/viralprompt/scriptgen/pkg/quota"
	"github.com/viralprompt/scriptgen/pkg/score"
)

// Request is one inbound generation request: the provider request plus the
// identity inputs of the caller.
type Request struct {
	provider.Request

	// Email is the caller-supplied email, if any. Takes precedence for
	// identity resolution.
	Email string

	// ForwardedFor is the forwarded-address header value.
	ForwardedFor string

	// RemoteAddr is the socket address, without port.
	RemoteAddr string
}

// Result is a completed generation.
type Result struct {
	// Text is the generated script.
	Text string

	// Remaining is the quota left after this request, as observed at this
	// request's own increment. Concurrent requests may see values in
	// either order.
	Remaining int

	// Score is the structural heuristic rating of Text.
	Score score.Result
}

// Config holds gateway configuration.
type Config struct {
	// Limiter enforces the monthly quota (required).
	Limiter *quota.Limiter

	// Generator is the text generation provider (required).
	Generator provider.TextGenerator

	// Logger is used for structured logging (default: NoopLogger).
	Logger quota.Logger

	// Metrics is used for tracking provider calls (default: NoopMetrics).
	Metrics quota.Metrics
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Limiter == nil {
		return fmt.Errorf("limiter is required")
	}
	if c.Generator == nil {
		return fmt.Errorf("generator is required")
	}
	return nil
}

// Gateway is the generation orchestrator.
type Gateway struct {
	config Config
}

// New creates a gateway with the given configuration.
func New(config Config) (*Gateway, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Logger == nil {
		config.Logger = &quota.NoopLogger{}
	}
	if config.Metrics == nil {
		config.Metrics = &quota.NoopMetrics{}
	}
	return &Gateway{config: config}, nil
}

// Generate handles one request end to end. Failures map onto the caller's
// taxonomy via errors.Is: ErrEmptyPrompt for invalid input, ErrLimitReached
// for exhausted quota, quota.ErrStoreUnavailable for counter store faults,
// anything else is a provider failure. There are no internal retries, and a
// provider failure does not refund the consumed slot.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	id := identity.Resolve(req.Email, req.ForwardedFor, req.RemoteAddr)

	decision, err := g.config.Limiter.Admit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("quota check failed: %w", err)
	}

	if !decision.Admitted {
		g.config.Logger.Info("generation denied",
			quota.Field{Key: "identity", Value: id},
			quota.Field{Key: "period", Value: decision.Period},
			quota.Field{Key: "count", Value: decision.Count},
		)
		return nil, ErrLimitReached
	}

	start := time.Now()
	text, err := g.config.Generator.Generate(ctx, req.Request)
	g.config.Metrics.RecordGeneration(string(req.Mode), time.Since(start), err)
	if err != nil {
		// The slot charged above stays consumed: a failed generation
		// still counts against quota.
		g.config.Logger.Error("generation failed",
			quota.Field{Key: "identity", Value: id},
			quota.Field{Key: "error", Value: err.Error()},
		)
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return &Result{
		Text:      text,
		Remaining: decision.Remaining,
		Score:     score.Compute(text),
	}, nil
}
