package api

import (
	"fmt"

	"github.com/viralprompt/scriptgen/pkg/gateway"
	"github.com/viralprompt/scriptgen/pkg/quota"
	"github.com/viralprompt/scriptgen/pkg/subscribe"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

// Config holds configuration for the HTTP handler.
type Config struct {
	// Gateway handles generation requests (required).
	Gateway *gateway.Gateway

	// Subscribers persists email captures. If nil, the subscribe endpoint
	// responds 503.
	Subscribers subscribe.Store

	// Logger is used for boundary logging (default: NoopLogger).
	Logger quota.Logger

	// MaxBodyBytes bounds request bodies (default: 1 MiB).
	MaxBodyBytes int64
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Gateway == nil {
		return fmt.Errorf("gateway is required")
	}
	return nil
}

// NewHandler creates an HTTP handler with the given configuration.
func NewHandler(config Config) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Logger == nil {
		config.Logger = &quota.NoopLogger{}
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{config: config}, nil
}
