// Package openai implements provider.TextGenerator on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/viralprompt/scriptgen/pkg/provider"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultTimeout     = 30 * time.Second
)

// Config holds client configuration.
type Config struct {
	// APIKey authenticates against the API. Empty falls back to the SDK's
	// environment lookup.
	APIKey string

	// BaseURL overrides the API endpoint, for compatible backends.
	BaseURL string

	// Model is the completion model (default: "gpt-4o-mini").
	Model string

	// Temperature is the sampling temperature (default: 0.7).
	Temperature float64

	// Timeout bounds each completion call (default: 30s). A timed-out
	// call surfaces as a provider failure; the quota slot stays consumed.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:       defaultModel,
		Temperature: defaultTemperature,
		Timeout:     defaultTimeout,
	}
}

// Client calls the chat completions endpoint.
type Client struct {
	client openai.Client
	config Config
}

// New creates a completion client.
func New(config Config) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	var opts []option.RequestOption
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		config: config,
	}
}

// Generate implements provider.TextGenerator.
func (c *Client) Generate(ctx context.Context, req provider.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.config.Model),
		Temperature: openai.Float(c.config.Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(provider.SystemPrompt(req.Mode)),
			openai.UserMessage(provider.UserMessage(req)),
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("error calling chat completions: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
