// Package provider defines the text-generation request model and the
// contract the gateway expects from a completion backend.
package provider

import "context"

// Mode selects the scriptwriting persona.
type Mode string

const (
	// ModeProducts targets short-form product marketing scripts.
	ModeProducts Mode = "products"

	// ModeCreators targets personal content ideation for creators.
	ModeCreators Mode = "creators"
)

// Request carries the caller's prompt and its optional structural hints.
// Every hint has a default; only Prompt is required.
type Request struct {
	// Prompt is the caller's free-text ask. Must be non-empty after
	// trimming.
	Prompt string

	// Mode selects the persona (default: ModeProducts).
	Mode Mode

	// Format is an optional output format hint, e.g. "Listicle".
	Format string

	// Tone is an optional tone hint, e.g. "Friendly".
	Tone string

	// Duration is an optional runtime hint, e.g. "15-30s".
	Duration string

	// WithTags asks the provider to append hashtags.
	WithTags bool
}

// TextGenerator is the completion backend the gateway calls after
// admission. Implementations own their transport, timeout and model
// selection.
type TextGenerator interface {
	// Generate returns the generated script text for a request, or an
	// error on timeout, transport failure or an unusable response. No
	// partial results: a failed call never returns truncated text.
	Generate(ctx context.Context, req Request) (string, error)
}
