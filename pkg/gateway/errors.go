package gateway

import "errors"

var (
	// ErrEmptyPrompt is returned when the prompt is empty or
	// whitespace-only. Rejected before any quota is charged.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrLimitReached is returned when the monthly free quota is
	// exhausted. The denied attempt itself consumed a counter slot.
	ErrLimitReached = errors.New("free limit reached")
)
