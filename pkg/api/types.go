package api

// GenerateRequest is the inbound body of the generation endpoint. Only
// Prompt is required; all hints default.
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Mode     string `json:"mode,omitempty"`
	Email    string `json:"email,omitempty"`
	Format   string `json:"format,omitempty"`
	Tone     string `json:"tone,omitempty"`
	Duration string `json:"duration,omitempty"`
	WithTags bool   `json:"withTags,omitempty"`
}

// GenerateResponse is the success body of the generation endpoint.
type GenerateResponse struct {
	Result    string     `json:"result"`
	Remaining int        `json:"remaining"`
	Score     *ScoreInfo `json:"score,omitempty"`
}

// ScoreInfo is the heuristic rating attached to a generated script.
type ScoreInfo struct {
	Score int      `json:"score"`
	Label string   `json:"label"`
	Tips  []string `json:"tips,omitempty"`
}

// ErrorResponse is the generic failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LimitResponse is the over-quota failure body. Remaining is fixed at 0.
type LimitResponse struct {
	Error     string `json:"error"`
	OverLimit bool   `json:"overLimit"`
	Remaining int    `json:"remaining"`
}

// SubscribeRequest is the inbound body of the subscribe endpoint.
type SubscribeRequest struct {
	Email string `json:"email"`
	Plan  string `json:"plan,omitempty"`
}

// SubscribeResponse is the success body of the subscribe endpoint.
type SubscribeResponse struct {
	OK bool `json:"ok"`
}
