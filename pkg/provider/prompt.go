package provider

import "strings"

var systemPrompts = map[Mode]string{
	ModeProducts: `
You are an expert in short-form product marketing for TikTok/IG Reels.
You produce trend-aware scripts using proven patterns (hooks, tight beats, direct CTAs) refined daily.

Return plain text with:
HOOK:
BEATS: 4-6 short, shootable beats (one line each).
CTA:
(If requested) HASHTAGS: 5-10 relevant tags.

Constraints:
- 15-45s runtime.
- Punchy, concrete, high-retention language.
- Focus on watch-time and conversion.
`,
	ModeCreators: `
You are an expert content ideator for creators on TikTok/IG Reels.
You produce trend-aware prompts and scripts refined daily by proven short-form patterns.

Depending on the ask, return EITHER:
A) a personal video script (HOOK / BEATS / CTA), OR
B) a list of 5 fresh video IDEAS with micro-prompts.

(If requested) HASHTAGS: 5-10 relevant tags.
Keep it 15-45s, authentic, and optimized for retention.
`,
}

// SystemPrompt returns the persona instruction for a mode. Unknown modes
// fall back to the products persona.
func SystemPrompt(mode Mode) string {
	if p, ok := systemPrompts[mode]; ok {
		return p
	}
	return systemPrompts[ModeProducts]
}

// UserMessage composes the task content sent alongside the persona: the
// mode, any hints the caller supplied, and the prompt itself. Absent hints
// produce no line.
func UserMessage(req Request) string {
	mode := req.Mode
	if _, ok := systemPrompts[mode]; !ok {
		mode = ModeProducts
	}

	lines := []string{"MODE: " + string(mode)}
	if req.Format != "" {
		lines = append(lines, "FORMAT: "+req.Format)
	}
	if req.Tone != "" {
		lines = append(lines, "TONE: "+req.Tone)
	}
	if req.Duration != "" {
		lines = append(lines, "DURATION: "+req.Duration)
	}
	if req.WithTags {
		lines = append(lines, "INCLUDE HASHTAGS")
	}
	lines = append(lines, "USER PROMPT: "+req.Prompt)

	return strings.Join(lines, "\n")
}
