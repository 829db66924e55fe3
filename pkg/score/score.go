// Package score rates generated scripts with a fixed structural heuristic.
// The scorer is pure and stateless: it checks for the HOOK/BEATS/CTA
// skeleton, counts shootable beats and rewards a length that fits a
// 15-45 second read.
package score

import "regexp"

// Labels returned with a score.
const (
	LabelGood             = "Good"
	LabelDecent           = "Decent"
	LabelNeedsImprovement = "Needs improvement"
)

var (
	hookPattern  = regexp.MustCompile(`(?i)(^|\n)\s*HOOK\s*:`)
	beatsPattern = regexp.MustCompile(`(?i)(^|\n)\s*BEATS\s*:`)
	ctaPattern   = regexp.MustCompile(`(?i)(^|\n)\s*CTA\s*:|(^|\n)\s*Call\s*to\s*Action`)
	tagsPattern  = regexp.MustCompile(`(^|\n)\s*HASHTAGS\s*:|#\w+`)

	beatsBlockPattern = regexp.MustCompile(`(?is)BEATS\s*:\s*(.*?)(\n[A-Z ]+?:|$)`)
	beatLinePattern   = regexp.MustCompile(`(?m)^\s*[-\d.)]`)
)

// Result is the computed score with its label and improvement tips.
type Result struct {
	Score int
	Label string
	Tips  []string
}

// Compute scores a script from 0 to 100.
func Compute(text string) Result {
	hasHook := hookPattern.MatchString(text)
	hasBeats := beatsPattern.MatchString(text)
	hasCTA := ctaPattern.MatchString(text)
	hasTags := tagsPattern.MatchString(text)

	beatsLines := 0
	if m := beatsBlockPattern.FindStringSubmatch(text); m != nil {
		beatsLines = len(beatLinePattern.FindAllString(m[1], -1))
	}

	length := len(text)

	s := 40
	if hasHook {
		s += 15
	}
	if hasBeats {
		s += 15
	}
	if hasCTA {
		s += 15
	}
	switch {
	case beatsLines >= 4 && beatsLines <= 6:
		s += 10
	case beatsLines >= 2 && beatsLines <= 8:
		s += 5
	}
	if length > 200 && length < 1200 {
		s += 5
	}
	if hasTags {
		s += 5
	}

	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}

	label := LabelNeedsImprovement
	switch {
	case s >= 75:
		label = LabelGood
	case s >= 60:
		label = LabelDecent
	}

	var tips []string
	if !hasHook {
		tips = append(tips, "Add a clear HOOK at the top.")
	}
	if !(beatsLines >= 4 && beatsLines <= 6) {
		tips = append(tips, "Use 4-6 short BEATS (one action per line).")
	}
	if !hasCTA {
		tips = append(tips, "End with a direct CTA.")
	}
	if length <= 200 {
		tips = append(tips, "Add a bit more detail to each beat.")
	}
	if length >= 1200 {
		tips = append(tips, "Make lines tighter to fit 15-45s.")
	}
	if !hasTags {
		tips = append(tips, "Optionally add 5-10 hashtags.")
	}

	return Result{
		Score: s,
		Label: label,
		Tips:  tips,
	}
}
