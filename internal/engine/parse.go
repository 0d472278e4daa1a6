package engine

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ParsedInput is the result of extracting a temporal phrase from raw input.
// DueTime is nil when no phrase was recognized; Text is then the trimmed
// input verbatim.
type ParsedInput struct {
	Text    string
	DueTime *time.Time
}

// Extractor recognizes date/time phrases in free-form task text.
// It is pure: the same input and reference time always produce the same
// result, so callers inject "now" rather than reading the wall clock here.
type Extractor struct {
	w *when.Parser
}

func NewExtractor() *Extractor {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Extractor{w: w}
}

// prepositions commonly left dangling once a time phrase is cut out,
// e.g. "Submit report at" after removing "3pm".
var prepositions = []string{"at", "in", "on", "by"}

// Extract finds the first recognizable temporal phrase in input, resolves it
// against now, and returns the input with the phrase excised. Absence of a
// phrase is not an error; the trimmed input comes back with no due time.
func (e *Extractor) Extract(input string, now time.Time) ParsedInput {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ParsedInput{Text: trimmed}
	}

	r, err := e.w.Parse(input, now)
	if err != nil || r == nil {
		return ParsedInput{Text: trimmed}
	}

	due := r.Time
	before := strings.TrimSpace(input[:r.Index])
	after := strings.TrimSpace(input[r.Index+len(r.Text):])
	clean := strings.TrimSpace(before + " " + after)
	clean = stripTrailingPreposition(clean)
	clean = stripLeadingPreposition(clean)
	// A remainder that is nothing but a preposition ("at tomorrow" -> "at")
	// counts as empty too.
	if isPreposition(clean) {
		clean = ""
	}

	// Never hand back an empty task description: if the phrase was the whole
	// input, fall back to the original text.
	if clean == "" {
		clean = trimmed
	}

	return ParsedInput{Text: clean, DueTime: &due}
}

// stripTrailingPreposition removes exactly one trailing preposition token.
func stripTrailingPreposition(s string) string {
	lower := strings.ToLower(s)
	for _, p := range prepositions {
		if strings.HasSuffix(lower, " "+p) {
			return strings.TrimSpace(s[:len(s)-len(p)])
		}
	}
	return s
}

// stripLeadingPreposition removes exactly one leading preposition token.
func stripLeadingPreposition(s string) string {
	lower := strings.ToLower(s)
	for _, p := range prepositions {
		if strings.HasPrefix(lower, p+" ") {
			return strings.TrimSpace(s[len(p):])
		}
	}
	return s
}

func isPreposition(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range prepositions {
		if lower == p {
			return true
		}
	}
	return false
}
