package engine

import "strings"

// DefaultNegativeHints flags war, disaster, death and crime coverage.
var DefaultNegativeHints = []string{
	"war", "battle", "invasion", "massacre", "terror", "terrorist", "attack", "bomb",
	"assassination", "assassinated", "murder", "killed", "death", "died", "deadly",
	"execution", "genocide", "riot", "shooting",
	"earthquake", "tsunami", "hurricane", "tornado", "flood", "wildfire", "fire",
	"explosion", "crash", "derail", "disaster", "catastrophe",
	"outbreak", "epidemic", "plague", "pandemic", "cholera",
	"arrest", "convicted", "sentenced",
}

// DefaultPositiveHints marks headline-worthy items.
var DefaultPositiveHints = []string{
	"won", "wins", "victory", "champion", "championship", "title",
	"founded", "opens", "opened", "launch", "launched",
	"released", "debut", "premiere",
	"first", "record", "breakthrough",
	"discovered", "invented", "created",
	"celebration", "festival", "concert",
}

// Tone is the result of classifying one text. The flags are independent:
// a text can carry a positive hint and still be negative.
type Tone struct {
	Negative bool
	Positive bool
}

// Classifier labels trivia text with substring hints. Matching is
// case-insensitive and not word-bounded ("war" matches "award").
type Classifier struct {
	negative []string
	positive []string
}

// NewClassifier lowercases the hint lists once. Blank hints are dropped.
func NewClassifier(negative, positive []string) *Classifier {
	return &Classifier{
		negative: lowerAll(negative),
		positive: lowerAll(positive),
	}
}

// DefaultClassifier uses the built-in hint lists.
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultNegativeHints, DefaultPositiveHints)
}

// IsNegative reports whether text contains any negative hint.
func (c *Classifier) IsNegative(text string) bool {
	return containsAny(strings.ToLower(text), c.negative)
}

// IsPositiveish is the acceptability gate: anything not flagged negative.
func (c *Classifier) IsPositiveish(text string) bool {
	return !c.IsNegative(text)
}

// HasPositiveHint reports whether text contains any positive hint.
func (c *Classifier) HasPositiveHint(text string) bool {
	return containsAny(strings.ToLower(text), c.positive)
}

// Classify returns both flags for text.
func (c *Classifier) Classify(text string) Tone {
	return Tone{
		Negative: c.IsNegative(text),
		Positive: c.HasPositiveHint(text),
	}
}

// containsAny expects lowered text and lowered needles.
func containsAny(lowered string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lowered, n) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
