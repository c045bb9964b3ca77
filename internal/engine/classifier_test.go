package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_DefaultHints(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		text     string
		negative bool
		positive bool
	}{
		{"a war broke out", true, false},
		{"The team won the championship", false, true},
		{"A quiet Tuesday", false, false},
		{"Won the title after a deadly crash", true, true},
		{"She received an AWARD", true, false}, // substring match on "war"
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tone := c.Classify(tt.text)
			assert.Equal(t, tt.negative, tone.Negative)
			assert.Equal(t, tt.positive, tone.Positive)
			assert.Equal(t, tt.negative, c.IsNegative(tt.text))
			assert.Equal(t, !tt.negative, c.IsPositiveish(tt.text))
			assert.Equal(t, tt.positive, c.HasPositiveHint(tt.text))
		})
	}
}

func TestClassifier_PermissivePolicy(t *testing.T) {
	c := DefaultClassifier()
	// No hint at all is still acceptable.
	assert.True(t, c.IsPositiveish("The committee met in Geneva"))
	assert.True(t, c.IsPositiveish("the team won the championship"))
	assert.False(t, c.IsPositiveish("a war broke out"))
}

func TestClassifier_CustomLists(t *testing.T) {
	c := NewClassifier([]string{" Rain ", ""}, []string{"SUN"})

	assert.True(t, c.IsNegative("heavy rain today"))
	assert.False(t, c.IsNegative("a war broke out"), "defaults must not leak into custom lists")
	assert.True(t, c.HasPositiveHint("sunny"))
	assert.False(t, c.IsNegative("anything"), "blank hint must not match everything")
}
