package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickPositive_HeadlineSkipsNegative(t *testing.T) {
	events := []TriviaItem{
		{Year: "1990", Text: "Team won the championship"},
		{Year: "1941", Text: "A deadly attack occurred"},
	}

	for seed := int64(0); seed < 100; seed++ {
		it, ok := PickPositive(events, seed, DefaultClassifier())
		require.True(t, ok)
		assert.Equal(t, "1990", it.Year, "seed %d", seed)
	}
}

func TestPickPositive_PrefersPositiveHints(t *testing.T) {
	events := []TriviaItem{
		{Year: "1900", Text: "A committee met"},
		{Year: "1901", Text: "The first bridge opened"},
		{Year: "1902", Text: "Another committee met"},
	}

	for seed := int64(0); seed < 50; seed++ {
		it, ok := PickPositive(events, seed, DefaultClassifier())
		require.True(t, ok)
		assert.Equal(t, "1901", it.Year)
	}
}

func TestPickPositive_FallsBackToNeutral(t *testing.T) {
	events := []TriviaItem{{Year: "1900", Text: "A committee met"}}

	it, ok := PickPositive(events, 7, DefaultClassifier())
	require.True(t, ok)
	assert.Equal(t, "1900", it.Year)
}

func TestPickPositive_NoneFound(t *testing.T) {
	_, ok := PickPositive(nil, 1, DefaultClassifier())
	assert.False(t, ok)

	_, ok = PickPositive([]TriviaItem{{Text: "  "}, {Text: "a war broke out"}}, 1, DefaultClassifier())
	assert.False(t, ok)
}

func TestJoinNames(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"A"}, "A"},
		{[]string{"A", "B"}, "A and B"},
		{[]string{"A", "B", "C"}, "A, B, and C"},
		{[]string{" A ", "", "  ", "B"}, "A and B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinNames(tt.in), "%q", tt.in)
	}
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "", Sentence("   "))
	assert.Equal(t, "Hello.", Sentence(" Hello "))
	assert.Equal(t, "Wow!", Sentence("Wow!"))
	assert.Equal(t, "Really?", Sentence("Really?"))
	assert.Equal(t, "Done.", Sentence("Done."))
	assert.Equal(t, "Cake 🎂.", Sentence("Cake 🎂"))
}

func TestCompose_Headline(t *testing.T) {
	c := NewComposer(nil)
	out := c.Compose(SummaryInput{
		DateLabel: "December 18",
		FunFact:   "December 18 is a fine day.",
		Featured: []TriviaItem{
			{Year: "1990", Text: "Team won the championship"},
			{Year: "1941", Text: "A deadly attack occurred"},
		},
		Seed: 1218,
	})

	assert.Contains(t, out, "December 18")
	assert.Contains(t, out, "On this day in 1990: Team won the championship.")
	assert.Contains(t, out, "Did you know? December 18 is a fine day.")
	assert.NotContains(t, out, "1941")
	assert.Contains(t, out, stealthBirthday)
}

func TestCompose_FallbackHeadlineAndNoFunFact(t *testing.T) {
	out := NewComposer(nil).Compose(SummaryInput{DateLabel: "May 14", Seed: 514})

	assert.Contains(t, out, headlineFallback+".")
	assert.NotContains(t, out, "Did you know?")
	assert.NotContains(t, out, "Boston sports corner")
	assert.NotContains(t, out, "Famous birthday roll call")
}

func TestCompose_FamilyAndFamous(t *testing.T) {
	out := NewComposer(nil).Compose(SummaryInput{
		DateLabel:    "May 14",
		Sports:       []TriviaItem{{Year: "2004", Text: "Red Sox won the World Series"}},
		Rock:         []TriviaItem{{Year: "1969", Text: "The Beatles released an album"}},
		BirthdayHits: []BirthdayRecord{{Name: "Patti"}, {Name: "Zoe Adams"}},
		FamousNames:  []string{"Ada Lovelace", "Ringo Starr"},
		Seed:         514,
	})

	assert.Contains(t, out, "🏟️ Boston sports corner: 2004 — Red Sox won the World Series.")
	assert.Contains(t, out, "🎸 Classic rock time machine: 1969 — The Beatles released an album.")
	assert.Contains(t, out, "Ada Lovelace and Ringo Starr share this date too.")
	assert.Contains(t, out, famousTheme)
	assert.Contains(t, out, "Patti and Zoe Adams")
	assert.Contains(t, out, birthdayCallout+".")
	assert.NotContains(t, out, stealthBirthday)
}

func TestCompose_DeterministicAndWellFormed(t *testing.T) {
	c := NewComposer(nil)
	for seed := int64(101); seed < 1232; seed += 37 {
		in := SummaryInput{
			DateLabel: "June 1",
			FunFact:   "  ",
			Featured:  []TriviaItem{{Year: "1", Text: "x"}, {Year: "2", Text: "y won"}},
			Seed:      seed,
		}
		out := c.Compose(in)

		assert.Equal(t, out, c.Compose(in))
		assert.NotContains(t, out, "  ")
		assert.Equal(t, strings.TrimSpace(out), out)
		last := out[len(out)-1]
		assert.Contains(t, ".!?", string(last), "seed %d ends with %q", seed, last)
	}
}
