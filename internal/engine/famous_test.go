package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", BirthName(TriviaItem{Text: " Ada Lovelace, English mathematician"}))
	assert.Equal(t, "Plato", BirthName(TriviaItem{Text: "Plato"}))
	assert.Equal(t, "", BirthName(TriviaItem{Text: "   "}))
}

func TestPickFamous_Empty(t *testing.T) {
	assert.Equal(t, []string{}, PickFamous(nil, 1, 2, DefaultClassifier()))
	assert.Equal(t, []string{}, PickFamous([]TriviaItem{}, 1, 2, DefaultClassifier()))
}

func TestPickFamous_FiltersAndDedupes(t *testing.T) {
	births := []TriviaItem{
		{Year: "1815", Text: "Ada Lovelace, English mathematician"},
		{Year: "1900", Text: "ADA LOVELACE, duplicate entry"},
		{Year: "1920", Text: "Grim Person, died in a shooting"},
		{Year: "1950", Text: ""},
		{Year: "1960", Text: "Ringo Starr, English drummer"},
	}

	got := PickFamous(births, 1218, 6, DefaultClassifier())
	assert.Equal(t, []string{"Ada Lovelace", "Ringo Starr"}, got)
}

func TestPickFamous_SamplesWhenCrowded(t *testing.T) {
	births := []TriviaItem{
		{Text: "A One, singer"},
		{Text: "B Two, painter"},
		{Text: "C Three, poet"},
		{Text: "D Four, chef"},
		{Text: "E Five, pilot"},
	}

	a := PickFamous(births, 1218, 2, DefaultClassifier())
	b := PickFamous(births, 1218, 2, DefaultClassifier())

	require.Len(t, a, 2)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0], a[1])
}
