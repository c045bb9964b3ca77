package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthGrid(t *testing.T) {
	today := time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC)
	index := map[string][]string{"02-14": {"Amy", "Bob"}}

	g := BuildMonthGrid(2025, 2, 14, today, index, nil)

	assert.Equal(t, "February 2025", g.Title)
	assert.Equal(t, "01-01", g.PrevKey)
	assert.Equal(t, "03-01", g.NextKey)

	// February 1st 2025 is a Saturday.
	require.Len(t, g.Weeks, 5)
	assert.Equal(t, 0, g.Weeks[0][5].Day)
	assert.Equal(t, 1, g.Weeks[0][6].Day)
	for _, w := range g.Weeks {
		assert.Len(t, w, 7)
	}

	var found bool
	for _, w := range g.Weeks {
		for _, d := range w {
			switch d.Day {
			case 14:
				found = true
				assert.True(t, d.Selected)
				assert.True(t, d.HasBirthday())
				assert.Equal(t, "Amy, Bob", d.Names)
			case 3:
				assert.True(t, d.Today)
			}
		}
	}
	assert.True(t, found)
}

func TestBuildMonthGrid_YearWrap(t *testing.T) {
	g := BuildMonthGrid(2025, 12, 1, time.Now(), nil, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "décembre"})
	assert.Equal(t, "décembre 2025", g.Title)
	assert.Equal(t, "11-01", g.PrevKey)
	assert.Equal(t, "01-01", g.NextKey)
}

func TestGridYear(t *testing.T) {
	assert.Equal(t, 2025, GridYear(2025, 2, 28))
	assert.Equal(t, 2000, GridYear(2025, 2, 29), "leap day falls back to a leap year")
	assert.Equal(t, 2024, GridYear(2024, 2, 29))
	assert.Equal(t, 2025, GridYear(2025, 12, 31))
}
