package almanac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/engine"
)

func TestCache_PutGet(t *testing.T) {
	c, err := OpenMemoryCache(time.Hour)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	var miss engine.Payload
	ok, err := c.Get("nothing", &miss)
	require.NoError(t, err)
	assert.False(t, ok)

	in := engine.Payload{
		Events: []engine.TriviaItem{{Year: "1990", Text: "Team won"}},
		Births: []engine.TriviaItem{},
	}
	require.NoError(t, c.Put("k", in))

	var out engine.Payload
	ok, err = c.Get("k", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCache_OnDiskSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	c, err := OpenCache(dir, 0)
	require.NoError(t, err)
	require.NoError(t, c.Put("fact", numbersFact{Text: "hello"}))
	require.NoError(t, c.Close())

	c, err = OpenCache(dir, 0)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	var got numbersFact
	ok, err := c.Get("fact", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", got.Text)
}
