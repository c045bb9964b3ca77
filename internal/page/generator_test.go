package page

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/almanac"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/render"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type stubStore struct {
	records []engine.BirthdayRecord
	err     error
}

func (s stubStore) Load() ([]engine.BirthdayRecord, error) { return s.records, s.err }

type MockAlmanac struct {
	mock.Mock
}

func (m *MockAlmanac) Lookup(ctx context.Context, month, day int) almanac.Result {
	args := m.Called(ctx, month, day)
	return args.Get(0).(almanac.Result)
}

func newGenerator(t *testing.T, a Almanac, store BirthdayLoader) *Generator {
	t.Helper()
	tr, err := render.NewTranslator("en")
	require.NoError(t, err)
	r, err := render.NewRenderer(tr)
	require.NoError(t, err)
	return &Generator{
		Clock:    fixedClock{time.Date(2025, 12, 18, 10, 0, 0, 0, time.UTC)},
		Store:    store,
		Almanac:  a,
		Curator:  engine.NewCurator(nil, nil),
		Renderer: r,
		Title:    "This Day",
	}
}

var family = stubStore{records: []engine.BirthdayRecord{{Name: "Patti", Month: 5, Day: 14}}}

func TestGenerate_NoShowSkipsAlmanac(t *testing.T) {
	a := new(MockAlmanac)
	g := newGenerator(t, a, family)

	var buf bytes.Buffer
	require.NoError(t, g.Generate(context.Background(), Request{}, &buf))

	a.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, buf.String(), "date=<strong>12-18</strong>", "defaults to today")
	assert.Contains(t, buf.String(), "Ready when you are")
}

func TestGenerate_Show(t *testing.T) {
	a := new(MockAlmanac)
	a.On("Lookup", mock.Anything, 5, 14).Return(almanac.Result{
		Payload: engine.Payload{
			Events: []engine.TriviaItem{{Year: "1975", Text: "Fenway celebrates a home opener"}},
			Births: []engine.TriviaItem{},
		},
		FunFact:  "May 14th is a fine day.",
		Problems: []string{"NumbersAPI failed: timeout"},
	}).Once()
	g := newGenerator(t, a, family)

	var buf bytes.Buffer
	require.NoError(t, g.Generate(context.Background(), Request{Date: "5-14", Show: true, Lang: "en"}, &buf))

	a.AssertExpectations(t)
	out := buf.String()
	assert.Contains(t, out, "Fenway celebrates a home opener")
	assert.Contains(t, out, "May 14th is a fine day.")
	assert.Contains(t, out, "NumbersAPI failed: timeout")
	assert.Contains(t, out, "events=<strong>1</strong>")
	assert.Contains(t, out, "happy birthday")
}

func TestGenerate_InvalidDate(t *testing.T) {
	a := new(MockAlmanac)
	g := newGenerator(t, a, family)

	for _, date := range []string{"13-01", "02-30", "christmas"} {
		var buf bytes.Buffer
		err := g.Generate(context.Background(), Request{Date: date, Show: true}, &buf)
		require.Error(t, err, date)
		assert.ErrorIs(t, err, engine.ErrInvalidDate)
		assert.Zero(t, buf.Len())
	}
	a.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	g := newGenerator(t, new(MockAlmanac), stubStore{err: boom})

	var buf bytes.Buffer
	err := g.Generate(context.Background(), Request{}, &buf)
	assert.ErrorIs(t, err, boom)
}

func TestParseShow(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " y "} {
		assert.True(t, ParseShow(v), v)
	}
	for _, v := range []string{"", "0", "no", "maybe"} {
		assert.False(t, ParseShow(v), v)
	}
}
