package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/calendar"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/metrics"
)

type loaderFunc func() ([]engine.BirthdayRecord, error)

func (f loaderFunc) Load() ([]engine.BirthdayRecord, error) { return f() }

func TestRefresh(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}}

	var published []byte
	err := b.Refresh(context.Background(), loaderFunc(func() ([]engine.BirthdayRecord, error) {
		return []engine.BirthdayRecord{{Name: "Patti", Month: 5, Day: 14}}, nil
	}), func(data []byte) { published = data })

	require.NoError(t, err)
	assert.Contains(t, string(published), "BEGIN:VEVENT")
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.CalendarEvents))
}

func TestRefresh_LoadFailureKeepsFeed(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Now()}}
	boom := errors.New("unreadable")

	called := false
	err := b.Refresh(context.Background(), loaderFunc(func() ([]engine.BirthdayRecord, error) {
		return nil, boom
	}), func([]byte) { called = true })

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
