package calendar_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/calendar"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestBuild_GeneratesYearRange(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	ics, stats, err := b.Build(context.Background(), []engine.BirthdayRecord{
		{Name: "Range Test", Month: 12, Day: 31},
	})
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "Should include previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "Should include current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "Should include next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
	assert.Equal(t, 3, stats.Events)
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Range Test")
}

func TestBuild_ParsesAsICalendar(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}}

	ics, _, err := b.Build(context.Background(), []engine.BirthdayRecord{
		{Name: "Patti", Month: 5, Day: 14},
		{Name: "Zoe Adams", Month: 12, Day: 18},
	})
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(ics)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	assert.Len(t, events, 6)

	uids := map[string]bool{}
	for _, e := range events {
		uid, err := e.Props.Text(config.PropUID)
		require.NoError(t, err)
		assert.False(t, uids[uid], "UID %s repeated", uid)
		uids[uid] = true
	}
}

func TestBuild_TodayAndReminder(t *testing.T) {
	b := &calendar.Builder{
		Clock:           MockClock{CurrentTime: time.Date(2025, 5, 14, 8, 0, 0, 0, time.UTC)},
		ReminderTrigger: "-PT9H",
		FormatSummary:   func(name string) string { return "Anniversaire : " + name },
	}

	ics, stats, err := b.Build(context.Background(), []engine.BirthdayRecord{{Name: "Patti", Month: 5, Day: 14}})
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Equal(t, 1, stats.Today)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-PT9H")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
	assert.Contains(t, icsStr, "Anniversaire : Patti")
}

func TestBuild_SkipsInvalidRecords(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	ics, stats, err := b.Build(context.Background(), []engine.BirthdayRecord{
		{Name: "", Month: 1, Day: 1},
		{Name: "Bad", Month: 2, Day: 30},
		{Name: "Zero"},
	})
	require.NoError(t, err)

	assert.Equal(t, config.StubVCalendar, string(ics), "an empty feed is still a valid calendar")
	assert.Equal(t, 3, stats.People)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 0, stats.Events)
}

func TestBuild_LeapDayInCommonYear(t *testing.T) {
	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	ics, _, err := b.Build(context.Background(), []engine.BirthdayRecord{{Name: "Leapling", Month: 2, Day: 29}})
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240229")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250301")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260301")
}

func TestBuild_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &calendar.Builder{Clock: MockClock{CurrentTime: time.Now()}}
	_, _, err := b.Build(ctx, []engine.BirthdayRecord{{Name: "Patti", Month: 5, Day: 14}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUID_StableAndCaseInsensitive(t *testing.T) {
	assert.Equal(t, calendar.UID("Patti", 5, 14), calendar.UID("PATTI", 5, 14))
	assert.NotEqual(t, calendar.UID("Patti", 5, 14), calendar.UID("Patti", 5, 15))
	assert.Len(t, calendar.UID("Patti", 5, 14), config.UIDHashLength*2)
}
