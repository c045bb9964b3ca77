package calendar

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
)

// Stats summarizes one feed generation.
type Stats struct {
	People  int // records considered
	Valid   int // records with a usable date
	Today   int // birthdays falling on the clock's current date
	Events  int // VEVENTs written
	Skipped int // records without a name or with an impossible date
}

// Builder renders family birthdays as an iCalendar feed.
type Builder struct {
	Clock engine.Clock

	// ReminderTrigger is an ISO 8601 duration such as "-PT9H". Empty disables alarms.
	ReminderTrigger string

	// FormatSummary lets the caller inject a localized event title.
	FormatSummary func(name string) string
}

// Build renders one VEVENT per person for the previous, current and next year.
// An empty feed is still a valid VCALENDAR.
func (b *Builder) Build(ctx context.Context, records []engine.BirthdayRecord) ([]byte, Stats, error) {
	start := time.Now()
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays follow the local calendar date; only DTSTAMP is UTC.
	now := b.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	var stats Stats
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		stats.People++

		name := strings.TrimSpace(r.Name)
		month, day := int(r.Month), int(r.Day)
		if name == "" {
			stats.Skipped++
			continue
		}
		if _, _, err := engine.ParseMonthDay(engine.FormatMonthDay(month, day)); err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyName, name,
				config.LogKeyValue, engine.FormatMonthDay(month, day))
			stats.Skipped++
			continue
		}
		stats.Valid++

		events, isToday := b.createEvents(name, month, day, now, UID(name, month, day))
		if isToday {
			stats.Today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompCalendar,
				config.LogKeyName, name)
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
		stats.Events += len(events)
	}

	if len(cal.Children) == 0 {
		logStats(stats, start)
		return []byte(config.StubVCalendar), stats, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, stats, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	logStats(stats, start)
	return buf.Bytes(), stats, nil
}

// UID is the stable identifier base for a person, independent of the year.
func UID(name string, month, day int) string {
	input := fmt.Sprintf(config.FormatHashInput, strings.ToLower(name), month, day, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

func logStats(stats Stats, start time.Time) {
	slog.Info(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.People),
			slog.Int(config.LogKeyFound, stats.Valid),
			slog.Int(config.LogKeyToday, stats.Today),
			slog.Int(config.LogKeyEvents, stats.Events),
		),
	)
}

// createEvents emits events for CurrentYear-1 .. CurrentYear+1 so calendar
// clients scrolling around the present see them without a refresh.
func (b *Builder) createEvents(name string, month, day int, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	loc := now.Location()
	todayYear, todayMonth, todayDay := now.Date()

	summary := fmt.Sprintf(config.FallbackSummary, name)
	if b.FormatSummary != nil {
		summary = b.FormatSummary(name)
	}

	var events []*ical.Event
	isToday := false
	for y := currentYear - 1; y <= currentYear+1; y++ {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		// time.Date moves 02-29 to March 1st in common years.
		eventDate := time.Date(y, time.Month(month), day, 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if b.ReminderTrigger != "" {
			addAlarm(event, b.ReminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value avoids a VALUE=TEXT parameter on TRIGGER.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
