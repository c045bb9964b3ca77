package engine

import (
	"slices"
	"time"
)

// UpcomingBirthday is a family birthday projected onto the calendar.
type UpcomingBirthday struct {
	Name string

	Month int
	Day   int

	// NextOccurrence is the next date on or after today the birthday falls on.
	// 02-29 lands on March 1st in common years.
	NextOccurrence time.Time

	// DaysUntil is 0 on the birthday itself.
	DaysUntil int
}

// NextOccurrence returns the first (month, day) on or after now's calendar date,
// at midnight in now's location.
func NextOccurrence(now time.Time, month, day int) time.Time {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, time.Month(month), day, 0, 0, 0, 0, loc)
	}
	return candidate
}

// Upcoming lists the next limit birthdays starting today, soonest first and
// then by name. Records with an impossible date are skipped.
// A limit <= 0 returns every valid record.
func Upcoming(records []BirthdayRecord, now time.Time, limit int) []UpcomingBirthday {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	out := make([]UpcomingBirthday, 0, len(records))
	for _, r := range records {
		m, d := int(r.Month), int(r.Day)
		if !validMonthDay(m, d) {
			continue
		}
		next := NextOccurrence(now, m, d)
		out = append(out, UpcomingBirthday{
			Name:           r.DisplayName(birthdayFallback),
			Month:          m,
			Day:            d,
			NextOccurrence: next,
			// Round absorbs DST shifts between the two midnights.
			DaysUntil: int(next.Sub(todayStart).Round(24*time.Hour) / (24 * time.Hour)),
		})
	}

	slices.SortStableFunc(out, func(a, b UpcomingBirthday) int {
		if c := a.NextOccurrence.Compare(b.NextOccurrence); c != 0 {
			return c
		}
		_, na := surnameKey(a.Name)
		_, nb := surnameKey(b.Name)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
