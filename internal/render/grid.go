package render

import (
	"strings"
	"time"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
)

// Day is one cell of the mini calendar. Zero Day means a padding cell.
type Day struct {
	Day      int
	Key      string // MM-DD
	Names    string // tooltip, comma-separated
	Selected bool
	Today    bool
}

// HasBirthday reports whether someone in the family was born that day.
func (d Day) HasBirthday() bool {
	return d.Names != ""
}

// MonthGrid is the mini calendar shown under the hero.
type MonthGrid struct {
	Title   string
	Weeks   [][]Day
	PrevKey string // MM-01 of the previous month
	NextKey string // MM-01 of the next month
}

// GridYear is the year whose calendar shows month/day. It stays on year
// unless the day does not exist there (02-29 in a common year).
func GridYear(year, month, day int) int {
	if t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC); day > 0 && t.Day() != day {
		return config.DefaultLeapYear
	}
	return year
}

// BuildMonthGrid lays out month of year in Sunday-first weeks. index maps
// MM-DD to the names born that day.
func BuildMonthGrid(year, month, selectedDay int, today time.Time, index map[string][]string, monthNames []string) MonthGrid {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	_, todayMonth, todayDay := today.Date()

	var weeks [][]Day
	week := make([]Day, int(first.Weekday()))
	for d := 1; d <= daysIn; d++ {
		key := engine.FormatMonthDay(month, d)
		week = append(week, Day{
			Day:      d,
			Key:      key,
			Names:    strings.Join(index[key], ", "),
			Selected: d == selectedDay,
			Today:    today.Year() == year && int(todayMonth) == month && todayDay == d,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		weeks = append(weeks, week)
	}

	title := first.Month().String()
	if len(monthNames) == 12 {
		title = monthNames[month-1]
	}
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	return MonthGrid{
		Title:   title + " " + first.Format("2006"),
		Weeks:   weeks,
		PrevKey: engine.FormatMonthDay(int(prev.Month()), 1),
		NextKey: engine.FormatMonthDay(int(next.Month()), 1),
	}
}
