package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"github.com/tartampluch/this-day/internal/config"
)

// ErrInvalidDate is returned by ParseMonthDay for malformed or impossible dates.
var ErrInvalidDate = errors.New(config.ErrInvalidDate)

// Offsets added to the base seed so that sibling selections are decorrelated
// while each stays stable for a given date.
const (
	OffsetFeaturedEvents = 1
	OffsetFeaturedBirths = 2
	OffsetSportsSample   = 4
	OffsetRockSample     = 5
	OffsetFamousCard     = 7
	OffsetFamousPicker   = 4242

	OffsetHeadlinePick = 1
	OffsetSportsPick   = 2
	OffsetRockPick     = 3

	OffsetOpener       = 999
	OffsetRitual       = 1000
	OffsetBirthdayLine = 1001
	OffsetSignoff      = 1002

	OffsetFunFact = 31
)

// pcgStream is the fixed second word of the PCG state. Changing it changes
// every page ever rendered, so it is a constant rather than configuration.
const pcgStream = 0x7468697364617921 // "thisday!"

var monthDayPattern = regexp.MustCompile(`^\s*(\d{1,2})-(\d{1,2})\s*$`)

// Seed encodes a calendar date as MMDD.
func Seed(month, day int) int64 {
	return int64(month*100 + day)
}

// newRand builds a generator private to one call.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// ParseMonthDay parses "MM-DD" (one or two digits each) and validates the
// date against a leap year so that 02-29 is accepted.
func ParseMonthDay(s string) (int, int, error) {
	m := monthDayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if !validMonthDay(month, day) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return month, day, nil
}

// FormatMonthDay renders the MM-DD key used in URLs and the birthday index.
func FormatMonthDay(month, day int) string {
	return fmt.Sprintf(config.DateFormatMonthDay, month, day)
}

func validMonthDay(month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(config.DefaultLeapYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Month() == time.Month(month) && d.Day() == day
}

// DateLabel renders "December 18".
func DateLabel(month, day int) string {
	return time.Date(config.DefaultLeapYear, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(config.DateFormatLabel)
}

// FallbackFunFact is used when the Numbers API has nothing to say.
func FallbackFunFact(month, day int) string {
	date := time.Date(config.DefaultLeapYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	dayOfYear := date.YearDay()
	label := DateLabel(month, day)
	options := []string{
		fmt.Sprintf("%s is day #%d of the year — which means we’re %d days into this year’s nonsense (and excellence).", label, dayOfYear, dayOfYear),
		fmt.Sprintf("On %s, the calendar is basically shouting “main character energy” — use it responsibly.", label),
		fmt.Sprintf("Fun calendar magic: %s happens exactly once per year. Statistically rare. Emotionally elite.", label),
		"Did you know? The best birthdays tend to land on days that end in “today.” Science-ish.",
	}
	return choose(options, Seed(month, day)+OffsetFunFact)
}

// choose picks one option with a generator seeded from seed.
func choose(options []string, seed int64) string {
	if len(options) == 0 {
		return ""
	}
	return options[newRand(seed).IntN(len(options))]
}
