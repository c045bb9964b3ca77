package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration read from the environment.
// CLI flags may override individual fields for a single invocation.
type Settings struct {
	User string `env:"APP_USER"`
	Pass string `env:"APP_PASS"`

	BirthdaysFile string `env:"BIRTHDAYS_FILE" envDefault:"birthdays.json"`
	CacheDir      string `env:"CACHE_DIR" envDefault:".cache_this_day"`

	Title    string `env:"PAGE_TITLE"`
	Subtitle string `env:"PAGE_SUBTITLE"`

	SportsKeywords []string `env:"SPORTS_KEYWORDS" envSeparator:","`
	RockKeywords   []string `env:"ROCK_KEYWORDS" envSeparator:","`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":5000"`
	Language   string `env:"LANGUAGE" envDefault:"en"`
	Timezone   string `env:"TIMEZONE" envDefault:"Local"`

	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"720h"`
	WarmSchedule string        `env:"WARM_SCHEDULE" envDefault:"5 0 * * *"`

	// RateLimit is the number of requests allowed per client IP per minute.
	RateLimit int `env:"RATE_LIMIT" envDefault:"60"`

	// ReminderTrigger is the ISO8601 alarm offset attached to ICS events.
	// Empty disables alarms.
	ReminderTrigger string `env:"ICS_REMINDER" envDefault:"-PT9H"`
}

// Load reads an optional .env file and parses the process environment.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(MsgDotenvSkip, LogKeyComponent, CompMain, LogKeyError, err)
	}
	return Parse(env.Options{})
}

// Parse builds Settings from the given env options. Tests pass an explicit
// Environment map to stay independent from the process environment.
func Parse(opts env.Options) (*Settings, error) {
	s := &Settings{}
	if err := env.Parse(s, opts); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettings, err)
	}
	s.normalize()
	return s, nil
}

// Location resolves the configured timezone used to decide "today".
func (s *Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrTimezone, s.Timezone, err)
	}
	return loc, nil
}

func (s *Settings) normalize() {
	if strings.TrimSpace(s.Title) == "" {
		s.Title = DefaultTitle
	}
	if strings.TrimSpace(s.Subtitle) == "" {
		s.Subtitle = DefaultSubtitle
	}
	if strings.TrimSpace(s.Language) == "" {
		s.Language = DefaultLanguage
	}
	s.SportsKeywords = KeywordsOrDefault(s.SportsKeywords, DefaultSportsKeywords)
	s.RockKeywords = KeywordsOrDefault(s.RockKeywords, DefaultRockKeywords)
}

// SplitKeywords splits a comma-separated flag value, dropping blanks.
func SplitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// KeywordsOrDefault trims the list and falls back to def when nothing usable remains.
func KeywordsOrDefault(keywords, def []string) []string {
	var out []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
