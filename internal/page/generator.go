// Package page assembles one family page: it resolves the date, loads the
// birthdays, consults the almanac when facts are requested and renders HTML.
package page

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/this-day/internal/almanac"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/metrics"
	"github.com/tartampluch/this-day/internal/render"
)

// BirthdayLoader reads the family list.
type BirthdayLoader interface {
	Load() ([]engine.BirthdayRecord, error)
}

// Almanac provides the external trivia for a date.
type Almanac interface {
	Lookup(ctx context.Context, month, day int) almanac.Result
}

// Request is one page request. An empty Date means today.
type Request struct {
	Date string
	Show bool
	Lang string
}

// Generator is shared by the HTTP handler and the static export.
type Generator struct {
	Clock    engine.Clock
	Store    BirthdayLoader
	Almanac  Almanac
	Curator  *engine.Curator
	Renderer *render.Renderer

	Title    string
	Subtitle string
}

// Generate renders the page for req into w. A malformed date yields an error
// matching engine.ErrInvalidDate before anything is written.
func (g *Generator) Generate(ctx context.Context, req Request, w io.Writer) error {
	start := time.Now()
	now := g.Clock.Now()

	month, day := int(now.Month()), now.Day()
	if strings.TrimSpace(req.Date) != "" {
		var err error
		if month, day, err = engine.ParseMonthDay(req.Date); err != nil {
			return err
		}
	}

	records, err := g.Store.Load()
	if err != nil {
		return err
	}

	p := render.Page{
		Title:          g.Title,
		Subtitle:       g.Subtitle,
		Lang:           req.Lang,
		Now:            now,
		Month:          month,
		Day:            day,
		Show:           req.Show,
		Records:        records,
		SportsKeywords: g.Curator.SportsKeywords,
		RockKeywords:   g.Curator.RockKeywords,
	}

	if req.Show {
		res := g.Almanac.Lookup(ctx, month, day)
		p.Digest = g.Curator.Curate(engine.DigestInput{
			Month:   month,
			Day:     day,
			Payload: res.Payload,
			FunFact: res.FunFact,
			Records: records,
		})
		p.EventsTotal = len(res.Payload.Events)
		p.BirthsTotal = len(res.Payload.Births)
		p.Debug = res.DebugLine()
	}

	if err := g.Renderer.Render(w, p); err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrRender, engine.FormatMonthDay(month, day), err)
	}

	metrics.RecordPage(req.Show)
	slog.DebugContext(ctx, config.MsgPageRendered,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyDate, engine.FormatMonthDay(month, day),
		config.LogKeyShow, req.Show,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

// ParseShow interprets the "show" query value.
func ParseShow(value string) bool {
	return slices.Contains(config.ShowValues, strings.ToLower(strings.TrimSpace(value)))
}
