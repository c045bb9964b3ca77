package main

import (
	"context"
	"time"

	"github.com/tartampluch/this-day/internal/almanac"
	"github.com/tartampluch/this-day/internal/auth"
	"github.com/tartampluch/this-day/internal/calendar"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/page"
	"github.com/tartampluch/this-day/internal/render"
	"github.com/tartampluch/this-day/internal/scheduler"
	"github.com/tartampluch/this-day/internal/server"
	"github.com/tartampluch/this-day/internal/store"
)

// deps holds the services shared by the server and the static export.
type deps struct {
	clock   engine.RealClock
	loc     *time.Location
	tr      *render.Translator
	almanac *almanac.Service
	cache   *almanac.Cache
	pages   *page.Generator
}

// newDeps wires the page pipeline. withAlmanac opens the on-disk cache.
func newDeps(s *config.Settings, fs *store.FileStore, withAlmanac bool) (*deps, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	tr, err := render.NewTranslator(s.Language)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(tr)
	if err != nil {
		return nil, err
	}

	d := &deps{clock: engine.RealClock{Location: loc}, loc: loc, tr: tr}
	if withAlmanac {
		if d.cache, err = almanac.OpenCache(s.CacheDir, s.CacheTTL); err != nil {
			return nil, err
		}
		d.almanac = almanac.NewService(almanac.NewHTTPFetcher(), d.cache)
	}

	d.pages = &page.Generator{
		Clock:    d.clock,
		Store:    fs,
		Curator:  engine.NewCurator(s.SportsKeywords, s.RockKeywords),
		Renderer: renderer,
		Title:    s.Title,
		Subtitle: s.Subtitle,
	}
	if d.almanac != nil {
		d.pages.Almanac = d.almanac
	}
	return d, nil
}

// Close releases the almanac cache.
func (d *deps) Close() {
	if d.cache != nil {
		_ = d.cache.Close()
	}
}

func pageRequest(o options, s *config.Settings) page.Request {
	return page.Request{Date: o.date, Show: o.show, Lang: s.Language}
}

// serve runs the HTTP server with its background jobs until ctx ends.
func serve(ctx context.Context, s *config.Settings, fs *store.FileStore) error {
	if err := fs.Ensure(); err != nil {
		return err
	}

	pass, err := auth.ResolvePassword(s.User, s.Pass)
	if err != nil {
		return err
	}
	guard, err := auth.NewBasicAuth(s.User, pass)
	if err != nil {
		return err
	}

	d, err := newDeps(s, fs, true)
	if err != nil {
		return err
	}
	defer d.Close()

	srv := server.New(s.ListenAddr, d.pages, guard, s.RateLimit)

	loc := d.tr.Localizer(s.Language)
	builder := &calendar.Builder{
		Clock:           d.clock,
		ReminderTrigger: s.ReminderTrigger,
		FormatSummary:   loc.EventSummary,
	}

	sched := scheduler.New(d.loc)
	if err := sched.Add(scheduler.Job{
		Name: config.JobCalendar,
		Spec: config.CalendarSchedule,
		Run: func(ctx context.Context) error {
			return builder.Refresh(ctx, fs, srv.Calendar.Update)
		},
	}); err != nil {
		return err
	}
	if err := sched.Add(scheduler.WarmupJob(s.WarmSchedule, d.clock, d.almanac)); err != nil {
		return err
	}

	// Publish the feed before accepting traffic; warm the cache in the background.
	if err := builder.Refresh(ctx, fs, srv.Calendar.Update); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Jobs use the cache, so the scheduler finishes before d.Close runs.
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		sched.Run(ctx)
	}()

	err = srv.Start(ctx)
	cancel()
	<-schedDone
	return err
}
