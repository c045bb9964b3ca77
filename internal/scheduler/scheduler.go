// Package scheduler runs the periodic background jobs: almanac cache
// warm-up and calendar feed refresh.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/this-day/internal/config"
)

// Job is a named unit of periodic work. Spec uses the standard five-field
// cron syntax or descriptors such as "@every 15m".
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler wraps a cron runner. Jobs never overlap with themselves and a
// panicking job does not stop the others.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	jobs []Job
}

// New returns a scheduler evaluating specs in loc.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx: context.Background(),
	}
}

// Add registers job. It must be called before Start.
func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("%s %q: %w", config.ErrSchedule, job.Spec, err)
	}
	s.jobs = append(s.jobs, job)
	slog.Debug(config.MsgJobAdded,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyJob, job.Name,
		config.LogKeySchedule, job.Spec,
	)
	return nil
}

// RunAll executes every registered job once, in registration order.
func (s *Scheduler) RunAll(ctx context.Context) {
	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return
		}
		s.runWith(ctx, job)
	}
}

// Run executes every job once in the background, then follows the cron
// loop until ctx is cancelled. It returns only after the startup pass and
// every running job have finished.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Go(func() { s.RunAll(ctx) })
	s.Start(ctx)
	wg.Wait()
}

// Start runs the cron loop until ctx is cancelled, then waits for running
// jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	slog.Info(config.MsgSchedStart,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyCount, len(s.jobs),
	)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	slog.Info(config.MsgSchedStop, config.LogKeyComponent, config.CompScheduler)
}

func (s *Scheduler) run(job Job) {
	s.runWith(s.ctx, job)
}

func (s *Scheduler) runWith(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		slog.Error(config.MsgJobFailed,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyJob, job.Name,
			config.LogKeyError, err,
		)
		return
	}
	slog.Debug(config.MsgJobDone,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyJob, job.Name,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug(config.MsgCron, append([]any{config.LogKeyComponent, config.CompScheduler, config.LogKeyValue, msg}, keysAndValues...)...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(config.MsgCron, append([]any{config.LogKeyComponent, config.CompScheduler, config.LogKeyValue, msg, config.LogKeyError, err}, keysAndValues...)...)
}
