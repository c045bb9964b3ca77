package scheduler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tartampluch/this-day/internal/almanac"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/metrics"
)

// Almanac is the lookup the warm-up primes.
type Almanac interface {
	Lookup(ctx context.Context, month, day int) almanac.Result
}

// WarmupJob fetches today's and the following days' trivia so the first
// page of the day is served from cache.
func WarmupJob(spec string, clock engine.Clock, a Almanac) Job {
	return Job{
		Name: config.JobWarmup,
		Spec: spec,
		Run: func(ctx context.Context) error {
			slog.Info(config.MsgWarmStart, config.LogKeyComponent, config.CompScheduler)

			now := clock.Now()
			var problems []string
			for i := 0; i <= config.WarmDaysAhead; i++ {
				d := now.AddDate(0, 0, i)
				res := a.Lookup(ctx, int(d.Month()), d.Day())
				problems = append(problems, res.Problems...)
			}

			if len(problems) > 0 {
				metrics.WarmupRuns.WithLabelValues(metrics.ResultFailure).Inc()
				return errors.New(almanac.Result{Problems: problems}.DebugLine())
			}
			metrics.WarmupRuns.WithLabelValues(metrics.ResultSuccess).Inc()
			slog.Info(config.MsgWarmDone,
				config.LogKeyComponent, config.CompScheduler,
				config.LogKeyCount, config.WarmDaysAhead+1,
			)
			return nil
		},
	}
}
