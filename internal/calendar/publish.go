package calendar

import (
	"context"
	"fmt"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/metrics"
)

// RecordLoader reads the family list.
type RecordLoader interface {
	Load() ([]engine.BirthdayRecord, error)
}

// Refresh reloads the records, rebuilds the feed and hands it to publish.
// On failure the previously published feed stays in place.
func (b *Builder) Refresh(ctx context.Context, loader RecordLoader, publish func([]byte)) error {
	records, err := loader.Load()
	if err != nil {
		metrics.CalendarBuilds.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	data, stats, err := b.Build(ctx, records)
	if err != nil {
		metrics.CalendarBuilds.WithLabelValues(metrics.ResultFailure).Inc()
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	metrics.CalendarBuilds.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.CalendarEvents.Set(float64(stats.Events))
	publish(data)
	return nil
}
