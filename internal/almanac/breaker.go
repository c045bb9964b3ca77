package almanac

import (
	"log/slog"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/metrics"
)

// newBreaker guards one upstream. It opens after a run of consecutive
// failures and probes again after config.BreakerTimeout.
func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	metrics.BreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: config.BreakerMaxRequests,
		Interval:    config.BreakerInterval,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.BreakerTripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn(config.MsgBreakerState,
				config.LogKeyComponent, config.CompAlmanac,
				config.LogKeyBreaker, name,
				config.LogKeyFrom, from.String(),
				config.LogKeyTo, to.String())
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
