// Package almanac fetches "on this day" trivia from Wikimedia and date facts
// from the Numbers API, with a persistent cache and per-source breakers.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/metrics"
)

// numbersFact is the subset of the Numbers API response that matters.
type numbersFact struct {
	Text string `json:"text"`
}

// Result is everything the page needs from the outside world for one date.
type Result struct {
	Payload engine.Payload
	FunFact string
	// Problems lists upstream failures, in the order they happened.
	Problems []string
}

// DebugLine joins the problems for the page's debug strip.
func (r Result) DebugLine() string {
	return strings.Join(r.Problems, " | ")
}

// Service is safe for concurrent use.
type Service struct {
	fetcher Fetcher
	cache   *Cache

	wikimedia *gobreaker.CircuitBreaker[[]byte]
	numbers   *gobreaker.CircuitBreaker[[]byte]

	// URL formats taking (month, day). Tests point them at httptest servers.
	WikimediaURL string
	NumbersURL   string
}

// NewService wires the default upstream URLs. cache may be nil, in which
// case every call goes to the network.
func NewService(fetcher Fetcher, cache *Cache) *Service {
	return &Service{
		fetcher:      fetcher,
		cache:        cache,
		wikimedia:    newBreaker(config.BreakerWikimedia),
		numbers:      newBreaker(config.BreakerNumbers),
		WikimediaURL: config.WikimediaOnThisDayURL,
		NumbersURL:   config.NumbersAPIDateURL,
	}
}

// Lookup gathers trivia and a fun fact for the date. It never fails: an
// unavailable source degrades to an empty payload or the fallback fun fact.
func (s *Service) Lookup(ctx context.Context, month, day int) Result {
	var res Result

	payload, err := s.OnThisDay(ctx, month, day)
	if err != nil {
		res.Problems = append(res.Problems, fmt.Sprintf("Wikimedia fetch failed: %v", err))
	}
	res.Payload = payload

	fact, err := s.FunFact(ctx, month, day)
	if err != nil {
		res.Problems = append(res.Problems, fmt.Sprintf("NumbersAPI failed: %v", err))
	}
	res.FunFact = fact
	return res
}

// OnThisDay returns the Wikimedia events and births for the date. On error
// the returned payload is empty, never nil.
func (s *Service) OnThisDay(ctx context.Context, month, day int) (engine.Payload, error) {
	key := fmt.Sprintf(config.CacheKeyWikimedia, month, day)

	var cached engine.Payload
	if s.cacheGet(config.BreakerWikimedia, key, &cached) {
		return withEmptySlices(cached), nil
	}

	body, err := s.fetch(ctx, s.wikimedia, fmt.Sprintf(s.WikimediaURL, month, day))
	if err != nil {
		s.fail(config.BreakerWikimedia, err)
		return engine.EmptyPayload(), err
	}

	var payload engine.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		err = fmt.Errorf("%s: %w", config.ErrDecode, err)
		s.fail(config.BreakerWikimedia, err)
		return engine.EmptyPayload(), err
	}
	payload = withEmptySlices(payload)

	metrics.AlmanacRequests.WithLabelValues(config.BreakerWikimedia, metrics.ResultSuccess).Inc()
	s.cachePut(key, payload)
	return payload, nil
}

// FunFact returns the Numbers API fact for the date, or the fallback fact
// together with the reason the upstream could not be used.
func (s *Service) FunFact(ctx context.Context, month, day int) (string, error) {
	key := fmt.Sprintf(config.CacheKeyNumbers, month, day)

	var cached numbersFact
	if s.cacheGet(config.BreakerNumbers, key, &cached) {
		if text := strings.TrimSpace(cached.Text); text != "" {
			return text, nil
		}
	}

	body, err := s.fetch(ctx, s.numbers, fmt.Sprintf(s.NumbersURL, month, day))
	if err != nil {
		s.fail(config.BreakerNumbers, err)
		return engine.FallbackFunFact(month, day), err
	}

	var fact numbersFact
	if err := json.Unmarshal(body, &fact); err != nil {
		err = fmt.Errorf("%s: %w", config.ErrDecode, err)
		s.fail(config.BreakerNumbers, err)
		return engine.FallbackFunFact(month, day), err
	}

	metrics.AlmanacRequests.WithLabelValues(config.BreakerNumbers, metrics.ResultSuccess).Inc()
	s.cachePut(key, fact)

	if text := strings.TrimSpace(fact.Text); text != "" {
		return text, nil
	}
	metrics.AlmanacRequests.WithLabelValues(config.BreakerNumbers, metrics.ResultFallback).Inc()
	return engine.FallbackFunFact(month, day), nil
}

// fetch downloads url through the breaker and returns the whole body.
func (s *Service) fetch(ctx context.Context, cb *gobreaker.CircuitBreaker[[]byte], url string) ([]byte, error) {
	body, err := cb.Execute(func() ([]byte, error) {
		rc, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetch, err)
	}
	return body, nil
}

func (s *Service) fail(source string, err error) {
	result := metrics.ResultFailure
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = metrics.ResultRejected
	}
	metrics.AlmanacRequests.WithLabelValues(source, result).Inc()
	slog.Warn(config.MsgFetchFailed,
		config.LogKeyComponent, config.CompAlmanac,
		config.LogKeyBreaker, source,
		config.LogKeyError, err)
}

func (s *Service) cacheGet(source, key string, v any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(key, v)
	if err != nil {
		slog.Warn(config.ErrCacheRead,
			config.LogKeyComponent, config.CompCache,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return false
	}
	if ok {
		metrics.AlmanacCache.WithLabelValues(source, metrics.ResultHit).Inc()
		slog.Debug(config.MsgCacheHit, config.LogKeyComponent, config.CompCache, config.LogKeyKey, key)
		return true
	}
	metrics.AlmanacCache.WithLabelValues(source, metrics.ResultMiss).Inc()
	slog.Debug(config.MsgCacheMiss, config.LogKeyComponent, config.CompCache, config.LogKeyKey, key)
	return false
}

func (s *Service) cachePut(key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(key, v); err != nil {
		slog.Warn(config.ErrCacheWrite,
			config.LogKeyComponent, config.CompCache,
			config.LogKeyKey, key,
			config.LogKeyError, err)
	}
}

func withEmptySlices(p engine.Payload) engine.Payload {
	if p.Events == nil {
		p.Events = []engine.TriviaItem{}
	}
	if p.Births == nil {
		p.Births = []engine.TriviaItem{}
	}
	return p
}
