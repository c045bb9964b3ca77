// Package server exposes the family page, the birthday calendar feed and
// the operational endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/this-day/internal/auth"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/page"
)

// PageGenerator renders the family page.
type PageGenerator interface {
	Generate(ctx context.Context, req page.Request, w io.Writer) error
}

// Server wires the routes. Calendar may be published before or after Start.
type Server struct {
	Addr      string
	Pages     PageGenerator
	Auth      *auth.BasicAuth
	Calendar  *CalendarFeed
	RateLimit int // requests per IP per minute, 0 disables
}

// New returns a server with an empty calendar feed.
func New(addr string, pages PageGenerator, guard *auth.BasicAuth, rateLimit int) *Server {
	return &Server{
		Addr:      addr,
		Pages:     pages,
		Auth:      guard,
		Calendar:  &CalendarFeed{},
		RateLimit: rateLimit,
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(observe)

	r.Get(config.RouteHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
		_, _ = io.WriteString(w, config.HTTPMsgHealthy)
	})

	r.Group(func(r chi.Router) {
		if s.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.RateLimit, time.Minute))
		}
		r.Use(s.Auth.Middleware)

		r.Get(config.RouteRoot, s.handlePage)
		r.Handle(config.RouteCalendar, s.Calendar)
		r.Handle(config.RouteMetrics, promhttp.Handler())
	})
	return r
}

// Start listens on Addr and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New(config.ErrAddrRequired)
	}

	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := page.Request{
		Date: q.Get(config.QueryDate),
		Show: page.ParseShow(q.Get(config.QueryShow)),
		Lang: q.Get(config.QueryLang),
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	err := s.Pages.Generate(r.Context(), req, w)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrInvalidDate):
		http.Error(w, config.HTTPMsgBadDate, http.StatusBadRequest)
	default:
		slog.ErrorContext(r.Context(), config.ErrRender,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyRequestID, RequestIDFrom(r.Context()),
			config.LogKeyDate, req.Date,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
	}
}
