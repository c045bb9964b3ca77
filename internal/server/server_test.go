package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/this-day/internal/auth"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
	"github.com/tartampluch/this-day/internal/page"
)

type stubPages struct {
	mu   sync.Mutex
	reqs []page.Request
	err  error
}

func (s *stubPages) Generate(_ context.Context, req page.Request, w io.Writer) error {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	_, err := fmt.Fprintf(w, "<html>%s show=%v</html>", req.Date, req.Show)
	return err
}

func newTestServer(t *testing.T, pages PageGenerator, user, pass string) *Server {
	t.Helper()
	guard, err := auth.NewBasicAuth(user, pass)
	require.NoError(t, err)
	return New(":0", pages, guard, 0)
}

func do(h http.Handler, target string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authed {
		req.SetBasicAuth("patti", "cake")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Page(t *testing.T) {
	pages := &stubPages{}
	h := newTestServer(t, pages, "patti", "cake").Router()

	w := do(h, "/?date=12-18&show=yes&lang=fr", true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeTextHTML, w.Header().Get(config.HeaderContentType))
	assert.Equal(t, "<html>12-18 show=true</html>", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(config.HeaderRequestID))

	require.Len(t, pages.reqs, 1)
	assert.Equal(t, page.Request{Date: "12-18", Show: true, Lang: "fr"}, pages.reqs[0])
}

func TestRouter_AuthRequired(t *testing.T) {
	pages := &stubPages{}
	h := newTestServer(t, pages, "patti", "cake").Router()

	for _, target := range []string{config.RouteRoot, config.RouteCalendar, config.RouteMetrics} {
		w := do(h, target, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
		assert.Equal(t, `Basic realm="Family Birthday Page"`, w.Header().Get(config.HeaderWWWAuthenticate))
	}
	assert.Empty(t, pages.reqs)
}

func TestRouter_Misconfigured(t *testing.T) {
	h := newTestServer(t, &stubPages{}, "", "").Router()

	w := do(h, "/", true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server misconfigured")
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t, &stubPages{}, "", "").Router()

	w := do(h, config.RouteHealth, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.HTTPMsgHealthy, w.Body.String())
}

func TestRouter_Errors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		pages := &stubPages{err: fmt.Errorf("%w: %q", engine.ErrInvalidDate, "13-45")}
		w := do(newTestServer(t, pages, "patti", "cake").Router(), "/?date=13-45", true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "MM-DD")
	})

	t.Run("internal", func(t *testing.T) {
		pages := &stubPages{err: errors.New("template exploded")}
		w := do(newTestServer(t, pages, "patti", "cake").Router(), "/", true)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "exploded")
	})
}

func TestRouter_CalendarAndMetrics(t *testing.T) {
	s := newTestServer(t, &stubPages{}, "patti", "cake")
	h := s.Router()

	assert.Equal(t, http.StatusServiceUnavailable, do(h, config.RouteCalendar, true).Code)

	s.Calendar.Update([]byte(config.StubVCalendar))
	w := do(h, config.RouteCalendar, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.StubVCalendar, w.Body.String())

	w = do(h, config.RouteMetrics, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "thisday_http_requests_total")
}

func TestRouter_RequestIDPassthrough(t *testing.T) {
	h := newTestServer(t, &stubPages{}, "", "").Router()

	req := httptest.NewRequest(http.MethodGet, config.RouteHealth, nil)
	req.Header.Set(config.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(config.HeaderRequestID))
}

func TestRouter_RateLimit(t *testing.T) {
	guard, err := auth.NewBasicAuth("patti", "cake")
	require.NoError(t, err)
	h := New(":0", &stubPages{}, guard, 2).Router()

	assert.Equal(t, http.StatusOK, do(h, "/", true).Code)
	assert.Equal(t, http.StatusOK, do(h, "/", true).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, "/", true).Code)
}

// TestServer_Lifecycle binds a real listener and checks graceful shutdown.
func TestServer_Lifecycle(t *testing.T) {
	const addr = "127.0.0.1:18099"

	s := newTestServer(t, &stubPages{}, "patti", "cake")
	s.Addr = addr
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- s.Start(ctx)
	}()

	url := "http://" + addr + config.RouteHealth
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRequiresAddr(t *testing.T) {
	s := newTestServer(t, &stubPages{}, "patti", "cake")
	s.Addr = ""
	assert.EqualError(t, s.Start(context.Background()), config.ErrAddrRequired)
}
