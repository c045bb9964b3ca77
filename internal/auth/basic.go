// Package auth guards the page with HTTP Basic Auth.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials means APP_USER or APP_PASS is unset.
	ErrMissingCredentials = errors.New(config.ErrCredsMissing)
	// ErrInvalidCredentials is returned by Check for a wrong user or password.
	ErrInvalidCredentials = errors.New(config.ErrCredsInvalid)
)

// Failure reasons, also used as metric labels.
const (
	reasonMissing       = "missing"
	reasonMalformed     = "malformed"
	reasonInvalid       = "invalid"
	reasonMisconfigured = "misconfigured"
)

// BasicAuth checks credentials against a single configured account.
// The password is only kept as a bcrypt hash.
type BasicAuth struct {
	user  string
	hash  []byte
	realm string
}

// NewBasicAuth hashes pass once. Empty user or pass yields a guard that
// answers every request with 500 until the server is configured.
func NewBasicAuth(user, pass string) (*BasicAuth, error) {
	a := &BasicAuth{user: user, realm: config.AuthRealm}
	if user == "" || pass == "" {
		return a, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCredsInvalid, err)
	}
	a.hash = hash
	return a, nil
}

// Configured reports whether both credentials were provided.
func (a *BasicAuth) Configured() bool {
	return a.user != "" && len(a.hash) > 0
}

// Check validates a user/password pair.
func (a *BasicAuth) Check(user, pass string) error {
	if !a.Configured() {
		return ErrMissingCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(pass)) == nil
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// Middleware rejects requests without valid credentials.
func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Configured() {
			a.reject(w, r, reasonMisconfigured)
			http.Error(w, config.ErrCredsMissing, http.StatusInternalServerError)
			return
		}

		if r.Header.Get(config.HeaderAuthorization) == "" {
			a.challenge(w, r, reasonMissing, config.HTTPMsgAuthRequired)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok {
			a.challenge(w, r, reasonMalformed, config.HTTPMsgBadAuth)
			return
		}
		if err := a.Check(user, pass); err != nil {
			a.challenge(w, r, reasonInvalid, config.HTTPMsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *BasicAuth) challenge(w http.ResponseWriter, r *http.Request, reason, msg string) {
	a.reject(w, r, reason)
	w.Header().Set(config.HeaderWWWAuthenticate, fmt.Sprintf(config.FormatWWWAuthenticate, a.realm))
	http.Error(w, msg, http.StatusUnauthorized)
}

func (a *BasicAuth) reject(w http.ResponseWriter, r *http.Request, reason string) {
	metrics.AuthFailures.WithLabelValues(reason).Inc()
	msg := config.MsgAuthRejected
	if reason == reasonMisconfigured {
		msg = config.MsgAuthMisconfig
	}
	slog.WarnContext(r.Context(), msg,
		config.LogKeyComponent, config.CompAuth,
		config.LogKeyValue, reason,
		config.LogKeyPath, r.URL.Path,
	)
}
