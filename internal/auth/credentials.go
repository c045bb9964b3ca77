package auth

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/this-day/internal/config"
	"github.com/zalando/go-keyring"
)

// ResolvePassword returns pass when set, otherwise the password stored in
// the OS keyring for user. A missing keyring entry is not an error.
func ResolvePassword(user, pass string) (string, error) {
	if pass != "" || user == "" {
		return pass, nil
	}
	stored, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompAuth,
			config.LogKeyUser, user,
			config.LogKeyError, err,
		)
		return "", fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	slog.Info(config.MsgPassFromRing,
		config.LogKeyComponent, config.CompAuth,
		config.LogKeyUser, user,
	)
	return stored, nil
}

// StorePassword saves pass in the OS keyring for user.
func StorePassword(user, pass string) error {
	if user == "" || pass == "" {
		return ErrMissingCredentials
	}
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return nil
}
