package almanac

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tartampluch/this-day/internal/config"
)

// Cache keeps decoded almanac responses in BadgerDB. Entries expire after
// the configured TTL; a zero TTL keeps them forever.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens (or creates) the on-disk cache under dir.
func OpenCache(dir string, ttl time.Duration) (*Cache, error) {
	opts := badger.DefaultOptions(filepath.Join(dir, config.BadgerSubDir)).
		WithLogger(badgerLogger{})
	return openCache(opts, ttl)
}

// OpenMemoryCache opens a cache that lives only as long as the process.
func OpenMemoryCache(ttl time.Duration) (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return openCache(opts, ttl)
}

func openCache(opts badger.Options, ttl time.Duration) (*Cache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Get decodes the value stored under key into v. It reports false on a miss.
func (c *Cache) Get(key string, v any) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrCacheRead, err)
	}
	return true, nil
}

// Put stores v under key.
func (c *Cache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}

// Close flushes and closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// badgerLogger routes Badger's own logging into slog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...), config.LogKeyComponent, config.CompCache)
}

func (badgerLogger) Warningf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...), config.LogKeyComponent, config.CompCache)
}

func (badgerLogger) Infof(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...), config.LogKeyComponent, config.CompCache)
}

func (badgerLogger) Debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...), config.LogKeyComponent, config.CompCache)
}
