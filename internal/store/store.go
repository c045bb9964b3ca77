// Package store persists the family birthday list in a JSON file.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/tartampluch/this-day/internal/config"
	"github.com/tartampluch/this-day/internal/engine"
)

var (
	// ErrNameRequired is returned when upserting a person without a name.
	ErrNameRequired = errors.New(config.ErrNameRequired)
	// ErrFormat is returned when the file is valid JSON but not an array.
	ErrFormat = errors.New(config.ErrStoreFormat)
)

// templateRecords seeds a missing birthdays file.
var templateRecords = []engine.BirthdayRecord{
	{Name: "Patti", Month: 5, Day: 14, Relation: "Mom", Note: "Chief Fun Fact Officer", Phone: "000-000-0000"},
}

// Person is the input of Upsert.
type Person struct {
	Name     string
	Month    int
	Day      int
	Relation string
	Note     string
	Phone    string
}

// FileStore reads and rewrites birthdays.json. Mutations are serialized
// within the process; each one reloads the file first.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created lazily.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Ensure writes the template file when path does not exist yet.
func (s *FileStore) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	if err := s.write(templateRecords); err != nil {
		return err
	}
	slog.Info(config.MsgStoreCreated,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.path)
	return nil
}

// Load returns every record with phones normalized. A missing file is
// created from the template first.
func (s *FileStore) Load() ([]engine.BirthdayRecord, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	return Decode(data)
}

// Decode parses the birthdays file content.
func Decode(data []byte) ([]engine.BirthdayRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrFormat
	}
	var records []engine.BirthdayRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}
	for i := range records {
		if p := strings.TrimSpace(records[i].Phone); p != "" {
			records[i].Phone = NormalizePhone(p)
		}
	}
	return records, nil
}

// Save replaces the file content with records.
func (s *FileStore) Save(records []engine.BirthdayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(records)
}

// Upsert updates the person with the same name (case-insensitive) or appends
// a new one. Empty relation, note or phone never erase existing values.
func (s *FileStore) Upsert(p Person) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrNameRequired
	}
	phone := ""
	if strings.TrimSpace(p.Phone) != "" {
		phone = NormalizePhone(p.Phone)
	}

	return s.mutate(func(records []engine.BirthdayRecord) []engine.BirthdayRecord {
		key := strings.ToLower(name)
		for i := range records {
			r := &records[i]
			if strings.ToLower(strings.TrimSpace(r.Name)) != key {
				continue
			}
			r.Month = engine.LenientInt(p.Month)
			r.Day = engine.LenientInt(p.Day)
			if v := strings.TrimSpace(p.Relation); v != "" {
				r.Relation = v
			}
			if v := strings.TrimSpace(p.Note); v != "" {
				r.Note = v
			}
			if phone != "" {
				r.Phone = phone
			}
			return records
		}
		return append(records, engine.BirthdayRecord{
			Name:     name,
			Month:    engine.LenientInt(p.Month),
			Day:      engine.LenientInt(p.Day),
			Relation: strings.TrimSpace(p.Relation),
			Note:     strings.TrimSpace(p.Note),
			Phone:    phone,
		})
	})
}

// AddPhone relabels the person owning the phone's digits, or appends a
// 01-01 stub so the number shows up in the phone list.
func (s *FileStore) AddPhone(phone, label string) error {
	norm := NormalizePhone(phone)
	digits := Digits(norm)
	label = strings.TrimSpace(label)

	return s.mutate(func(records []engine.BirthdayRecord) []engine.BirthdayRecord {
		if digits != "" {
			for i := range records {
				if Digits(records[i].Phone) != digits {
					continue
				}
				if label != "" {
					records[i].Name = label
				}
				records[i].Phone = norm
				return records
			}
		}
		name := label
		if name == "" {
			name = config.FallbackName
		}
		return append(records, engine.BirthdayRecord{
			Name:  name,
			Month: config.StubMonth,
			Day:   config.StubDay,
			Phone: norm,
		})
	})
}

// RemovePhone clears the phone of every person whose number has the same
// digits. It returns how many entries changed.
func (s *FileStore) RemovePhone(phone string) (int, error) {
	digits := Digits(phone)
	cleared := 0
	err := s.mutate(func(records []engine.BirthdayRecord) []engine.BirthdayRecord {
		if digits == "" {
			return records
		}
		for i := range records {
			if Digits(records[i].Phone) == digits {
				records[i].Phone = ""
				cleared++
			}
		}
		return records
	})
	return cleared, err
}

// Import upserts every person. It returns how many were written.
func (s *FileStore) Import(people []Person) (int, error) {
	count := 0
	for _, p := range people {
		if err := s.Upsert(p); err != nil {
			if errors.Is(err, ErrNameRequired) {
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}

// mutate runs fn on a fresh copy of the file and writes the result back.
func (s *FileStore) mutate(fn func([]engine.BirthdayRecord) []engine.BirthdayRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load()
	if err != nil {
		return err
	}
	return s.write(fn(records))
}

// write encodes records as indented JSON, keeping non-ASCII text readable,
// and swaps the file in with a rename. An existing file keeps its mode.
func (s *FileStore) write(records []engine.BirthdayRecord) error {
	if records == nil {
		records = []engine.BirthdayRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
			return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
		}
	}
	mode := config.FilePermShared
	if fi, err := os.Stat(s.path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	// WriteFile applies the umask; the rewritten file keeps the original mode.
	if err := os.Chmod(tmp, mode); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	slog.Debug(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, s.path,
		config.LogKeyCount, len(records))
	return nil
}
