// Package recent remembers the timer inputs a user started most recently.
package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Flyrell/hourglass/internal/hashutil"
	"github.com/Flyrell/hourglass/internal/parsing"
)

// DefaultLimit is how many inputs are kept.
const DefaultLimit = 10

// Record is one remembered timer input.
type Record struct {
	ID        string                   `json:"id"`
	Token     *parsing.TimerStartToken `json:"token"`
	CreatedAt time.Time                `json:"created_at"`
}

// Store keeps one JSON file per record under <dataDir>/recent.
type Store struct {
	dir   string
	limit int
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLimit sets how many records are kept.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store rooted at dataDir.
func NewStore(dataDir string, opts ...Option) *Store {
	s := &Store{
		dir:   Dir(dataDir),
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory recent records live in.
func Dir(dataDir string) string {
	return filepath.Join(dataDir, "recent")
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Add records token, replacing an earlier record of the same input, and
// drops the oldest records beyond the limit.
func (s *Store) Add(token *parsing.TimerStartToken) (Record, error) {
	if !token.Valid() {
		return Record{}, fmt.Errorf("cannot remember an invalid timer input")
	}
	if token.OriginalInput == "" {
		return Record{}, fmt.Errorf("cannot remember a timer input without its text")
	}

	r := Record{
		ID:        hashutil.InputID(token.OriginalInput),
		Token:     token,
		CreatedAt: s.now().UTC(),
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return Record{}, err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return Record{}, err
	}
	if err := os.WriteFile(s.path(r.ID), data, 0644); err != nil {
		return Record{}, err
	}

	return r, s.prune()
}

// List returns the records, newest first.
func (s *Store) List() ([]Record, error) {
	files, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			return nil, err
		}

		// Unreadable records are skipped rather than hiding the rest.
		var r Record
		if err := json.Unmarshal(data, &r); err != nil || r.Token == nil {
			continue
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Remove deletes the record with the given ID.
func (s *Store) Remove(id string) error {
	if !hashutil.IsID(id) {
		return fmt.Errorf("invalid recent input ID '%s'", id)
	}
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("recent input '%s' not found", id)
	}
	return err
}

// Clear deletes every record.
func (s *Store) Clear() error {
	err := os.RemoveAll(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) prune() error {
	records, err := s.List()
	if err != nil {
		return err
	}
	for _, r := range records[min(len(records), s.limit):] {
		if err := os.Remove(s.path(r.ID)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
