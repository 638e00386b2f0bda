// Package bookmark persists the reader's position in the annual cycle: a
// day index, the timestamp of its last update and the preferred
// translation, in a single JSON file rewritten on every change.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpenning/horner-bible-reading-plan-generator/internal/plan"
)

const bookmarkFileName = "bookmark.json"

// ErrMissingTranslation reports a bootstrap or settings save without a
// translation to record.
var ErrMissingTranslation = errors.New("no translation supplied")

// record is the persisted bookmark document.
type record struct {
	DayIndexNumber int    `json:"day_index_number"`
	LastUpdated    string `json:"last_updated"`
	Translation    string `json:"translation"`
}

// Store manages the bookmark file. Single-user, single-process: reads and
// rewrites the file without locking.
type Store struct {
	path string
	rec  record
	now  func() time.Time
}

// NewStore creates or opens the bookmark under XDG_STATE_HOME/horner
// (~/.local/state/horner when unset).
func NewStore() (*Store, error) {
	dir := getStateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(dir, bookmarkFileName)), nil
}

// NewStoreAt opens a bookmark at an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// getStateDir returns XDG_STATE_HOME/horner or ~/.local/state/horner.
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "horner")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "horner")
}

// DayIndex returns the current day index, valid after Sync.
func (s *Store) DayIndex() int {
	return s.rec.DayIndexNumber
}

// Translation returns the stored translation, valid after Sync.
func (s *Store) Translation() string {
	return s.rec.Translation
}

// Sync loads the bookmark and applies at most one state change.
//
// A missing file bootstraps a fresh record at day 0, which requires a
// translation. An existing record advances its day index only when the
// calendar date has changed since last_updated, wrapping 364 back to 0.
// saveSettings additionally overwrites the stored translation. The file is
// rewritten only when something changed; otherwise the call is read-only.
func (s *Store) Sync(translation string, saveSettings bool) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.bootstrap(translation)
	}
	if err != nil {
		return fmt.Errorf("read bookmark: %w", err)
	}
	if err := json.Unmarshal(data, &s.rec); err != nil {
		return fmt.Errorf("parse bookmark: %w", err)
	}

	// A legacy file can hold an out-of-range index; fold it back to 0.
	if s.rec.DayIndexNumber < 0 || s.rec.DayIndexNumber >= plan.Days {
		s.rec.DayIndexNumber = 0
	}

	now := s.now()
	elapsed := elapsedDays(s.rec.LastUpdated, now)

	if !saveSettings && elapsed <= 0 {
		return nil
	}

	if elapsed > 0 {
		s.rec.DayIndexNumber = (s.rec.DayIndexNumber + 1) % plan.Days
	}
	if saveSettings {
		if translation == "" {
			return fmt.Errorf("cannot save settings: %w", ErrMissingTranslation)
		}
		s.rec.Translation = translation
	}
	s.rec.LastUpdated = now.Format(time.RFC3339)

	return s.save()
}

func (s *Store) bootstrap(translation string) error {
	if translation == "" {
		return fmt.Errorf("cannot create bookmark: %w", ErrMissingTranslation)
	}
	s.rec = record{
		DayIndexNumber: 0,
		LastUpdated:    s.now().Format(time.RFC3339),
		Translation:    translation,
	}
	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// elapsedDays counts whole calendar days between the stored timestamp's
// date and now's date, ignoring time of day. An unparseable timestamp
// counts as one elapsed day so a corrupted field self-heals on the next
// sync rather than freezing the index forever.
func elapsedDays(lastUpdated string, now time.Time) int {
	datePart, _, _ := strings.Cut(lastUpdated, "T")
	last, err := time.ParseInLocation("2006-01-02", datePart, now.Location())
	if err != nil {
		return 1
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Round so a DST shift between the two midnights still counts as a
	// whole day.
	return int(today.Sub(last).Round(24*time.Hour) / (24 * time.Hour))
}
