package bookmark

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// storeAt returns a Store on a temp file with a controllable clock.
func storeAt(t *testing.T, at time.Time) *Store {
	t.Helper()
	s := NewStoreAt(filepath.Join(t.TempDir(), "bookmark.json"))
	s.now = func() time.Time { return at }
	return s
}

func TestSyncBootstrap(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	s := storeAt(t, now)

	if err := s.Sync("ESV", false); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if s.DayIndex() != 0 {
		t.Errorf("DayIndex = %d, want 0", s.DayIndex())
	}
	if s.Translation() != "ESV" {
		t.Errorf("Translation = %q, want ESV", s.Translation())
	}

	// The file should be loadable by a fresh store.
	s2 := NewStoreAt(s.path)
	s2.now = s.now
	if err := s2.Sync("", false); err != nil {
		t.Fatalf("reload Sync failed: %v", err)
	}
	if s2.DayIndex() != 0 || s2.Translation() != "ESV" {
		t.Errorf("reloaded record = (%d, %q), want (0, ESV)", s2.DayIndex(), s2.Translation())
	}
}

func TestSyncBootstrapRequiresTranslation(t *testing.T) {
	s := storeAt(t, time.Now())
	if err := s.Sync("", false); !errors.Is(err, ErrMissingTranslation) {
		t.Errorf("Sync() error = %v, want ErrMissingTranslation", err)
	}
	if _, err := os.Stat(s.path); !os.IsNotExist(err) {
		t.Error("failed bootstrap should not leave a bookmark file")
	}
}

func TestSyncSameDayIsReadOnly(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	s := storeAt(t, now)
	if err := s.Sync("KJV", false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	// Later the same calendar day: no advance, no rewrite.
	before, _ := os.ReadFile(s.path)
	s.now = func() time.Time { return now.Add(14 * time.Hour) }
	if err := s.Sync("", false); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if s.DayIndex() != 0 {
		t.Errorf("DayIndex = %d, want 0", s.DayIndex())
	}
	after, _ := os.ReadFile(s.path)
	if string(before) != string(after) {
		t.Error("same-day sync should not rewrite the bookmark file")
	}
}

func TestSyncNextDayAdvances(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.Local)
	s := storeAt(t, now)
	if err := s.Sync("NIV", false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	// Just past midnight counts as a new calendar day.
	s.now = func() time.Time { return now.Add(time.Hour) }
	if err := s.Sync("", false); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if s.DayIndex() != 1 {
		t.Errorf("DayIndex = %d, want 1", s.DayIndex())
	}
}

func TestSyncWrapsAfterFullYear(t *testing.T) {
	day := time.Date(2026, 1, 1, 12, 0, 0, 0, time.Local)
	s := storeAt(t, day)
	if err := s.Sync("ASV", false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	// 365 daily advances from index 0 land back on 0.
	for i := 1; i <= 365; i++ {
		d := day.AddDate(0, 0, i)
		s.now = func() time.Time { return d }
		if err := s.Sync("", false); err != nil {
			t.Fatalf("Sync on day %d failed: %v", i, err)
		}
	}
	if s.DayIndex() != 0 {
		t.Errorf("DayIndex after 365 advances = %d, want 0", s.DayIndex())
	}
}

func TestSyncSaveSettings(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.Local)
	s := storeAt(t, now)
	if err := s.Sync("KJV", false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	// Same day, so the index must not move, but the translation and
	// timestamp are rewritten.
	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	if err := s.Sync("NKJV", true); err != nil {
		t.Fatalf("save-settings Sync failed: %v", err)
	}
	if s.DayIndex() != 0 {
		t.Errorf("DayIndex = %d, want 0", s.DayIndex())
	}
	if s.Translation() != "NKJV" {
		t.Errorf("Translation = %q, want NKJV", s.Translation())
	}

	var rec record
	data, _ := os.ReadFile(s.path)
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("parse bookmark file: %v", err)
	}
	if rec.Translation != "NKJV" {
		t.Errorf("persisted translation = %q, want NKJV", rec.Translation)
	}
	if rec.LastUpdated != now.Add(2*time.Hour).Format(time.RFC3339) {
		t.Errorf("persisted last_updated = %q, want refresh", rec.LastUpdated)
	}
}

func TestSyncSaveSettingsRequiresTranslation(t *testing.T) {
	s := storeAt(t, time.Now())
	if err := s.Sync("ESV", false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := s.Sync("", true); !errors.Is(err, ErrMissingTranslation) {
		t.Errorf("Sync() error = %v, want ErrMissingTranslation", err)
	}
}

func TestSyncNormalizesLegacyIndex(t *testing.T) {
	now := time.Date(2026, 2, 2, 9, 0, 0, 0, time.Local)
	path := filepath.Join(t.TempDir(), "bookmark.json")

	// The original tool could persist index 365 at the cycle boundary.
	legacy := record{
		DayIndexNumber: 365,
		LastUpdated:    now.Format(time.RFC3339),
		Translation:    "KJV",
	}
	data, _ := json.Marshal(legacy)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write legacy bookmark: %v", err)
	}

	s := NewStoreAt(path)
	s.now = func() time.Time { return now }
	if err := s.Sync("", false); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if s.DayIndex() != 0 {
		t.Errorf("DayIndex = %d, want 0", s.DayIndex())
	}
}

func TestElapsedDays(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 5, 0, 0, time.Local)

	tests := []struct {
		name        string
		lastUpdated string
		want        int
	}{
		{"same day", "2026-03-14T23:59:00Z", 0},
		{"previous day", "2026-03-13T23:59:00Z", 1},
		{"week ago", "2026-03-07T08:00:00Z", 7},
		{"garbage", "not-a-timestamp", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elapsedDays(tt.lastUpdated, now); got != tt.want {
				t.Errorf("elapsedDays(%q) = %d, want %d", tt.lastUpdated, got, tt.want)
			}
		})
	}
}
