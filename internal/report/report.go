// Package report renders the reading schedule: the whole year as one line
// per day, or today's readings with their fetched chapter text.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mpenning/horner-bible-reading-plan-generator/internal/bookmark"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/plan"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/scripture"
)

// Year writes the full 365-day schedule, one comma-separated line per day
// with a 1-indexed day number. No bookmark or network involvement.
func Year(w io.Writer, set *plan.Set) error {
	for i := 0; i < plan.Days; i++ {
		if _, err := fmt.Fprintf(w, "%d, %s\n", i+1, formatReadings(set.ReadingsFor(i))); err != nil {
			return err
		}
	}
	return nil
}

// DailyOptions carries the caller's translation request for a daily run.
type DailyOptions struct {
	// Translation overrides the stored translation for this run's output.
	// Empty means use the stored one.
	Translation string
	// SaveSettings persists Translation into the bookmark.
	SaveSettings bool
}

// DailyReadings syncs the bookmark and returns the day's readings with the
// effective translation. The bookmark is written before any fetching, so a
// later fetch failure never loses the day advance.
func DailyReadings(set *plan.Set, store *bookmark.Store, opts DailyOptions) ([plan.NumLists]plan.Reading, string, error) {
	if err := store.Sync(opts.Translation, opts.SaveSettings); err != nil {
		return [plan.NumLists]plan.Reading{}, "", err
	}

	translation := store.Translation()
	if opts.Translation != "" {
		translation = opts.Translation
	}

	return set.ReadingsFor(store.DayIndex()), translation, nil
}

// Daily prints today's readings with their chapter text. A failing fetch
// prints a notice in place of that reading's text and the run continues;
// the joined fetch errors come back so the caller can exit non-zero.
func Daily(ctx context.Context, w io.Writer, set *plan.Set, store *bookmark.Store, src scripture.Source, opts DailyOptions) error {
	readings, translation, err := DailyReadings(set, store, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Translation: %s\n", translation)
	fmt.Fprintf(w, "TODAY: %s\n", formatReadings(readings))

	var fetchErrs []error
	for _, r := range readings {
		text, err := src.ChapterText(ctx, r.Book, r.Chapter, translation)
		if err != nil {
			fmt.Fprintf(w, "\n%s\n[unavailable: %v]\n", r, err)
			fetchErrs = append(fetchErrs, err)
			continue
		}
		fmt.Fprintf(w, "\n%s\n%s\n", r, text)
	}

	return errors.Join(fetchErrs...)
}

func formatReadings(readings [plan.NumLists]plan.Reading) string {
	parts := make([]string, len(readings))
	for i, r := range readings {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
