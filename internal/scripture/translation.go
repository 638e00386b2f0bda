// Package scripture supplies chapter text for readings, either fetched
// from BibleGateway or pulled out of a local EPUB Bible.
package scripture

import (
	"context"
	"errors"
)

// Translations lists the editions the fetch endpoint serves.
var Translations = []string{"NASB1995", "NIV", "ASV", "ESV", "KJV", "NKJV"}

// ErrUnknownTranslation reports a translation outside the supported set.
var ErrUnknownTranslation = errors.New("unknown translation")

// ValidTranslation reports whether name is a supported translation.
func ValidTranslation(name string) bool {
	for _, t := range Translations {
		if t == name {
			return true
		}
	}
	return false
}

// Source provides the text of one chapter. Implementations do their own
// I/O and return an error rather than partial text.
type Source interface {
	ChapterText(ctx context.Context, book string, chapter int, translation string) (string, error)
}
