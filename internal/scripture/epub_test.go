package scripture

import (
	"context"
	"os"
	"testing"
)

func TestMatchesChapter(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		book    string
		chapter int
		want    bool
	}{
		{"plain", "Genesis 1", "Genesis", 1, true},
		{"chapter word", "Genesis Chapter 1", "Genesis", 1, true},
		{"long kjv title", "The First Book of Moses, called Genesis 1", "Genesis", 1, true},
		{"numbered book", "1 Corinthians 13", "1 Corinthians", 13, true},
		{"wrong chapter", "Genesis 12", "Genesis", 1, false},
		{"wrong book", "Exodus 1", "Genesis", 1, false},
		{"number embedded in word", "Genesis 1:1", "Genesis", 11, false},
		{"case and punctuation", "GENESIS, 1.", "Genesis", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesChapter(tt.label, tt.book, tt.chapter); got != tt.want {
				t.Errorf("matchesChapter(%q, %q, %d) = %v, want %v", tt.label, tt.book, tt.chapter, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Genesis 1", "genesis 1"},
		{"  Song of Solomon,  8 ", "song of solomon 8"},
		{"PSALMS—150", "psalms 150"},
	}

	for _, tt := range tests {
		if got := normalizeLabel(tt.in); got != tt.want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEPUBSourceMissingFile(t *testing.T) {
	src := NewEPUBSource("no-such-file.epub")
	if _, err := src.ChapterText(context.Background(), "Genesis", 1, "KJV"); err == nil {
		t.Error("ChapterText should fail on a missing file")
	}
}

func TestEPUBSourceChapterText(t *testing.T) {
	// Point HORNER_TEST_EPUB at a local Bible EPUB to run this test.
	epubPath := os.Getenv("HORNER_TEST_EPUB")
	if epubPath == "" {
		t.Skip("HORNER_TEST_EPUB not set, skipping test")
	}

	src := NewEPUBSource(epubPath)
	text, err := src.ChapterText(context.Background(), "Genesis", 1, "KJV")
	if err != nil {
		t.Fatalf("ChapterText failed: %v", err)
	}
	if len(text) == 0 {
		t.Error("expected non-empty chapter text")
	}
	t.Logf("Genesis 1: %d bytes", len(text))
}
