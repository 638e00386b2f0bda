//go:build gui

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/bookmark"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/plan"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/report"
	"github.com/mpenning/horner-bible-reading-plan-generator/internal/scripture"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// chapterCache remembers fetched chapters so re-selecting a reading does
// not refetch it.
type chapterCache struct {
	mu    sync.Mutex
	texts map[int]string
}

func newChapterCache() *chapterCache {
	return &chapterCache{texts: make(map[int]string)}
}

func (c *chapterCache) get(i int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.texts[i]
	return text, ok
}

func (c *chapterCache) set(i int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts[i] = text
}

func main() {
	translation := flag.String("t", "", "Translation: "+strings.Join(scripture.Translations, ", "))
	saveSettings := flag.Bool("s", false, "Save the translation to the bookmark file")
	planPath := flag.String("p", "", "Alternate plan YAML file (default: embedded Horner plan)")
	epubPath := flag.String("e", "", "Read chapter text from a local EPUB Bible instead of the network")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Horner GUI - Ten-List Bible Reading Plan\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  horner-gui [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  horner-gui -t ESV         Today's readings in a window\n")
		fmt.Fprintf(os.Stderr, "  horner-gui -e kjv.epub    Chapter text from a local EPUB\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("horner-gui %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *translation != "" && !scripture.ValidTranslation(*translation) {
		fmt.Fprintf(os.Stderr, "Error: unknown translation %q. Choose one of: %s\n",
			*translation, strings.Join(scripture.Translations, ", "))
		os.Exit(1)
	}

	var cfg *plan.Config
	var err error
	if *planPath != "" {
		cfg, err = plan.LoadConfig(*planPath)
	} else {
		cfg, err = plan.DefaultConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	set, err := plan.BuildSet(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := bookmark.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open bookmark store: %v\n", err)
		os.Exit(1)
	}

	var src scripture.Source = scripture.NewClient()
	if *epubPath != "" {
		src = scripture.NewEPUBSource(*epubPath)
	}

	opts := report.DailyOptions{Translation: *translation, SaveSettings: *saveSettings}
	readings, effective, err := report.DailyReadings(set, store, opts)
	if errors.Is(err, bookmark.ErrMissingTranslation) {
		fmt.Fprintf(os.Stderr, "Error: %v. Use -t to choose a translation.\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cache := newChapterCache()

	a := app.New()
	w := a.NewWindow("Horner - Daily Readings")

	statusLabel := widget.NewLabel(fmt.Sprintf("Day %d of %d | %s",
		store.DayIndex()+1, plan.Days, effective))
	statusLabel.Alignment = fyne.TextAlignCenter

	chapterText := widget.NewLabel("Select a reading.")
	chapterText.Wrapping = fyne.TextWrapWord
	chapterScroll := container.NewVScroll(chapterText)

	readingList := widget.NewList(
		func() int { return plan.NumLists },
		func() fyne.CanvasObject {
			return widget.NewLabel("Reading")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			label.SetText(readings[id].String())
			label.TextStyle.Bold = true
		},
	)

	showChapter := func(id int) {
		if text, ok := cache.get(id); ok {
			chapterText.SetText(text)
			chapterScroll.ScrollToTop()
			return
		}

		r := readings[id]
		chapterText.SetText(fmt.Sprintf("Fetching %s (%s)...", r, effective))

		go func() {
			text, err := src.ChapterText(context.Background(), r.Book, r.Chapter, effective)
			if err != nil {
				text = fmt.Sprintf("Could not fetch %s: %v", r, err)
			} else {
				cache.set(id, text)
			}
			fyne.Do(func() {
				chapterText.SetText(text)
				chapterScroll.ScrollToTop()
			})
		}()
	}

	readingList.OnSelected = func(id widget.ListItemID) {
		showChapter(id)
	}

	listPanel := container.NewBorder(
		widget.NewLabel("Today's Readings"),
		nil, nil, nil,
		readingList,
	)

	split := container.NewHSplit(listPanel, chapterScroll)
	split.Offset = 0.3

	content := container.NewBorder(
		statusLabel,
		widget.NewLabel("Click a reading to load its chapter • Q to quit"),
		nil, nil,
		split,
	)

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyQ {
			a.Quit()
		}
	})

	w.Resize(fyne.NewSize(900, 600))
	w.SetContent(content)

	readingList.Select(0)

	w.ShowAndRun()
}
