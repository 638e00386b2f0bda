//go:build !gui

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
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

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

// model pages through the day's ten fetched chapters.
type model struct {
	readings    [plan.NumLists]plan.Reading
	texts       [plan.NumLists]string
	failed      [plan.NumLists]bool
	translation string
	current     int
	viewport    viewport.Model
	ready       bool
	quitting    bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "left", "h", "p":
			if m.current > 0 {
				m.current--
				m.setChapter()
			}
			return m, nil

		case "right", "l", "n":
			if m.current < plan.NumLists-1 {
				m.current++
				m.setChapter()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		// Reserve 2 lines: 1 for status at top, 1 for controls at bottom
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
			m.setChapter()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) setChapter() {
	text := m.texts[m.current]
	if m.failed[m.current] {
		text = missingStyle.Render(text)
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(text))
	m.viewport.GotoTop()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading readings..."
	}

	status := statusStyle.Render(fmt.Sprintf("Reading %d/%d | %s | %s | %3.0f%%",
		m.current+1,
		plan.NumLists,
		titleStyle.Render(m.readings[m.current].String()),
		m.translation,
		m.viewport.ScrollPercent()*100,
	))
	controls := controlsStyle.Render("←/→: reading  ↑/↓: scroll  Q: quit")

	return status + "\n" + m.viewport.View() + "\n" + controls
}

func newModel(readings [plan.NumLists]plan.Reading, texts [plan.NumLists]string, failed [plan.NumLists]bool, translation string) model {
	return model{
		readings:    readings,
		texts:       texts,
		failed:      failed,
		translation: translation,
	}
}

func main() {
	daily := flag.Bool("d", false, "Print today's readings (default)")
	year := flag.Bool("y", false, "Print the whole year's schedule")
	translation := flag.String("t", "", "Translation: "+strings.Join(scripture.Translations, ", "))
	saveSettings := flag.Bool("s", false, "Save the translation to the bookmark file")
	planPath := flag.String("p", "", "Alternate plan YAML file (default: embedded Horner plan)")
	epubPath := flag.String("e", "", "Read chapter text from a local EPUB Bible instead of the network")
	interactive := flag.Bool("i", false, "Page today's chapters in an interactive viewer")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Horner - Ten-List Bible Reading Plan\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  horner [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  horner -t ESV             Today's readings with fetched text\n")
		fmt.Fprintf(os.Stderr, "  horner -t ESV -s          Same, and remember ESV for next time\n")
		fmt.Fprintf(os.Stderr, "  horner -y                 Print all 365 days of the schedule\n")
		fmt.Fprintf(os.Stderr, "  horner -i                 Page today's chapters in the terminal\n")
		fmt.Fprintf(os.Stderr, "  horner -e kjv.epub        Pull chapter text from a local EPUB\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("horner %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if *translation != "" && !scripture.ValidTranslation(*translation) {
		fmt.Fprintf(os.Stderr, "Error: unknown translation %q. Choose one of: %s\n",
			*translation, strings.Join(scripture.Translations, ", "))
		os.Exit(1)
	}

	if *daily && *year {
		fmt.Fprintln(os.Stderr, "Error: -d and -y are mutually exclusive.")
		os.Exit(1)
	}

	set := loadSet(*planPath)

	if *year {
		if err := report.Year(os.Stdout, set); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No mode flag means daily.
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

	if *interactive {
		runPager(set, store, src, opts)
		return
	}

	err = report.Daily(context.Background(), os.Stdout, set, store, src, opts)
	if errors.Is(err, bookmark.ErrMissingTranslation) {
		fmt.Fprintf(os.Stderr, "Error: %v. Use -t to choose a translation.\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: some chapters could not be fetched: %v\n", err)
		os.Exit(1)
	}
}

// loadSet builds the reading set from the embedded plan or a -p file.
func loadSet(planPath string) *plan.Set {
	var cfg *plan.Config
	var err error
	if planPath != "" {
		cfg, err = plan.LoadConfig(planPath)
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
	return set
}

// runPager fetches today's chapters up front, then pages them in the TUI.
func runPager(set *plan.Set, store *bookmark.Store, src scripture.Source, opts report.DailyOptions) {
	readings, translation, err := report.DailyReadings(set, store, opts)
	if errors.Is(err, bookmark.ErrMissingTranslation) {
		fmt.Fprintf(os.Stderr, "Error: %v. Use -t to choose a translation.\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var texts [plan.NumLists]string
	var failed [plan.NumLists]bool
	for i, r := range readings {
		fmt.Fprintf(os.Stderr, "Fetching %s (%s)...\n", r, translation)
		text, err := src.ChapterText(context.Background(), r.Book, r.Chapter, translation)
		if err != nil {
			texts[i] = fmt.Sprintf("Could not fetch %s: %v", r, err)
			failed[i] = true
			continue
		}
		texts[i] = text
	}

	m := newModel(readings, texts, failed, translation)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
