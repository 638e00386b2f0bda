package plan

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed horner.yaml
var hornerYAML []byte

// BookChapters is one configured book with its chapter count.
type BookChapters struct {
	Book     string
	Chapters int
}

// Config holds a parsed reading plan: ten ordered book lists plus the
// informational start/end bounds carried over from the plan file.
type Config struct {
	ReadingsStart int
	ReadingsEnd   int
	Lists         [NumLists][]BookChapters
}

// rawConfig mirrors the YAML document. List entries are "Book, N" strings.
type rawConfig struct {
	ReadingsStart int      `yaml:"readings_start"`
	ReadingsEnd   int      `yaml:"readings_end"`
	List1         []string `yaml:"list_1"`
	List2         []string `yaml:"list_2"`
	List3         []string `yaml:"list_3"`
	List4         []string `yaml:"list_4"`
	List5         []string `yaml:"list_5"`
	List6         []string `yaml:"list_6"`
	List7         []string `yaml:"list_7"`
	List8         []string `yaml:"list_8"`
	List9         []string `yaml:"list_9"`
	List10        []string `yaml:"list_10"`
}

// DefaultConfig parses the embedded Horner plan.
func DefaultConfig() (*Config, error) {
	return ParseConfig(hornerYAML)
}

// LoadConfig reads an alternate plan file. The document must have the same
// shape as the embedded plan: list_1 through list_10 of "Book, N" entries.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a plan document and validates its entries.
func ParseConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse plan yaml: %w", err)
	}

	cfg := &Config{
		ReadingsStart: raw.ReadingsStart,
		ReadingsEnd:   raw.ReadingsEnd,
	}

	rawLists := [NumLists][]string{
		raw.List1, raw.List2, raw.List3, raw.List4, raw.List5,
		raw.List6, raw.List7, raw.List8, raw.List9, raw.List10,
	}
	for i, entries := range rawLists {
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: list_%d is missing or empty", ErrInvalidConfig, i+1)
		}
		list := make([]BookChapters, 0, len(entries))
		for _, entry := range entries {
			bc, err := parseEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("list_%d: %w", i+1, err)
			}
			list = append(list, bc)
		}
		cfg.Lists[i] = list
	}

	return cfg, nil
}

// parseEntry splits "Book, N" into a BookChapters. Book names may contain
// spaces ("Song of Solomon") but never commas.
func parseEntry(entry string) (BookChapters, error) {
	book, count, ok := strings.Cut(entry, ",")
	if !ok {
		return BookChapters{}, fmt.Errorf("%w: entry %q is not \"Book, chapters\"", ErrInvalidConfig, entry)
	}
	book = strings.TrimSpace(book)
	chapters, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return BookChapters{}, fmt.Errorf("%w: entry %q has a non-numeric chapter count", ErrInvalidConfig, entry)
	}
	return BookChapters{Book: book, Chapters: chapters}, nil
}
