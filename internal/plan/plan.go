// Package plan implements the Horner reading plan: ten book lists expanded
// into chapter sequences that each cycle independently by day index.
package plan

import (
	"errors"
	"fmt"
)

const (
	// Days is the length of the annual cycle.
	Days = 365
	// NumLists is the fixed number of parallel reading lists.
	NumLists = 10
)

// ErrInvalidConfig reports a malformed plan configuration.
var ErrInvalidConfig = errors.New("invalid plan configuration")

// Reading is a single book chapter to read on a given day.
type Reading struct {
	Book    string
	Chapter int
}

func (r Reading) String() string {
	return fmt.Sprintf("%s %d", r.Book, r.Chapter)
}

// Sequence is the ordered chapter run for one list: every book in input
// order, chapters 1..N for each.
type Sequence []Reading

// Expand turns a book list into its flat chapter sequence.
func Expand(books []BookChapters) (Sequence, error) {
	var seq Sequence
	for _, bc := range books {
		if bc.Book == "" {
			return nil, fmt.Errorf("%w: empty book name", ErrInvalidConfig)
		}
		if bc.Chapters < 1 {
			return nil, fmt.Errorf("%w: %s has chapter count %d", ErrInvalidConfig, bc.Book, bc.Chapters)
		}
		for c := 1; c <= bc.Chapters; c++ {
			seq = append(seq, Reading{Book: bc.Book, Chapter: c})
		}
	}
	return seq, nil
}

// Set holds the ten expanded sequences of a plan.
type Set struct {
	seqs [NumLists]Sequence
}

// BuildSet expands every configured list into a Set.
func BuildSet(cfg *Config) (*Set, error) {
	set := &Set{}
	for i, list := range cfg.Lists {
		seq, err := Expand(list)
		if err != nil {
			return nil, fmt.Errorf("list %d: %w", i+1, err)
		}
		if len(seq) == 0 {
			return nil, fmt.Errorf("%w: list %d expands to no readings", ErrInvalidConfig, i+1)
		}
		set.seqs[i] = seq
	}
	return set, nil
}

// ReadingsFor returns the ten readings for a day index. Each sequence wraps
// at its own length, so the lists drift against each other and only line up
// again at the LCM of all ten lengths. day may be any non-negative value;
// callers printing a year pass 0..Days-1.
func (s *Set) ReadingsFor(day int) [NumLists]Reading {
	var out [NumLists]Reading
	for i, seq := range s.seqs {
		out[i] = seq[day%len(seq)]
	}
	return out
}

// SequenceLen returns the chapter count of list i (0-based).
func (s *Set) SequenceLen(i int) int {
	return len(s.seqs[i])
}
