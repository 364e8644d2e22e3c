package puzzle

import (
	"strings"

	"github.com/TVLuke/kennzeichen-buch/internal/segment"
)

const (
	DefaultMinWordLen = 7
	DefaultMaxWordLen = 12
	DefaultMinCodes   = 3
)

// BookDigraphs are the letter pairs the book layout leaves out.
var BookDigraphs = []string{"UE", "OU", "AE", "SS"}

// WordPredicate reports whether a word should be skipped.
type WordPredicate func(word string) bool

// Policy holds the tunable filter parameters of a run.
type Policy struct {
	MinWordLen int
	MaxWordLen int
	MinCodes   int
	Exclude    WordPredicate // optional
}

// DefaultPolicy returns the 7–12 letter, three-code policy with no
// exclusions.
func DefaultPolicy() Policy {
	return Policy{
		MinWordLen: DefaultMinWordLen,
		MaxWordLen: DefaultMaxWordLen,
		MinCodes:   DefaultMinCodes,
	}
}

// Eligible reports whether word passes the length filter and Exclude.
func (p Policy) Eligible(word string) bool {
	if len(word) < p.MinWordLen || len(word) > p.MaxWordLen {
		return false
	}
	return p.Exclude == nil || !p.Exclude(word)
}

// SelectEligibleWords returns the eligible words in input order.
func (p Policy) SelectEligibleWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if p.Eligible(w) {
			out = append(out, w)
		}
	}
	return out
}

// AcceptDecomposition reports whether d has enough codes to be a puzzle.
func (p Policy) AcceptDecomposition(d segment.Decomposition) bool {
	return len(d) >= p.MinCodes
}

// ExcludeDigraphs returns a predicate matching words that contain any of
// pairs. Empty pairs are ignored; with none left the predicate is nil.
func ExcludeDigraphs(pairs ...string) WordPredicate {
	var keep []string
	for _, p := range pairs {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return nil
	}
	return func(word string) bool {
		for _, p := range keep {
			if strings.Contains(word, p) {
				return true
			}
		}
		return false
	}
}
