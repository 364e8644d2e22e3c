// Package segment splits a word into registration codes.
//
// A decomposition covers the word left to right with codes of 1–3 letters,
// no gaps, no overlaps, and no code used twice. FindMinimal returns one with
// the fewest codes. Relaxed drops the no-reuse rule; it is cheaper and
// serves as a lower bound, never as a puzzle answer.
package segment

import (
	"fmt"
	"strings"

	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
)

var (
	// ErrInvalidWord reports an empty word or one with characters outside A–Z.
	ErrInvalidWord = fmt.Errorf("%w: word must be non-empty A-Z", lexicon.ErrInvalidInput)

	// ErrEmptyCodeSet reports a nil or empty code set.
	ErrEmptyCodeSet = fmt.Errorf("%w: code set is empty", lexicon.ErrInvalidInput)
)

// CodeSet is the read-only view of a lexicon the engine needs.
// *lexicon.Lexicon and Set implement it.
type CodeSet interface {
	Has(code string) bool
	Len() int
}

// Set is a CodeSet backed by a map.
type Set map[string]struct{}

// NewSet returns a Set holding codes.
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s Set) Has(code string) bool { _, ok := s[code]; return ok }
func (s Set) Len() int             { return len(s) }

// Decomposition is an ordered list of distinct codes spelling a word.
type Decomposition []string

// Word returns the concatenation of all codes.
func (d Decomposition) Word() string { return strings.Join(d, "") }

// String renders the decomposition as "F-A-HR".
func (d Decomposition) String() string { return strings.Join(d, "-") }

// Distinct reports whether no code repeats.
func (d Decomposition) Distinct() bool {
	seen := make(map[string]struct{}, len(d))
	for _, c := range d {
		if _, dup := seen[c]; dup {
			return false
		}
		seen[c] = struct{}{}
	}
	return true
}

func (d Decomposition) clone() Decomposition {
	if d == nil {
		return nil
	}
	return append(Decomposition(nil), d...)
}

// validate checks the shape of the inputs shared by all entry points.
func validate(word string, codes CodeSet) error {
	if codes == nil || codes.Len() == 0 {
		return ErrEmptyCodeSet
	}
	if !lexicon.IsUpperAlpha(word) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return nil
}
