// internal/lexicon/lexicon.go
//
// Code lexicon for the puzzle generator.
// Responsibilities:
//   - Hold the immutable set of registration codes available for a run.
//   - Map each code to its display name (and federal state, when known).
//   - Reject malformed input up front so a misconfigured run fails early.
//
// Notes:
//   - Codes are 1–3 uppercase ASCII letters. Entries repeating a code are
//     merged into one name joined with " oder ", the way the book prints
//     codes shared by two districts.
//   - A *Lexicon is read-only after New returns and safe to share.

package lexicon

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	MinCodeLen = 1
	MaxCodeLen = 3

	// UnknownName is printed for codes without a display name.
	UnknownName = "Unbekannt"

	nameJoiner = " oder "
)

var (
	// ErrInvalidInput is the root of every shape violation in words or codes.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyLexicon = fmt.Errorf("%w: lexicon has no codes", ErrInvalidInput)
	ErrInvalidCode  = fmt.Errorf("%w: code must be 1-3 letters A-Z", ErrInvalidInput)
)

// Entry is one row of lexicon input.
type Entry struct {
	Code  string `yaml:"code" json:"code"`
	Name  string `yaml:"name" json:"name"`
	State string `yaml:"state,omitempty" json:"state,omitempty"`
}

// Lexicon is the set of valid codes of one generation run.
type Lexicon struct {
	entries map[string]Entry
	codes   []string // sorted
}

// New validates and merges entries into a Lexicon.
func New(entries []Entry) (*Lexicon, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyLexicon
	}
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if !IsCode(code) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCode, e.Code)
		}
		e.Code = code
		e.Name = NormalizeName(e.Name)
		e.State = NormalizeName(e.State)

		prev, seen := m[code]
		if !seen {
			m[code] = e
			continue
		}
		m[code] = merge(prev, e)
	}

	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return &Lexicon{entries: m, codes: codes}, nil
}

// FromNames builds a Lexicon from a plain code→name map.
func FromNames(names map[string]string) (*Lexicon, error) {
	entries := make([]Entry, 0, len(names))
	for code, name := range names {
		entries = append(entries, Entry{Code: code, Name: name})
	}
	return New(entries)
}

// merge folds a repeated code into the existing entry.
func merge(prev, next Entry) Entry {
	switch {
	case next.Name == "":
	case prev.Name == "":
		prev.Name = next.Name
	case !containsName(prev.Name, next.Name):
		prev.Name = prev.Name + nameJoiner + next.Name
	}
	if prev.State == "" {
		prev.State = next.State
	}
	return prev
}

func containsName(joined, name string) bool {
	for _, part := range strings.Split(joined, nameJoiner) {
		if part == name {
			return true
		}
	}
	return false
}

// Has reports whether code is in the lexicon.
func (l *Lexicon) Has(code string) bool {
	if l == nil {
		return false
	}
	_, ok := l.entries[code]
	return ok
}

// Len returns the number of distinct codes. A nil Lexicon has none.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.codes)
}

// Lookup returns the display name for code. ok is false when the code is
// unknown or carries no name.
func (l *Lexicon) Lookup(code string) (string, bool) {
	if l == nil {
		return "", false
	}
	e, ok := l.entries[code]
	if !ok || e.Name == "" {
		return "", false
	}
	return e.Name, true
}

// Name returns the display name for code, or UnknownName.
func (l *Lexicon) Name(code string) string {
	if n, ok := l.Lookup(code); ok {
		return n
	}
	return UnknownName
}

// State returns the federal state recorded for code, if any.
func (l *Lexicon) State(code string) string {
	if l == nil {
		return ""
	}
	return l.entries[code].State
}

// Codes returns a sorted copy of all codes.
func (l *Lexicon) Codes() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.codes...)
}

// MultiRegion returns the codes whose name lists more than one district.
func (l *Lexicon) MultiRegion() map[string][]string {
	out := map[string][]string{}
	if l == nil {
		return out
	}
	for _, c := range l.codes {
		if parts := strings.Split(l.entries[c].Name, nameJoiner); len(parts) > 1 {
			out[c] = parts
		}
	}
	return out
}

// IsCode reports whether s is 1–3 uppercase ASCII letters.
func IsCode(s string) bool {
	return len(s) >= MinCodeLen && len(s) <= MaxCodeLen && IsUpperAlpha(s)
}

// IsUpperAlpha reports whether s is non-empty and consists only of A–Z.
func IsUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
