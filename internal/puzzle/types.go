// internal/puzzle/types.go
//
// Core type definitions for generated puzzles.
// Defines:
//   - Entry: one code of a solution with its region name.
//   - Record: a finished puzzle, serialised as {word, solution}.
//   - Stats / Result: outcome of one generation run.

package puzzle

import (
	"strings"

	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
)

// Entry pairs a code with the region name the reader sees.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Record is one puzzle. The codes of Solution, concatenated in order,
// spell Word, and no code appears twice.
type Record struct {
	Word     string  `json:"word"`
	Solution []Entry `json:"solution"`
}

// Codes returns the codes of the solution in order.
func (r Record) Codes() []string {
	out := make([]string, len(r.Solution))
	for i, e := range r.Solution {
		out[i] = e.Code
	}
	return out
}

// Names returns the region names in order, as printed on the puzzle page.
func (r Record) Names() []string {
	out := make([]string, len(r.Solution))
	for i, e := range r.Solution {
		out[i] = e.Name
	}
	return out
}

// AnswerKey renders the solution as printed in the book's answer block,
// e.g. "F + A + HR + RA + D".
func (r Record) AnswerKey() string {
	return strings.Join(r.Codes(), " + ")
}

// Verify reports whether r satisfies the record invariants: non-empty
// solution, codes of 1–3 letters A–Z, pairwise distinct, spelling Word.
func (r Record) Verify() bool {
	if len(r.Solution) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(r.Solution))
	var b strings.Builder
	for _, e := range r.Solution {
		if !lexicon.IsCode(e.Code) {
			return false
		}
		if _, dup := seen[e.Code]; dup {
			return false
		}
		seen[e.Code] = struct{}{}
		b.WriteString(e.Code)
	}
	return b.String() == r.Word
}

// Stats counts what happened to the words of one run.
type Stats struct {
	Candidates int `json:"candidates"` // words handed to Generate
	Eligible   int `json:"eligible"`   // passed the policy filter
	Attempted  int `json:"attempted"`  // eligible and well-formed
	Decomposed int `json:"decomposed"` // a decomposition exists
	Accepted   int `json:"accepted"`   // records emitted
	Invalid    int `json:"invalid"`    // skipped for malformed shape
}

// Result is the output of Generate.
type Result struct {
	Records []Record `json:"records"`
	Stats   Stats    `json:"stats"`
}

// Find returns the record for word, if present.
func (r *Result) Find(word string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	for _, rec := range r.Records {
		if rec.Word == word {
			return rec, true
		}
	}
	return Record{}, false
}
