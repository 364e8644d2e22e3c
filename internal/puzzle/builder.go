package puzzle

import (
	"github.com/TVLuke/kennzeichen-buch/internal/lexicon"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
)

// NameLookup resolves a code to its region name. *lexicon.Lexicon
// implements it.
type NameLookup interface {
	Lookup(code string) (string, bool)
}

// BuildRecord attaches region names to d. Codes without a name get
// lexicon.UnknownName; the order of d is kept.
func BuildRecord(word string, d segment.Decomposition, names NameLookup) Record {
	sol := make([]Entry, len(d))
	for i, code := range d {
		name := lexicon.UnknownName
		if names != nil {
			if n, ok := names.Lookup(code); ok {
				name = n
			}
		}
		sol[i] = Entry{Code: code, Name: name}
	}
	return Record{Word: word, Solution: sol}
}
