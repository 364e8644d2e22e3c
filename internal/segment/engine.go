// internal/segment/engine.go
//
// Minimal decomposition of a word into distinct codes.
//
// Algorithm:
//   - Depth-first backtracking from position 0. At each position try the
//     next 1, 2, then 3 letters; descend only into codes that exist and are
//     not already on the current path.
//   - Branch and bound: the relaxed suffix costs (see relaxed.go) give the
//     fewest codes any cover of word[i:] could use. A path stops as soon as
//     path length + that bound can no longer beat the best cover found.
//     A suffix the relaxation cannot cover is dropped immediately.
//   - Only strictly shorter covers replace the best one, so among covers of
//     minimal length the first in search order wins. The result is therefore
//     deterministic for a given word and code set.
//
// Words in this domain are at most 12 letters, so the search stays tiny.

package segment

import "github.com/TVLuke/kennzeichen-buch/internal/lexicon"

// FindMinimal returns a decomposition of word with the fewest codes.
// ok is false when no decomposition exists; that is an expected outcome.
// err is non-nil only for invalid input.
func FindMinimal(word string, codes CodeSet) (d Decomposition, ok bool, err error) {
	if err := validate(word, codes); err != nil {
		return nil, false, err
	}

	cost, _ := relax(word, codes)
	if cost[0] < 0 {
		return nil, false, nil
	}

	s := &search{
		word:  word,
		codes: codes,
		bound: cost,
		used:  make(map[string]struct{}, len(word)),
		path:  make([]string, 0, len(word)),
	}
	s.walk(0)
	if s.best == nil {
		return nil, false, nil
	}
	return s.best, true, nil
}

// search is the mutable state of one FindMinimal call.
type search struct {
	word  string
	codes CodeSet
	bound []int // relaxed cost per suffix, -1 if uncoverable

	used map[string]struct{}
	path []string
	best Decomposition
}

func (s *search) walk(pos int) {
	if pos == len(s.word) {
		if s.best == nil || len(s.path) < len(s.best) {
			s.best = Decomposition(s.path).clone()
		}
		return
	}
	if s.bound[pos] < 0 {
		return
	}
	if s.best != nil && len(s.path)+s.bound[pos] >= len(s.best) {
		return
	}

	for n := lexicon.MinCodeLen; n <= lexicon.MaxCodeLen && pos+n <= len(s.word); n++ {
		code := s.word[pos : pos+n]
		if _, taken := s.used[code]; taken || !s.codes.Has(code) {
			continue
		}
		s.used[code] = struct{}{}
		s.path = append(s.path, code)

		s.walk(pos + n)

		s.path = s.path[:len(s.path)-1]
		delete(s.used, code)
	}
}
