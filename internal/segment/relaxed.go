package segment

import "github.com/TVLuke/kennzeichen-buch/internal/lexicon"

// Relaxed returns a shortest cover of word that may use a code more than
// once. Any cover FindMinimal returns is at least as long. ok is false when
// the word cannot be covered at all or the input is invalid.
func Relaxed(word string, codes CodeSet) (Decomposition, bool) {
	if validate(word, codes) != nil {
		return nil, false
	}
	cost, step := relax(word, codes)
	if cost[0] < 0 {
		return nil, false
	}
	d := make(Decomposition, 0, cost[0])
	for i := 0; i < len(word); i += step[i] {
		d = append(d, word[i:i+step[i]])
	}
	return d, true
}

// relax fills, from the back, cost[i] = fewest codes covering word[i:]
// (or -1) and step[i] = length of the first code of such a cover. Ties go
// to the shorter first code.
func relax(word string, codes CodeSet) (cost, step []int) {
	n := len(word)
	cost = make([]int, n+1)
	step = make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		cost[i] = -1
		for l := lexicon.MinCodeLen; l <= lexicon.MaxCodeLen && i+l <= n; l++ {
			if cost[i+l] < 0 || !codes.Has(word[i:i+l]) {
				continue
			}
			if c := cost[i+l] + 1; cost[i] < 0 || c < cost[i] {
				cost[i], step[i] = c, l
			}
		}
	}
	return cost, step
}
