// internal/words/words.go
//
// Candidate word list for puzzle generation.
//
// Responsibilities:
//   - Load candidate words from a configured file or fall back to the
//     embedded default list (assets/words.txt).
//   - Transliterate German spelling into the A–Z alphabet the codes use.
//
// Word lists:
//   - One word per line, blank lines and lines starting with '#' ignored.
//   - Words are normalised with Normalize; entries that normalise to the
//     empty string are dropped, duplicates keep their first position.
//
// Constraints:
//   • Output words are uppercase A–Z only.
//   • Order of the source file is preserved; the generator relies on it
//     for reproducible output.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/TVLuke/kennzeichen-buch/assets"
)

// ErrEmptyList is returned when a list contains no usable word.
var ErrEmptyList = errors.New("words: list is empty")

var umlauts = strings.NewReplacer(
	"Ä", "AE", "ä", "AE",
	"Ö", "OE", "ö", "OE",
	"Ü", "UE", "ü", "UE",
	"ß", "SS", "ẞ", "SS",
)

// Normalize maps s onto uppercase A–Z. Umlauts and ß are spelled out the
// way crossword puzzles do (Ä→AE, ß→SS); other diacritics are stripped and
// everything that is not a letter is dropped.
func Normalize(s string) string {
	s = umlauts.Replace(norm.NFC.String(s))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Load reads a word list from path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	out := normalizeAll(lines)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, path)
	}
	return out, nil
}

// Default returns the embedded list of traffic nouns.
func Default() ([]string, error) {
	lines, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	out := normalizeAll(lines)
	if len(out) == 0 {
		return nil, ErrEmptyList
	}
	return out, nil
}

// Resolve loads path, or the embedded default when path is empty.
func Resolve(path string) ([]string, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

func normalizeAll(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		w := Normalize(l)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
