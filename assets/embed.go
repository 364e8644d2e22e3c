// Package assets embeds the default word list and code lexicon so the
// generator runs without any configured files.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

const (
	CodesFile = "codes.csv"
	WordsFile = "words.txt"
)

//go:embed codes.csv words.txt
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the embedded candidate words as written in the file.
func WordList() ([]string, error) {
	return readLines(WordsFile)
}
