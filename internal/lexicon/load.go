package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/TVLuke/kennzeichen-buch/assets"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown extensions.
var ErrUnsupportedFormat = errors.New("lexicon: unsupported file format")

// ParseCSV reads rows of "code,name[,state]". A leading header row whose
// first cell is "code" or "kennzeichen" is skipped.
func ParseCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Entry
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lexicon: csv: %w", err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if n == 1 && isHeader(rec[0]) {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("lexicon: csv record %d: want at least 2 columns, got %d", n, len(rec))
		}
		e := Entry{
			Code: strings.Trim(NormalizeName(rec[0]), `"`),
			Name: rec[1],
		}
		if len(rec) >= 3 {
			e.State = rec[2]
		}
		out = append(out, e)
	}
	return out, nil
}

func isHeader(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "code", "kennzeichen", "kfz", "unterscheidungszeichen":
		return true
	}
	return false
}

// ParseYAML accepts either a mapping (code: name | code: {name, state})
// or a sequence of {code, name, state} objects.
func ParseYAML(r io.Reader) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("lexicon: yaml: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	switch doc.Kind {
	case yaml.SequenceNode:
		var out []Entry
		if err := doc.Decode(&out); err != nil {
			return nil, fmt.Errorf("lexicon: yaml: %w", err)
		}
		return out, nil
	case yaml.MappingNode:
		out := make([]Entry, 0, len(doc.Content)/2)
		for i := 0; i+1 < len(doc.Content); i += 2 {
			key, val := doc.Content[i], doc.Content[i+1]
			e := Entry{Code: key.Value}
			switch val.Kind {
			case yaml.ScalarNode:
				e.Name = val.Value
			case yaml.MappingNode:
				if err := val.Decode(&e); err != nil {
					return nil, fmt.Errorf("lexicon: yaml %q: %w", key.Value, err)
				}
				e.Code = key.Value
			default:
				return nil, fmt.Errorf("lexicon: yaml %q: unexpected node at line %d", key.Value, val.Line)
			}
			out = append(out, e)
		}
		return out, nil
	}
	return nil, fmt.Errorf("lexicon: yaml: expected mapping or sequence at line %d", doc.Line)
}

// LoadFile reads a lexicon from a .csv, .yaml or .yml file. Codes spelled
// with umlauts (TÖL, MÜ, ...) can never match a transliterated word; they
// are left out and returned in skipped.
func LoadFile(path string) (lex *Lexicon, skipped []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var entries []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		entries, err = ParseCSV(f)
	case ".yaml", ".yml":
		entries, err = ParseYAML(f)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, nil, err
	}
	return build(entries)
}

// Default loads the lexicon embedded in assets/codes.csv.
func Default() (*Lexicon, []string, error) {
	f, err := assets.FS.Open(assets.CodesFile)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	entries, err := ParseCSV(f)
	if err != nil {
		return nil, nil, err
	}
	return build(entries)
}

func build(entries []Entry) (*Lexicon, []string, error) {
	usable, skipped := Usable(entries)
	lex, err := New(usable)
	if err != nil {
		return nil, skipped, err
	}
	return lex, skipped, nil
}

// Usable splits off entries whose code consists of letters but not only
// A–Z. Everything else is passed through so New can reject it.
func Usable(entries []Entry) (usable []Entry, skipped []string) {
	usable = make([]Entry, 0, len(entries))
	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Code))
		if !IsUpperAlpha(code) && allLetters(code) {
			skipped = append(skipped, code)
			continue
		}
		usable = append(usable, e)
	}
	return usable, skipped
}

func allLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NormalizeName trims s, repairs UTF-8 text that was decoded as
// Windows-1252 once ("DÃ¼sseldorf") and returns it in NFC.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if strings.ContainsRune(s, 'Ã') {
		if b, err := charmap.Windows1252.NewEncoder().String(s); err == nil && utf8.ValidString(b) {
			s = b
		}
	}
	return norm.NFC.String(s)
}
