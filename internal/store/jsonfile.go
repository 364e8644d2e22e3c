package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

// DefaultOutputFile is the file name the book layout reads.
const DefaultOutputFile = "kfz_puzzles.json"

// JSONFile writes the records of a run as a JSON array to Path. Umlauts in
// region names are written as-is, indented by four spaces.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a JSONFile sink; an empty path selects
// DefaultOutputFile.
func NewJSONFile(path string) *JSONFile {
	if path == "" {
		path = DefaultOutputFile
	}
	return &JSONFile{Path: path}
}

// Save replaces the file atomically (write to temp, rename).
func (j *JSONFile) Save(_ context.Context, r *Run) error {
	data, err := EncodeRecords(r.Records)
	if err != nil {
		return err
	}
	dir := filepath.Dir(j.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(dir, ".kfz-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", j.Path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), j.Path); err != nil {
		return fmt.Errorf("rename %s: %w", j.Path, err)
	}
	log.Info().Str("path", j.Path).Int("records", len(r.Records)).Msg("puzzles written")
	return nil
}

// EncodeRecords renders records the way JSONFile stores them.
func EncodeRecords(records []puzzle.Record) ([]byte, error) {
	if records == nil {
		records = []puzzle.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadJSONFile loads a record array written by JSONFile.
func ReadJSONFile(path string) ([]puzzle.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []puzzle.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
