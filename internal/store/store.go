// internal/store/store.go
//
// Result sinks for generation runs.
// Responsibilities:
//   - Define the Run envelope (id, timestamp, stats, records).
//   - Sink: anything a finished run can be written to.
//   - Store: a Sink that can also hand runs back (memory, SQLite).
//
// Implementations:
//   - Memory   (memory.go)   process-local, used by tests and the server.
//   - JSONFile (jsonfile.go) the record array consumed by the book layout.
//   - SQLite   (sqlite.go)   archive of every run.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("store: not found")

// Run is one generation run as persisted.
type Run struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Stats     puzzle.Stats    `json:"stats"`
	Records   []puzzle.Record `json:"records"`
}

// NewRun wraps a generation result with a fresh id and timestamp.
func NewRun(res *puzzle.Result) *Run {
	r := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   []puzzle.Record{},
	}
	if res != nil {
		r.Stats = res.Stats
		if res.Records != nil {
			r.Records = res.Records
		}
	}
	return r
}

// Result returns the run as a puzzle.Result.
func (r *Run) Result() *puzzle.Result {
	return &puzzle.Result{Records: r.Records, Stats: r.Stats}
}

// Sink receives finished runs.
type Sink interface {
	Save(ctx context.Context, r *Run) error
}

// Store is a Sink that can return what it saved.
type Store interface {
	Sink

	// Get retrieves a run by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Run, error)

	// Latest returns the most recently saved run.
	Latest(ctx context.Context) (*Run, error)
}

// Tee fans a run out to every sink in order and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Save(ctx context.Context, r *Run) error {
	for _, s := range t {
		if s == nil {
			continue
		}
		if err := s.Save(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
