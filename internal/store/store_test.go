package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
)

func sampleResult() *puzzle.Result {
	return &puzzle.Result{
		Records: []puzzle.Record{
			{Word: "FAHRRAD", Solution: []puzzle.Entry{
				{Code: "F", Name: "Frankfurt am Main"},
				{Code: "A", Name: "Augsburg"},
				{Code: "HR", Name: "Schwalm-Eder-Kreis"},
				{Code: "RA", Name: "Rastatt"},
				{Code: "D", Name: "Düsseldorf"},
			}},
			{Word: "PARKUHR", Solution: []puzzle.Entry{
				{Code: "PA", Name: "Passau"},
				{Code: "R", Name: "Regensburg"},
				{Code: "KU", Name: "Kulmbach"},
				{Code: "HR", Name: "Schwalm-Eder-Kreis"},
			}},
		},
		Stats: puzzle.Stats{Candidates: 3, Eligible: 2, Attempted: 2, Decomposed: 2, Accepted: 2},
	}
}

func TestNewRun(t *testing.T) {
	r := store.NewRun(sampleResult())
	assert.Len(t, r.ID, 36)
	assert.WithinDuration(t, time.Now(), r.CreatedAt, time.Minute)
	assert.Equal(t, 2, r.Stats.Accepted)
	assert.Equal(t, sampleResult(), r.Result())

	empty := store.NewRun(nil)
	assert.NotNil(t, empty.Records)
	assert.NotEqual(t, r.ID, empty.ID)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	_, err := s.Latest(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	first := store.NewRun(sampleResult())
	second := store.NewRun(&puzzle.Result{})
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))
	require.NoError(t, s.Save(ctx, first)) // re-save keeps order

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, s.Save(ctx, &store.Run{}))
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "kfz_puzzles.json")
	sink := store.NewJSONFile(path)

	require.NoError(t, sink.Save(context.Background(), store.NewRun(sampleResult())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"word\": \"FAHRRAD\""), text)
	assert.Contains(t, text, `"name": "Düsseldorf"`)

	back, err := store.ReadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Records, back)
}

func TestJSONFile_DefaultPathAndEmpty(t *testing.T) {
	assert.Equal(t, store.DefaultOutputFile, store.NewJSONFile("").Path)

	data, err := store.EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestReadJSONFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := store.ReadJSONFile(path)
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "data", "runs.db")

	db, err := store.OpenSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Latest(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	first := store.NewRun(sampleResult())
	first.CreatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := store.NewRun(&puzzle.Result{Stats: puzzle.Stats{Candidates: 1}})
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, db.Save(ctx, first))
	require.NoError(t, db.Save(ctx, second))

	got, err := db.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Records, got.Records)
	assert.Equal(t, first.Stats, got.Stats)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	latest, err := db.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Empty(t, latest.Records)

	ids, err := db.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids)

	// replacing a run drops its old puzzles
	first.Records = first.Records[:1]
	require.NoError(t, db.Save(ctx, first))
	got, err = db.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Records, 1)

	_, err = db.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_ReopenSkipsMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "runs.db")
	db, err := store.OpenSQLite(dsn)
	require.NoError(t, err)
	run := store.NewRun(sampleResult())
	require.NoError(t, db.Save(context.Background(), run))
	require.NoError(t, db.Close())

	db, err = store.OpenSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

type failingSink struct{ calls int }

func (f *failingSink) Save(context.Context, *store.Run) error {
	f.calls++
	return errors.New("disk full")
}

func TestTee(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	bad := &failingSink{}
	after := store.NewMemoryStore()

	run := store.NewRun(sampleResult())
	err := store.Tee(mem, nil, bad, after).Save(ctx, run)
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, bad.calls)

	_, err = mem.Get(ctx, run.ID)
	assert.NoError(t, err)
	_, err = after.Get(ctx, run.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "sinks after a failure are not called")
}
