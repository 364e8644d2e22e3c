// internal/store/sqlite.go
//
// SQLite archive of generation runs.
// Responsibilities:
//   - Open the database with WAL, busy timeout and foreign keys.
//   - Apply the embedded migrations (sql/*.sql), recorded in _migrations.
//   - Save runs with their puzzles in one transaction; read them back.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
)

//go:embed sql/*.sql
var migrations embed.FS

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite is a Store backed by a SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn and
// migrates it. ":memory:" works for tests.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every new connection would see a fresh, empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file of fsys in lexical order, each in its
// own transaction, skipping names already in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", strings.TrimPrefix(f, "sql/")).Msg("applied")
	}
	return nil
}

// Save inserts the run and its puzzles. Saving an existing ID replaces it.
func (s *SQLite) Save(ctx context.Context, r *Run) error {
	if r == nil || r.ID == "" {
		return errors.New("store: sqlite: run without id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, r.ID); err != nil {
		return fmt.Errorf("replace run: %w", err)
	}
	st := r.Stats
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs
            (id, created_at, candidates, eligible, attempted, decomposed, accepted, invalid)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout),
		st.Candidates, st.Eligible, st.Attempted, st.Decomposed, st.Accepted, st.Invalid,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	ins, err := tx.PrepareContext(ctx, `INSERT INTO puzzles (run_id, position, word, solution_json) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer ins.Close()
	for i, rec := range r.Records {
		sol, err := json.Marshal(rec.Solution)
		if err != nil {
			return fmt.Errorf("encode %s: %w", rec.Word, err)
		}
		if _, err := ins.ExecContext(ctx, r.ID, i, rec.Word, string(sol)); err != nil {
			return fmt.Errorf("insert puzzle %s: %w", rec.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Str("run", r.ID).Int("records", len(r.Records)).Msg("run archived")
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*Run, error) {
	r := &Run{ID: id}
	var created string
	err := s.db.QueryRowContext(ctx, `
        SELECT created_at, candidates, eligible, attempted, decomposed, accepted, invalid
        FROM runs WHERE id=?`, id,
	).Scan(&created, &r.Stats.Candidates, &r.Stats.Eligible, &r.Stats.Attempted,
		&r.Stats.Decomposed, &r.Stats.Accepted, &r.Stats.Invalid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("run %s: created_at: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT word, solution_json FROM puzzles
        WHERE run_id=? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	r.Records = []puzzle.Record{}
	for rows.Next() {
		var rec puzzle.Record
		var sol string
		if err := rows.Scan(&rec.Word, &sol); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(sol), &rec.Solution); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rec.Word, err)
		}
		r.Records = append(r.Records, rec)
	}
	return r, rows.Err()
}

func (s *SQLite) Latest(ctx context.Context) (*Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Runs lists run IDs, newest first.
func (s *SQLite) Runs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
