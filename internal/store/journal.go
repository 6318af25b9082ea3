// Package store keeps a journal of interpreter runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/funvibe/funqy/internal/export"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is fixed-width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	file        TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	prints      TEXT NOT NULL,
	result      BLOB,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	duration_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Run is one recorded program execution.
type Run struct {
	ID        uuid.UUID
	File      string
	Seed      uint64
	Prints    []string
	Result    *export.Snapshot
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// Journal wraps the runs database.
type Journal struct {
	conn *sql.DB
	path string
	log  zerolog.Logger
}

// Open creates the journal database at path if needed and applies the schema.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	return &Journal{
		conn: conn,
		path: path,
		log:  log.With().Str("journal", path).Logger(),
	}, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.conn.Close()
}

// Record inserts a run, assigning an ID when it has none.
func (j *Journal) Record(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	var result []byte
	if run.Result != nil {
		var err error
		if result, err = export.MarshalSnapshot(*run.Result); err != nil {
			return fmt.Errorf("failed to encode run result: %w", err)
		}
	}

	_, err := j.conn.ExecContext(ctx, `
		INSERT INTO runs (id, file, seed, prints, result, error, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.File,
		int64(run.Seed),
		strings.Join(run.Prints, "\n"),
		result,
		run.Error,
		run.StartedAt.UTC().Format(timeLayout),
		int64(run.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	j.log.Debug().Str("run", run.ID.String()).Str("file", run.File).Msg("run recorded")
	return nil
}

// Recent returns up to limit runs, most recent first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := j.conn.QueryContext(ctx, `
		SELECT id, file, seed, prints, result, error, started_at, duration_ns
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given ID, or nil when there is none.
func (j *Journal) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	rows, err := j.conn.QueryContext(ctx, `
		SELECT id, file, seed, prints, result, error, started_at, duration_ns
		FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	run, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		id         string
		seed       int64
		prints     string
		result     []byte
		startedAt  string
		durationNs int64
	)
	if err := rows.Scan(&id, &run.File, &seed, &prints, &result, &run.Error, &startedAt, &durationNs); err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.ID = parsed
	run.Seed = uint64(seed)
	if prints != "" {
		run.Prints = strings.Split(prints, "\n")
	}
	if len(result) > 0 {
		snap, err := export.UnmarshalSnapshot(result)
		if err != nil {
			return Run{}, fmt.Errorf("failed to decode run result: %w", err)
		}
		run.Result = &snap
	}
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return Run{}, fmt.Errorf("invalid run timestamp %q: %w", startedAt, err)
	}
	run.Duration = time.Duration(durationNs)
	return run, nil
}
