package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"cubby/internal/config"
)

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the history database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// RecordRun stores a run with its per-file rows, then prunes old runs down to
// keep. keep <= 0 disables pruning.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileRecord, keep int) error {
	ctx = ensureContext(ctx)
	if err := retryOnBusy(ctx, func() error {
		return s.insertRun(ctx, run, files)
	}); err != nil {
		return err
	}
	if keep > 0 {
		if err := s.prune(ctx, keep); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
	}
	return nil
}

func (s *Store) insertRun(ctx context.Context, run Run, files []FileRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, root, mode, started_at, finished_at, moved, skipped_exists, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Root,
		run.Mode,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Moved,
		run.SkippedExists,
		run.Failed,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range files {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, name, destination, outcome, detail)
             VALUES (?, ?, ?, ?, ?)`,
			run.ID,
			file.Name,
			file.Destination,
			file.Outcome,
			nullableString(file.Detail),
		); err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns runs newest first. limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)

	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
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

// GetRun fetches a run and its per-file rows by identifier. A missing run
// yields a nil Run and no error.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []FileRecord, error) {
	ctx = ensureContext(ctx)

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, name, destination, outcome, detail FROM run_files WHERE run_id = ? ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("get run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var (
			file   FileRecord
			detail sql.NullString
		)
		if err := rows.Scan(&file.RunID, &file.Name, &file.Destination, &file.Outcome, &detail); err != nil {
			return nil, nil, err
		}
		file.Detail = detail.String
		files = append(files, file)
	}
	return &run, files, rows.Err()
}

// FindRun resolves a run by full identifier or unique prefix, matching the
// shortened IDs the CLI prints. An ambiguous prefix is an error; an unknown
// one yields a nil Run.
func (s *Store) FindRun(ctx context.Context, idOrPrefix string) (*Run, []FileRecord, error) {
	ctx = ensureContext(ctx)

	run, files, err := s.GetRun(ctx, idOrPrefix)
	if err != nil || run != nil {
		return run, files, err
	}
	if idOrPrefix == "" {
		return nil, nil, nil
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id FROM runs WHERE id LIKE ? ORDER BY id LIMIT 2`,
		idOrPrefix+"%",
	)
	if err != nil {
		return nil, nil, fmt.Errorf("find run: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	switch len(ids) {
	case 0:
		return nil, nil, nil
	case 1:
		return s.GetRun(ctx, ids[0])
	default:
		return nil, nil, fmt.Errorf("run id %q is ambiguous", idOrPrefix)
	}
}

// CountRuns reports how many runs the store holds.
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

func (s *Store) prune(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
        )`,
		keep,
	)
	return err
}

const runColumns = "id, root, mode, started_at, finished_at, moved, skipped_exists, failed"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Root,
		&run.Mode,
		&startedRaw,
		&finishedRaw,
		&run.Moved,
		&run.SkippedExists,
		&run.Failed,
	); err != nil {
		return Run{}, err
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finished, err := parseTimeString(finishedRaw); err == nil {
		run.FinishedAt = finished
	}
	return run, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
