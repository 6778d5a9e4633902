package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound indicates no run exists for the requested identifier.
var ErrRunNotFound = errors.New("run not found")

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run database under dir and applies
// migrations.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "runs.db")
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
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun records one run and its per-identifier items. A missing ID or
// timestamp is filled in; the stored run is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, items []Item) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin run tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, kind, label, created_at, total_requested,
            resolved_count, unresolved_count, success_rate, results_path
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Kind),
		run.Label,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.TotalRequested,
		run.ResolvedCount,
		run.UnresolvedCount,
		run.SuccessRate,
		run.ResultsPath,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(
			ctx,
			"INSERT INTO run_items (run_id, identifier, symbol, resolved) VALUES (?, ?, ?, ?)",
			run.ID,
			item.Identifier,
			item.Symbol,
			boolToInt(item.Resolved),
		)
		if err != nil {
			return Run{}, fmt.Errorf("insert run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// GetByID fetches one run and its items.
func (s *Store) GetByID(ctx context.Context, id string) (Run, []Item, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, kind, label, created_at, total_requested,
            resolved_count, unresolved_count, success_rate, results_path
        FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		"SELECT run_id, identifier, symbol, resolved FROM run_items WHERE run_id = ? ORDER BY rowid",
		id,
	)
	if err != nil {
		return Run{}, nil, fmt.Errorf("query run items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var resolved int
		if err := rows.Scan(&item.RunID, &item.Identifier, &item.Symbol, &resolved); err != nil {
			return Run{}, nil, fmt.Errorf("scan run item: %w", err)
		}
		item.Resolved = resolved != 0
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, fmt.Errorf("iterate run items: %w", err)
	}
	return run, items, nil
}

// Recent lists runs newest first, capped at limit when limit is positive.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, kind, label, created_at, total_requested,
            resolved_count, unresolved_count, success_rate, results_path
        FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var kind string
	var createdAt string
	err := row.Scan(
		&run.ID,
		&kind,
		&run.Label,
		&createdAt,
		&run.TotalRequested,
		&run.ResolvedCount,
		&run.UnresolvedCount,
		&run.SuccessRate,
		&run.ResultsPath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Kind = Kind(kind)
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse run timestamp: %w", err)
	}
	run.CreatedAt = parsed
	return run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
