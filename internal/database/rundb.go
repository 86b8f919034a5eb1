package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// RunDB stores inject runs and their per-file results.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its directory if
	// they don't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database at dbPath.
// If CreateIfNotExists is false and the file doesn't exist, ErrDatabaseNotFound
// is returned.
func Open(dbPath string, opts Options) (*RunDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	// foreign_keys is set per connection so file results follow their run.
	dsn := dbPath + "?mode=rw&_pragma=foreign_keys(1)"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- One row per inject invocation
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		started_at TEXT NOT NULL,
		completed_at TEXT,
		mode TEXT,
		attribute TEXT,
		prefix TEXT,
		dry_run INTEGER DEFAULT 0,
		file_count INTEGER DEFAULT 0,
		id_count INTEGER DEFAULT 0,
		summary_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- One row per processed file
	CREATE TABLE IF NOT EXISTS file_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		output_path TEXT,
		status TEXT NOT NULL,
		source_hash TEXT,
		output_hash TEXT,
		assignments_json TEXT,
		existing INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0,
		error TEXT,
		UNIQUE(run_id, path)
	);

	CREATE INDEX IF NOT EXISTS idx_results_run ON file_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_path ON file_results(path);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunInfo is the stored metadata of one run, without its files.
type RunInfo struct {
	ID          string
	Root        string
	StartedAt   time.Time
	CompletedAt time.Time
	Mode        string
	Attribute   string
	Prefix      string
	DryRun      bool
	Files       int
	IDs         int
	Summary     *model.Summary
}

// SaveRun stores run and all its file results in one transaction.
// Saving a run id twice replaces the earlier record.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.RunReport) (err error) {
	summary := model.NewSummary(run)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, run.RunID); err != nil {
		return fmt.Errorf("failed to replace run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, root, started_at, completed_at, mode, attribute, prefix, dry_run, file_count, id_count, summary_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.Root,
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.CompletedAt),
		run.Mode,
		run.Attribute,
		run.Prefix,
		run.DryRun,
		summary.Files,
		summary.IDs,
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO file_results (run_id, path, output_path, status, source_hash, output_hash, assignments_json, existing, skipped, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range run.Files {
		var assignments []byte
		assignments, err = json.Marshal(f.Assignments)
		if err != nil {
			return fmt.Errorf("failed to serialize assignments for %s: %w", f.Path, err)
		}

		_, err = stmt.ExecContext(ctx,
			run.RunID,
			f.Path,
			f.OutputPath,
			f.Status.String(),
			f.SourceHash,
			f.OutputHash,
			string(assignments),
			f.Existing,
			f.Skipped,
			f.Error,
		)
		if err != nil {
			return fmt.Errorf("failed to save file result %s: %w", f.Path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or
// less returns every run.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	query := `
	SELECT id, root, started_at, completed_at, mode, attribute, prefix, dry_run, file_count, id_count, summary_json
	FROM runs
	ORDER BY started_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		info, err := scanRunInfo(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *info)
	}

	return runs, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunInfo(row rowScanner) (*RunInfo, error) {
	var (
		info                 RunInfo
		startedAt, completed sql.NullString
		mode, attr, prefix   sql.NullString
		summaryJSON          sql.NullString
	)
	err := row.Scan(
		&info.ID,
		&info.Root,
		&startedAt,
		&completed,
		&mode,
		&attr,
		&prefix,
		&info.DryRun,
		&info.Files,
		&info.IDs,
		&summaryJSON,
	)
	if err != nil {
		return nil, err
	}

	info.StartedAt = parseTimestamp(startedAt.String)
	info.CompletedAt = parseTimestamp(completed.String)
	info.Mode = mode.String
	info.Attribute = attr.String
	info.Prefix = prefix.String

	if summaryJSON.Valid && summaryJSON.String != "" {
		var s model.Summary
		if err := json.Unmarshal([]byte(summaryJSON.String), &s); err != nil {
			return nil, fmt.Errorf("failed to parse summary of run %s: %w", info.ID, err)
		}
		info.Summary = &s
	}

	return &info, nil
}

// GetRunInfo returns the metadata of the run with the given id.
func (rdb *RunDB) GetRunInfo(ctx context.Context, id string) (*RunInfo, error) {
	row := rdb.db.QueryRowContext(ctx, `
	SELECT id, root, started_at, completed_at, mode, attribute, prefix, dry_run, file_count, id_count, summary_json
	FROM runs WHERE id = ?
	`, id)

	info, err := scanRunInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return info, nil
}

// GetRun rebuilds the run report with the given id, including its files.
// Pipeline state such as source text and diffs is not stored and stays empty.
func (rdb *RunDB) GetRun(ctx context.Context, id string) (*model.RunReport, error) {
	info, err := rdb.GetRunInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	run := &model.RunReport{
		RunID:       info.ID,
		Root:        info.Root,
		StartedAt:   info.StartedAt,
		CompletedAt: info.CompletedAt,
		Mode:        info.Mode,
		Attribute:   info.Attribute,
		Prefix:      info.Prefix,
		DryRun:      info.DryRun,
		Files:       make([]*model.FileReport, 0, info.Files),
	}

	rows, err := rdb.db.QueryContext(ctx, `
	SELECT path, output_path, status, source_hash, output_hash, assignments_json, existing, skipped, error
	FROM file_results
	WHERE run_id = ?
	ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query file results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			f                                     model.FileReport
			status                                string
			outputPath, srcHash, outHash, errText sql.NullString
			assignments                           sql.NullString
		)
		if err := rows.Scan(
			&f.Path,
			&outputPath,
			&status,
			&srcHash,
			&outHash,
			&assignments,
			&f.Existing,
			&f.Skipped,
			&errText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file result: %w", err)
		}

		f.OutputPath = outputPath.String
		f.SourceHash = srcHash.String
		f.OutputHash = outHash.String
		f.Error = errText.String
		f.ProcessedAt = run.StartedAt
		f.SetStatus(model.ParseFileStatus(status))

		if assignments.Valid && assignments.String != "" && assignments.String != "null" {
			if err := json.Unmarshal([]byte(assignments.String), &f.Assignments); err != nil {
				return nil, fmt.Errorf("failed to parse assignments for %s: %w", f.Path, err)
			}
		}

		run.Files = append(run.Files, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return run, nil
}

// LatestRuns returns the ids of the n most recent runs, newest first.
func (rdb *RunDB) LatestRuns(ctx context.Context, n int) ([]string, error) {
	runs, err := rdb.ListRuns(ctx, n)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids, nil
}

// FileHistory returns the stored results for path across runs, newest first.
func (rdb *RunDB) FileHistory(ctx context.Context, path string) ([]FileResult, error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT f.run_id, r.started_at, f.status, f.source_hash, f.output_hash, f.assignments_json
	FROM file_results f
	JOIN runs r ON r.id = f.run_id
	WHERE f.path = ?
	ORDER BY r.started_at DESC, f.id DESC
	`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query file history: %w", err)
	}
	defer rows.Close()

	var results []FileResult
	for rows.Next() {
		var (
			res                               FileResult
			startedAt, status                 string
			srcHash, outHash, assignmentsJSON sql.NullString
		)
		if err := rows.Scan(&res.RunID, &startedAt, &status, &srcHash, &outHash, &assignmentsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan file history: %w", err)
		}
		res.StartedAt = parseTimestamp(startedAt)
		res.Status = model.ParseFileStatus(status)
		res.SourceHash = srcHash.String
		res.OutputHash = outHash.String

		var assignments []model.Assignment
		if assignmentsJSON.Valid && assignmentsJSON.String != "" && assignmentsJSON.String != "null" {
			if err := json.Unmarshal([]byte(assignmentsJSON.String), &assignments); err != nil {
				return nil, fmt.Errorf("failed to parse assignments: %w", err)
			}
		}
		for _, a := range assignments {
			res.IDs = append(res.IDs, a.ID)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// FileResult is one stored outcome of a single file.
type FileResult struct {
	RunID      string
	StartedAt  time.Time
	Status     model.FileStatus
	SourceHash string
	OutputHash string
	IDs        []string
}

// PruneRuns deletes all but the keep most recent runs and returns how many
// were removed. File results go with their run.
func (rdb *RunDB) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := rdb.db.ExecContext(ctx, `
	DELETE FROM runs WHERE id NOT IN (
		SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
	)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

// storedTimeFormat has a fixed width so lexical order matches time order.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// timestampFormats lists formats tried when parsing stored timestamps.
var timestampFormats = []string{
	storedTimeFormat,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// formatTimestamp renders t in UTC. The zero time is stored as an empty
// string.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeFormat)
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
