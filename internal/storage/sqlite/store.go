// Package sqlite provides a SQLite-backed entry log.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/storage"
	"github.com/gildedernacht/olymp/internal/storage/sqlite/migrations"
)

// Storage persists entries in a single SQLite table
type Storage struct {
	sqlDB *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite entry log and applies the embedded schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single connection: sequence assignment must not interleave
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{sqlDB: sqlDB}, nil
}

func applyMigrations(sqlDB *sql.DB) error {
	files, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return err
	}
	slices.Sort(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}
	return nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Storage) AppendEntry(ctx context.Context, entry *model.StoredEntry) error {
	row := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO entries (
		   resource_uid,
		   entry_uid,
		   sequence,
		   created_at,
		   public_body,
		   private_body,
		   meta_url,
		   meta_user_agent
		 )
		 SELECT ?, ?, COALESCE(MAX(sequence), 0) + 1, ?, ?, ?, ?, ?
		 FROM entries WHERE resource_uid = ?
		 RETURNING sequence`,
		entry.ResourceUID,
		entry.EntryUID,
		toMillis(entry.Timestamp),
		string(entry.PublicBody),
		string(entry.PrivateBody),
		entry.Meta.URL,
		entry.Meta.UserAgent,
		entry.ResourceUID,
	)
	if err := row.Scan(&entry.Sequence); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

const selectEntry = `SELECT resource_uid, entry_uid, sequence, created_at, public_body, private_body, meta_url, meta_user_agent FROM entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (model.StoredEntry, error) {
	var (
		e         model.StoredEntry
		createdAt int64
		public    string
		private   string
	)
	err := row.Scan(&e.ResourceUID, &e.EntryUID, &e.Sequence, &createdAt, &public, &private, &e.Meta.URL, &e.Meta.UserAgent)
	if err != nil {
		return model.StoredEntry{}, err
	}
	e.Timestamp = fromMillis(createdAt)
	e.PublicBody = []byte(public)
	e.PrivateBody = []byte(private)
	return e, nil
}

func (s *Storage) ListEntries(ctx context.Context, resourceUID string) ([]model.StoredEntry, error) {
	rows, err := s.sqlDB.QueryContext(ctx, selectEntry+` WHERE resource_uid = ? ORDER BY sequence`, resourceUID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []model.StoredEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Storage) GetEntry(ctx context.Context, resourceUID, entryUID string) (*model.StoredEntry, error) {
	row := s.sqlDB.QueryRowContext(ctx, selectEntry+` WHERE resource_uid = ? AND entry_uid = ?`, resourceUID, entryUID)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func (s *Storage) ListResources(ctx context.Context) ([]model.ResourceSummary, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT resource_uid, COUNT(*), MAX(sequence), MAX(created_at)
		 FROM entries
		 GROUP BY resource_uid
		 ORDER BY resource_uid`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	summaries := []model.ResourceSummary{}
	for rows.Next() {
		var (
			summary   model.ResourceSummary
			updatedAt int64
		)
		if err := rows.Scan(&summary.ResourceUID, &summary.Entries, &summary.LastSequence, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		summary.UpdatedAt = fromMillis(updatedAt)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
