package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"provmark/internal/domain"
	"provmark/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.DatasetStore using SQLite
type Store struct {
	db     *sqlx.DB
	dbPath string
}

// Ensure Store implements DatasetStore
var _ ports.DatasetStore = (*Store)(nil)

// NewStore creates a new SQLite store
func NewStore() *Store {
	return &Store{}
}

// Open opens (creating if needed) the database file at dbPath
func (s *Store) Open(dbPath string) error {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return err
	}
	s.dbPath = dbPath

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	// WAL lets the TUI read while an import runs in another process
	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS rows (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			text TEXT NOT NULL,
			label TEXT NOT NULL,
			transforms TEXT NOT NULL,
			features TEXT NOT NULL,
			old_sentence TEXT NOT NULL,
			diff TEXT NOT NULL,
			alignment REAL NOT NULL,
			fluency REAL NOT NULL,
			grammaticality REAL NOT NULL,
			extra TEXT
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rows_idx ON rows(idx);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (s *Store) Path() string {
	return s.dbPath
}

// NeedsImport returns true if the cache was built by another schema or
// from other content
func (s *Store) NeedsImport(ctx context.Context, fingerprint string) (bool, error) {
	version, err := s.meta(ctx, "schema_version")
	if err != nil {
		return false, err
	}
	fp, err := s.meta(ctx, "fingerprint")
	if err != nil {
		return false, err
	}
	return version != schemaVersion || fp != fingerprint, nil
}

func (s *Store) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM meta WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

// rowRecord is the stored shape of a domain.DataRow
type rowRecord struct {
	Position       int64          `db:"position"`
	ID             string         `db:"id"`
	Idx            int            `db:"idx"`
	Text           string         `db:"text"`
	Label          string         `db:"label"`
	Transforms     string         `db:"transforms"`
	Features       string         `db:"features"`
	OldSentence    string         `db:"old_sentence"`
	Diff           string         `db:"diff"`
	Alignment      float64        `db:"alignment"`
	Fluency        float64        `db:"fluency"`
	Grammaticality float64        `db:"grammaticality"`
	Extra          sql.NullString `db:"extra"`
}

func (r rowRecord) toDomain() (domain.DataRow, error) {
	row := domain.DataRow{
		ID:             r.ID,
		Idx:            r.Idx,
		Text:           r.Text,
		Label:          r.Label,
		Transforms:     r.Transforms,
		Features:       r.Features,
		OldSentence:    r.OldSentence,
		Diff:           r.Diff,
		Alignment:      r.Alignment,
		Fluency:        r.Fluency,
		Grammaticality: r.Grammaticality,
	}
	if r.Extra.Valid && r.Extra.String != "" {
		if err := json.Unmarshal([]byte(r.Extra.String), &row.Extra); err != nil {
			return domain.DataRow{}, fmt.Errorf("row %d: failed to decode extra columns: %w", r.Idx, err)
		}
	}
	return row, nil
}

// LoadRows returns every cached row in file order
func (s *Store) LoadRows(ctx context.Context) ([]domain.DataRow, error) {
	var records []rowRecord
	err := s.db.SelectContext(ctx, &records, `
		SELECT position, id, idx, text, label, transforms, features,
		       old_sentence, diff, alignment, fluency, grammaticality, extra
		FROM rows ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}

	rows := make([]domain.DataRow, 0, len(records))
	for _, rec := range records {
		row, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CountRows returns the number of cached rows
func (s *Store) CountRows(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM rows`); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Import replaces the cached rows and records the fingerprint atomically
func (s *Store) Import(ctx context.Context, fingerprint string, rows []domain.DataRow) (*domain.ImportStats, error) {
	start := time.Now()
	stats := &domain.ImportStats{RowsRead: len(rows)}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := tx.DeleteRows(); err != nil {
		return nil, fmt.Errorf("failed to clear rows: %w", err)
	}
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := tx.InsertRow(&rows[i]); err != nil {
			return nil, fmt.Errorf("failed to insert row %d: %w", rows[i].Idx, err)
		}
		stats.RowsImported++
	}
	if err := tx.SetFingerprint(fingerprint); err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// DefaultPath returns the cache location for a dataset file
func DefaultPath(datasetPath string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	if abs, err := filepath.Abs(datasetPath); err == nil {
		datasetPath = abs
	}
	return filepath.Join(dataHome, "provmark", hashPath(datasetPath)+".db")
}

// hashPath returns a short hash of a path
func hashPath(path string) string {
	h := sha256.Sum256([]byte(path))
	return hex.EncodeToString(h[:8])
}

func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
