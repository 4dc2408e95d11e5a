package ports

import (
	"context"

	"provmark/internal/domain"
)

// DatasetSource reads an augmented dataset from its original file
type DatasetSource interface {
	// Path returns the location rows are read from
	Path() string

	// Fingerprint identifies the current content of the source. It changes
	// whenever the file changes.
	Fingerprint() (string, error)

	// ReadRows parses every row of the source, in file order
	ReadRows(ctx context.Context) ([]domain.DataRow, *domain.ImportStats, error)
}

// DatasetStore caches imported rows so large datasets open without a reparse
type DatasetStore interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// NeedsImport reports whether the cached rows belong to another
	// fingerprint (or the cache is empty or outdated)
	NeedsImport(ctx context.Context, fingerprint string) (bool, error)

	// Import replaces all cached rows in one transaction
	Import(ctx context.Context, fingerprint string, rows []domain.DataRow) (*domain.ImportStats, error)

	// Queries
	LoadRows(ctx context.Context) ([]domain.DataRow, error)
	CountRows(ctx context.Context) (int, error)

	BeginTx(ctx context.Context) (DatasetTx, error)
}

// DatasetTx represents a transaction for atomic cache updates
type DatasetTx interface {
	DeleteRows() error
	InsertRow(row *domain.DataRow) error
	SetFingerprint(fingerprint string) error

	// Transaction control
	Commit() error
	Rollback() error
}
