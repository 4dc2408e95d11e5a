package commands

import (
	"context"
	"fmt"

	"provmark/internal/application"
	"provmark/internal/domain"
	"provmark/internal/ports"
)

// LoadDatasetResult contains the result of loading a dataset
type LoadDatasetResult struct {
	Source   string
	Rows     int
	Imported bool // False when rows came from an up-to-date cache
	Stats    *domain.ImportStats
	Message  string
}

// LoadDatasetCommand reads a dataset into the workspace, going through the
// store cache when one is configured. Loading clears every mark.
type LoadDatasetCommand struct {
	ws     *application.Workspace
	source ports.DatasetSource
	store  ports.DatasetStore
	Force  bool // Reimport even when the cache is current
}

// NewLoadDatasetCommand creates a new LoadDatasetCommand. store may be nil.
func NewLoadDatasetCommand(ws *application.Workspace, source ports.DatasetSource, store ports.DatasetStore) *LoadDatasetCommand {
	return &LoadDatasetCommand{ws: ws, source: source, store: store}
}

// Validate checks a source is configured
func (c *LoadDatasetCommand) Validate() error {
	if c.source == nil {
		return &application.ValidationError{Field: "sourcePath", Message: "source path is required"}
	}
	return application.ValidateRequired("sourcePath", c.source.Path())
}

// Execute runs the load
func (c *LoadDatasetCommand) Execute(ctx context.Context) (*LoadDatasetResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	path := c.source.Path()

	if c.store == nil {
		rows, stats, err := c.source.ReadRows(ctx)
		if err != nil {
			return nil, &application.ImportError{Path: path, Reason: "read failed", Err: err}
		}
		c.ws.SetRows(path, rows)
		return &LoadDatasetResult{
			Source:   path,
			Rows:     len(rows),
			Imported: true,
			Stats:    stats,
			Message:  fmt.Sprintf("Loaded %d rows from %s", len(rows), path),
		}, nil
	}

	fp, err := c.source.Fingerprint()
	if err != nil {
		return nil, &application.ImportError{Path: path, Reason: "fingerprint failed", Err: err}
	}

	needs := c.Force
	if !needs {
		needs, err = c.store.NeedsImport(ctx, fp)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache: %w", err)
		}
	}

	res := &LoadDatasetResult{Source: path}
	if needs {
		rows, readStats, err := c.source.ReadRows(ctx)
		if err != nil {
			return nil, &application.ImportError{Path: path, Reason: "read failed", Err: err}
		}
		stats, err := c.store.Import(ctx, fp, rows)
		if err != nil {
			return nil, &application.ImportError{Path: path, Reason: "store failed", Err: err}
		}
		if readStats != nil {
			stats.RowsRead = readStats.RowsRead
			stats.RowsSkipped += readStats.RowsSkipped
		}
		res.Imported = true
		res.Stats = stats
		c.ws.Logger.Info("dataset imported", "source", path,
			"rows", stats.RowsImported, "skipped", stats.RowsSkipped, "duration", stats.Duration)
	}

	rows, err := c.store.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached rows: %w", err)
	}
	c.ws.SetRows(path, rows)

	res.Rows = len(rows)
	if res.Imported {
		res.Message = fmt.Sprintf("Imported %d rows from %s", len(rows), path)
	} else {
		res.Message = fmt.Sprintf("Loaded %d cached rows for %s", len(rows), path)
	}
	return res, nil
}
