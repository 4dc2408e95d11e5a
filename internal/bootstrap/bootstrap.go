// Package bootstrap assembles a workspace from configuration for the
// provmark binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"provmark/internal/adapters/datafile"
	"provmark/internal/adapters/sqlite"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/config"
	"provmark/internal/ports"
)

// Options selects the dataset and its cache
type Options struct {
	Dataset   string
	Store     string // Cache file; empty derives one from Dataset
	NoCache   bool
	Reimport  bool
	VocabPath string
}

// NewWorkspace builds a workspace with the configured policy and vocabulary
func NewWorkspace(logger *slog.Logger, vocabPath string) (*application.Workspace, error) {
	policy, err := config.MarkPolicy()
	if err != nil {
		return nil, err
	}
	vocab, err := config.LoadVocabulary(vocabPath)
	if err != nil {
		return nil, err
	}
	return application.NewWorkspace(application.WorkspaceOptions{
		Policy: policy,
		Vocab:  &vocab,
		Logger: logger,
	}), nil
}

// LoadDataset reads opts.Dataset into ws, going through the SQLite cache
// unless NoCache is set
func LoadDataset(ctx context.Context, ws *application.Workspace, opts Options) (*commands.LoadDatasetResult, error) {
	if err := application.ValidateRequired("sourcePath", opts.Dataset); err != nil {
		return nil, err
	}
	source := datafile.NewReader(opts.Dataset, ws.Vocab, ws.Logger)

	var store ports.DatasetStore
	if !opts.NoCache {
		path := opts.Store
		if path == "" {
			path = sqlite.DefaultPath(opts.Dataset)
		}
		s := sqlite.NewStore()
		if err := s.Open(path); err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		defer s.Close()
		store = s
	}

	cmd := commands.NewLoadDatasetCommand(ws, source, store)
	cmd.Force = opts.Reimport
	return cmd.Execute(ctx)
}
