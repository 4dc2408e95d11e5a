package application

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"provmark/internal/application/services"
	"provmark/internal/domain"
)

// Workspace is the review session shared by every adapter: the two
// services, the loaded dataset and the notifier that announces changes.
type Workspace struct {
	Quality  *services.QualityMarkService
	Similar  *services.FilterBySimilarDataService
	Notifier *services.Notifier
	Vocab    domain.Vocabulary
	Logger   *slog.Logger

	cmdMu sync.Mutex

	dataMu sync.RWMutex
	source string
	rows   []domain.DataRow
	byIdx  map[int]domain.DataRow
}

// WorkspaceOptions configures NewWorkspace
type WorkspaceOptions struct {
	Policy domain.MarkPolicy
	Vocab  *domain.Vocabulary
	Logger *slog.Logger
}

// NewWorkspace creates an empty workspace
func NewWorkspace(opts WorkspaceOptions) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	vocab := domain.DefaultVocabulary()
	if opts.Vocab != nil {
		vocab = *opts.Vocab
	}

	n := services.NewNotifier()
	return &Workspace{
		Quality:  services.NewQualityMarkService(opts.Policy, n),
		Similar:  services.NewFilterBySimilarDataService(n),
		Notifier: n,
		Vocab:    vocab,
		Logger:   logger,
		byIdx:    map[int]domain.DataRow{},
	}
}

// Exclusive runs fn while holding the command lock. Multi-step mutations
// (mark, recompute, cascade) go through it so they never interleave.
func (w *Workspace) Exclusive(fn func() error) error {
	w.cmdMu.Lock()
	defer w.cmdMu.Unlock()
	return fn()
}

// SetRows replaces the dataset and clears every mark and category index
func (w *Workspace) SetRows(source string, rows []domain.DataRow) {
	w.cmdMu.Lock()
	defer w.cmdMu.Unlock()

	w.dataMu.Lock()
	w.source = source
	w.rows = slices.Clone(rows)
	w.byIdx = domain.RowsByIdx(rows)
	w.dataMu.Unlock()

	w.Quality.ClearAllData()
	w.Similar.ClearAllData()
	w.Notifier.Publish(services.TopicDataset)

	w.Logger.Info("dataset loaded", "source", source, "rows", len(rows))
}

// Rows returns the dataset in its original order. The slice is shared;
// callers must not modify it.
func (w *Workspace) Rows() []domain.DataRow {
	w.dataMu.RLock()
	defer w.dataMu.RUnlock()
	return w.rows
}

// Row looks up a row by dataset index
func (w *Workspace) Row(idx int) (domain.DataRow, bool) {
	w.dataMu.RLock()
	defer w.dataMu.RUnlock()
	r, ok := w.byIdx[idx]
	return r, ok
}

// Source names where the current dataset came from
func (w *Workspace) Source() string {
	w.dataMu.RLock()
	defer w.dataMu.RUnlock()
	return w.source
}

// HasDataset reports whether any rows are loaded
func (w *Workspace) HasDataset() bool {
	w.dataMu.RLock()
	defer w.dataMu.RUnlock()
	return len(w.rows) > 0
}

// RequireDataset returns ErrNoDataset when nothing is loaded
func (w *Workspace) RequireDataset() error {
	if !w.HasDataset() {
		return ErrNoDataset
	}
	return nil
}

// RowsAt resolves dataset indices to rows in ascending index order,
// skipping indices without a row
func (w *Workspace) RowsAt(indices domain.IndexSet) []domain.DataRow {
	w.dataMu.RLock()
	defer w.dataMu.RUnlock()
	out := make([]domain.DataRow, 0, indices.Len())
	for _, i := range indices.Sorted() {
		if r, ok := w.byIdx[i]; ok {
			out = append(out, r)
		}
	}
	return out
}
