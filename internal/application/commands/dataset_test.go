package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/application"
	"provmark/internal/domain"
	"provmark/internal/ports"
)

type fakeSource struct {
	path  string
	fp    string
	rows  []domain.DataRow
	err   error
	reads int
}

func (s *fakeSource) Path() string                 { return s.path }
func (s *fakeSource) Fingerprint() (string, error) { return s.fp, nil }

func (s *fakeSource) ReadRows(ctx context.Context) ([]domain.DataRow, *domain.ImportStats, error) {
	s.reads++
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.rows, &domain.ImportStats{Source: s.path, RowsRead: len(s.rows) + 1, RowsSkipped: 1}, nil
}

type fakeStore struct {
	fp   string
	rows []domain.DataRow
}

func (s *fakeStore) Open(string) error { return nil }
func (s *fakeStore) Close() error      { return nil }

func (s *fakeStore) NeedsImport(ctx context.Context, fp string) (bool, error) {
	return s.fp != fp, nil
}

func (s *fakeStore) Import(ctx context.Context, fp string, rows []domain.DataRow) (*domain.ImportStats, error) {
	s.fp = fp
	s.rows = rows
	return &domain.ImportStats{RowsImported: len(rows)}, nil
}

func (s *fakeStore) LoadRows(ctx context.Context) ([]domain.DataRow, error) { return s.rows, nil }
func (s *fakeStore) CountRows(ctx context.Context) (int, error)             { return len(s.rows), nil }

func (s *fakeStore) BeginTx(ctx context.Context) (ports.DatasetTx, error) {
	return nil, errors.New("not supported")
}

func TestLoadDatasetCommand_WithoutStore(t *testing.T) {
	ws := application.NewWorkspace(application.WorkspaceOptions{})
	ws.SetRows("old", []domain.DataRow{{Idx: 9}})
	ws.Quality.MarkHighQuality(9)

	src := &fakeSource{path: "data.csv", rows: fixtureRows()}
	res, err := NewLoadDatasetCommand(ws, src, nil).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Imported)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, "data.csv", ws.Source())
	assert.Zero(t, ws.Quality.HighQualityIndices().Len(), "marks cleared on dataset switch")
}

func TestLoadDatasetCommand_UsesCache(t *testing.T) {
	ws := application.NewWorkspace(application.WorkspaceOptions{})
	src := &fakeSource{path: "data.csv", fp: "v1", rows: fixtureRows()}
	store := &fakeStore{}
	ctx := context.Background()

	res, err := NewLoadDatasetCommand(ws, src, store).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Imported)
	assert.Equal(t, 4, res.Stats.RowsRead)
	assert.Equal(t, 1, res.Stats.RowsSkipped)
	assert.Equal(t, 1, src.reads)

	res, err = NewLoadDatasetCommand(ws, src, store).Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Imported)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, 1, src.reads, "cache hit must not reread the source")

	cmd := NewLoadDatasetCommand(ws, src, store)
	cmd.Force = true
	_, err = cmd.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.reads)
}

func TestLoadDatasetCommand_ReadError(t *testing.T) {
	ws := application.NewWorkspace(application.WorkspaceOptions{})
	src := &fakeSource{path: "broken.csv", err: errors.New("bad header")}

	_, err := NewLoadDatasetCommand(ws, src, nil).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrImportFailed)
	assert.ErrorContains(t, err, "bad header")
	assert.False(t, ws.HasDataset())
}

func TestLoadDatasetCommand_Validate(t *testing.T) {
	ws := application.NewWorkspace(application.WorkspaceOptions{})

	err := NewLoadDatasetCommand(ws, nil, nil).Validate()
	var valErr *application.ValidationError
	assert.ErrorAs(t, err, &valErr)

	err = NewLoadDatasetCommand(ws, &fakeSource{path: "  "}, nil).Validate()
	assert.ErrorAs(t, err, &valErr)
}
