package commands

import (
	"context"
	"testing"

	"provmark/internal/application"
	"provmark/internal/domain"
)

// fixtureRows: transforms [1 0], [0 1], [1 1]; features [0 1], [0 0], [1 1]
func fixtureRows() []domain.DataRow {
	return []domain.DataRow{
		{ID: "r0", Idx: 0, Text: "good movie", Label: "pos", Transforms: "[1 0]", Features: "[0 1]", Diff: "d0", OldSentence: "o0", Alignment: 0.9, Fluency: 0.8, Grammaticality: 1},
		{ID: "r1", Idx: 1, Text: "bad movie", Label: "neg", Transforms: "[0 1]", Features: "[0 0]", Diff: "d1", OldSentence: "o1", Alignment: 0.5, Fluency: 0.4, Grammaticality: 0.6},
		{ID: "r2", Idx: 2, Text: "fine, movie", Label: "pos", Transforms: "[1 1]", Features: "[1 1]", Diff: "d2", OldSentence: "o2", Alignment: 0.7, Fluency: 0.6, Grammaticality: 0.8},
	}
}

func newTestWorkspace(t *testing.T) *application.Workspace {
	t.Helper()
	ws := application.NewWorkspace(application.WorkspaceOptions{Policy: domain.PolicyExclusive})
	ws.SetRows("fixture", fixtureRows())
	return ws
}

func markHigh(t *testing.T, ws *application.Workspace, idx int, status bool) *ToggleResult {
	t.Helper()
	res, err := NewToggleHighQualityCommand(ws, idx, status).Execute(context.Background())
	if err != nil {
		t.Fatalf("toggle high %d: %v", idx, err)
	}
	return res
}
