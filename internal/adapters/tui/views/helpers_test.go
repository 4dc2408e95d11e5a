package views

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

func fixtureRows() []domain.DataRow {
	return []domain.DataRow{
		{ID: "r0", Idx: 0, Text: "good movie", Label: "pos", Transforms: "[1 0]", Features: "[0 1]", Diff: "<del>great</del> <ins>good</ins> movie", OldSentence: "great movie", Alignment: 0.9, Fluency: 0.8, Grammaticality: 1},
		{ID: "r1", Idx: 1, Text: "bad movie", Label: "neg", Transforms: "[0 1]", Features: "[0 0]", Alignment: 0.5, Fluency: 0.4, Grammaticality: 0.6},
		{ID: "r2", Idx: 2, Text: "fine, movie", Label: "pos", Transforms: "[1 1]", Features: "[1 1]", Alignment: 0.7, Fluency: 0.6, Grammaticality: 0.8},
	}
}

func newTestWorkspace(t *testing.T) *application.Workspace {
	t.Helper()
	ws := application.NewWorkspace(application.WorkspaceOptions{Policy: domain.PolicyExclusive})
	ws.SetRows("fixture.csv", fixtureRows())
	return ws
}

func markHigh(t *testing.T, ws *application.Workspace, idx int) {
	t.Helper()
	_, err := commands.NewToggleHighQualityCommand(ws, idx, true).Execute(context.Background())
	require.NoError(t, err)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and returns its message, nil for a nil cmd
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
