package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/domain"
)

func TestSelectionModel_CyclesSelections(t *testing.T) {
	ws := newTestWorkspace(t)
	markHigh(t, ws, 0)

	m := NewSelectionModel(ws)
	m.SetSelected([]int{1})
	m.Init()

	require.NotNil(t, m.stats)
	assert.Equal(t, domain.SelectionDefault, m.Selection())
	assert.Equal(t, 1, m.stats.Rows)
	assert.InDelta(t, 0.5, m.stats.Alignment.Mean, 1e-9)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SelectionHighQuality, m.Selection())
	assert.Equal(t, 1, m.stats.Rows)
	assert.InDelta(t, 0.9, m.stats.Alignment.Mean, 1e-9)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SelectionLowQuality, m.Selection())
	assert.Equal(t, 0, m.stats.Rows)
	assert.Contains(t, m.View(), "No rows in this selection.")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SelectionDefault, m.Selection())
}

func TestSelectionModel_View(t *testing.T) {
	ws := newTestWorkspace(t)
	m := NewSelectionModel(ws)
	m.SetSelected([]int{0, 2})
	m.Init()

	view := m.View()
	assert.Contains(t, view, "default")
	assert.Contains(t, view, "alignment")
	assert.Contains(t, view, "fine, movie")
}
