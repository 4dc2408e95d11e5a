package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provmark/internal/domain"
)

func TestProvenanceModel_ListsCommonCategories(t *testing.T) {
	ws := newTestWorkspace(t)
	m := NewProvenanceModel(ws, domain.NamespaceTransform)
	m.Init()
	assert.Empty(t, m.entries)
	assert.Contains(t, m.View(), "No common transforms")

	markHigh(t, ws, 2)
	m.Update(WorkspaceChangedMsg{})
	require.Len(t, m.entries, 2)
	assert.Equal(t, "AddNeutralEmoji", m.entries[0].Name)
	assert.Equal(t, 2, m.entries[0].RowCount)
}

func TestProvenanceModel_EnterCascadesHighMark(t *testing.T) {
	ws := newTestWorkspace(t)
	markHigh(t, ws, 2)

	m := NewProvenanceModel(ws, domain.NamespaceTransform)
	m.Init()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, ws.Quality.HighQualityTransforms().Has(0))
	assert.True(t, ws.Quality.HighQualityIndices().Has(0))
	assert.False(t, m.MessageErr)
	assert.Contains(t, m.Message, "AddNeutralEmoji")

	entry, ok := m.Current()
	require.True(t, ok)
	assert.True(t, entry.HighQuality)
}

func TestProvenanceModel_LowToggle(t *testing.T) {
	ws := newTestWorkspace(t)
	markHigh(t, ws, 2)

	m := NewProvenanceModel(ws, domain.NamespaceFeature)
	m.Init()
	m.Update(keyRunes("j"))
	m.Update(keyRunes("x"))
	assert.True(t, ws.Quality.LowQualityFeatures().Has(1))

	m.Update(keyRunes("x"))
	assert.False(t, ws.Quality.LowQualityFeatures().Has(1))
}

func TestProvenanceModel_Back(t *testing.T) {
	m := NewProvenanceModel(newTestWorkspace(t), domain.NamespaceFeature)
	m.Init()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SwitchToTableMsg{}, runCmd(cmd))
}
