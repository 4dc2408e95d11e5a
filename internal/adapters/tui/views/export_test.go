package views

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportModel_WritesRows(t *testing.T) {
	ws := newTestWorkspace(t)
	markHigh(t, ws, 0)

	path := filepath.Join(t.TempDir(), "out.csv")
	m := NewExportModel(ws)
	m.Init()
	m.input.SetValue(path)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, m.MessageErr, m.Message)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "idx,text,label\r\n0,good movie,pos\r\n", string(data))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, OpenEditorMsg{Path: path}, runCmd(cmd))
}

func TestExportModel_OpenBeforeWrite(t *testing.T) {
	m := NewExportModel(newTestWorkspace(t))
	m.Init()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Nil(t, cmd)
	assert.True(t, m.MessageErr)
}

func TestExportModel_TargetsAndClipboard(t *testing.T) {
	ws := newTestWorkspace(t)
	markHigh(t, ws, 2)

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := NewExportModel(ws)
	m.Init()
	assert.Equal(t, ExportRows, m.Target())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ExportTransforms, m.Target())

	// no transform is marked yet, only the header is copied
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "transform,high_quality\r\n", copied)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ExportRows, m.Target())
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "idx,text,label\r\n2,\"fine, movie\",pos\r\n", copied)
}

func TestExportModel_ClipboardError(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no display") }
	t.Cleanup(func() { writeClipboard = orig })

	m := NewExportModel(newTestWorkspace(t))
	m.Init()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.True(t, m.MessageErr)
	assert.Contains(t, m.Message, "no display")
}

func TestExportModel_EmptyFileName(t *testing.T) {
	m := NewExportModel(newTestWorkspace(t))
	m.Init()
	m.input.SetValue("  ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.MessageErr)
}
