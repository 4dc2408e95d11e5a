package views

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"provmark/internal/adapters/tui/styles"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// ExportKeyMap defines key bindings for the export view
type ExportKeyMap struct {
	Write  key.Binding
	Target key.Binding
	Copy   key.Binding
	Open   key.Binding
	Cancel key.Binding
}

var ExportKeys = ExportKeyMap{
	Write: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "write file"),
	),
	Target: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "rows/transforms/features"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open in editor"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// ExportTarget is what the export view writes
type ExportTarget int

const (
	ExportRows ExportTarget = iota
	ExportTransforms
	ExportFeatures
)

func (t ExportTarget) String() string {
	switch t {
	case ExportTransforms:
		return "high-quality transforms"
	case ExportFeatures:
		return "high-quality features"
	default:
		return "high-quality rows"
	}
}

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// ExportModel writes the curated rows or categories to a CSV file
type ExportModel struct {
	ViewState
	ws      *application.Workspace
	input   textinput.Model
	target  ExportTarget
	written string
}

// NewExportModel creates the export view
func NewExportModel(ws *application.Workspace) *ExportModel {
	input := textinput.New()
	input.Placeholder = commands.DefaultExportFile
	input.SetValue(commands.DefaultExportFile)
	input.CharLimit = 255
	return &ExportModel{
		ws:    ws,
		input: input,
	}
}

// Init focuses the file name input
func (m *ExportModel) Init() tea.Cmd {
	m.ClearMessage()
	m.input.Focus()
	return textinput.Blink
}

// Target returns the selected export target
func (m *ExportModel) Target() ExportTarget {
	return m.target
}

// Update handles messages for the export view
func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ExportKeys.Cancel):
			m.input.Blur()
			return m, switchTo(SwitchToTableMsg{})
		case key.Matches(msg, ExportKeys.Target):
			m.target = (m.target + 1) % 3
			return m, nil
		case key.Matches(msg, ExportKeys.Write):
			m.writeFile()
			return m, nil
		case key.Matches(msg, ExportKeys.Copy):
			m.copyToClipboard()
			return m, nil
		case key.Matches(msg, ExportKeys.Open):
			if m.written == "" {
				m.SetMessage("Write the file first", true)
				return m, nil
			}
			return m, switchTo(OpenEditorMsg{Path: m.written})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ExportModel) export(ctx context.Context, buf *bytes.Buffer) (*commands.ExportResult, error) {
	switch m.target {
	case ExportTransforms:
		return commands.NewExportCategoriesCommand(m.ws, domain.NamespaceTransform, buf).Execute(ctx)
	case ExportFeatures:
		return commands.NewExportCategoriesCommand(m.ws, domain.NamespaceFeature, buf).Execute(ctx)
	default:
		return commands.NewExportRowsCommand(m.ws, buf).Execute(ctx)
	}
}

func (m *ExportModel) writeFile() {
	path := strings.TrimSpace(m.input.Value())
	if err := application.ValidateRequired("outputPath", path); err != nil {
		m.Fail(err)
		return
	}

	var buf bytes.Buffer
	res, err := m.export(context.Background(), &buf)
	if err != nil {
		m.Fail(err)
		return
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		m.SetMessage(fmt.Sprintf("failed to write %s: %v", path, err), true)
		return
	}
	m.written = path
	m.ws.Logger.Info("export written", "path", path, "target", m.target.String(), "rows", res.Rows)
	m.SetMessage(fmt.Sprintf("%s to %s", res.Message, path), false)
}

func (m *ExportModel) copyToClipboard() {
	var buf bytes.Buffer
	res, err := m.export(context.Background(), &buf)
	if err != nil {
		m.Fail(err)
		return
	}
	if err := writeClipboard(buf.String()); err != nil {
		m.SetMessage("clipboard unavailable: "+err.Error(), true)
		return
	}
	m.SetMessage(fmt.Sprintf("Copied %d entries to the clipboard", res.Rows), false)
}

// View renders the export form
func (m *ExportModel) View() string {
	v := NewViewBuilder()
	v.Title("Export")
	v.Line(RenderLabelValue("Export", m.target.String()))
	v.BlankLine()
	v.Line(styles.InputLabel.Render("File"))
	v.Line(styles.InputField.Render(m.input.View()))
	if m.written != "" {
		v.Muted("Last written: " + m.written)
	}
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(ExportKeys.Write, ExportKeys.Target, ExportKeys.Copy, ExportKeys.Open, ExportKeys.Cancel)
	return v.String()
}
