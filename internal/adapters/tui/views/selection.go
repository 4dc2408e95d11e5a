package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"provmark/internal/adapters/tui/styles"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// SelectionKeyMap defines key bindings for the selection view
type SelectionKeyMap struct {
	Cycle key.Binding
	Back  key.Binding
}

var SelectionKeys = SelectionKeyMap{
	Cycle: key.NewBinding(
		key.WithKeys("tab", "enter", "down", "j"),
		key.WithHelp("tab", "next selection"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// selectionListed caps the rows printed under the stats
const selectionListed = 10

// SelectionModel shows the selection dropdown and the quality scores of
// the selected rows
type SelectionModel struct {
	ViewState
	ws        *application.Workspace
	selection domain.SelectionType
	selected  []int
	rows      []domain.DataRow
	stats     *domain.QualityStats
}

// NewSelectionModel creates the selection view
func NewSelectionModel(ws *application.Workspace) *SelectionModel {
	return &SelectionModel{
		ws:        ws,
		selection: domain.SelectionDefault,
	}
}

// SetSelected sets the rows of the default selection
func (m *SelectionModel) SetSelected(idx []int) {
	m.selected = idx
}

// Selection returns the active selection type
func (m *SelectionModel) Selection() domain.SelectionType {
	return m.selection
}

// Init loads the selection
func (m *SelectionModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh resolves the selection and its score summaries
func (m *SelectionModel) Refresh() {
	ctx := context.Background()
	res, err := commands.NewSelectRowsCommand(m.ws, m.selection, m.selected).Execute(ctx)
	if err != nil {
		m.Fail(err)
		return
	}
	m.rows = res.Rows

	st, err := commands.NewQualityStatsCommand(m.ws, m.selection, m.selected).Execute(ctx)
	if err != nil {
		m.Fail(err)
		return
	}
	m.stats = st
}

// Update handles messages for the selection view
func (m *SelectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case WorkspaceChangedMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SelectionKeys.Back):
			return m, switchTo(SwitchToTableMsg{})
		case key.Matches(msg, SelectionKeys.Cycle):
			m.selection = m.selection.Next()
			m.Refresh()
		}
	}
	return m, nil
}

// View renders the dropdown and the stats
func (m *SelectionModel) View() string {
	v := NewViewBuilder()
	v.Title("Selection")
	v.Raw(m.renderDropdown())
	v.BlankLine()
	v.BlankLine()

	if m.stats == nil || m.stats.Rows == 0 {
		v.Muted("No rows in this selection.")
	} else {
		v.Raw(m.renderStats())
		v.BlankLine()
		v.BlankLine()
		high := m.ws.Quality.HighQualityIndices()
		low := m.ws.Quality.LowQualityIndices()
		for i, r := range m.rows {
			if i == selectionListed {
				v.Muted(fmt.Sprintf("… %d more", len(m.rows)-selectionListed))
				break
			}
			v.Line(fmt.Sprintf("%6d %s %s", r.Idx, RenderMark(high.Has(r.Idx), low.Has(r.Idx)), Truncate(r.Text, m.TextWidth(20))))
		}
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(SelectionKeys.Cycle, SelectionKeys.Back)
	return v.String()
}

func (m *SelectionModel) renderDropdown() string {
	var lines []string
	for _, st := range domain.SelectionTypes {
		if st == m.selection {
			lines = append(lines, styles.RowSelected.Render("▸ "+st.Label()))
		} else {
			lines = append(lines, "  "+st.Label())
		}
	}
	return styles.Dropdown.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *SelectionModel) renderStats() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorder).
		Headers("score", "mean", "median", "sd")

	for _, line := range []struct {
		name string
		s    domain.ScoreSummary
	}{
		{"alignment", m.stats.Alignment},
		{"fluency", m.stats.Fluency},
		{"grammaticality", m.stats.Grammaticality},
	} {
		t.Row(line.name, RenderScore(line.s.Mean), RenderScore(line.s.Median), fmt.Sprintf("%.2f", line.s.StdDev))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return styles.TableHeader
		}
		return styles.TableCell
	})

	return RenderLabelValue("Rows", fmt.Sprintf("%d", m.stats.Rows)) + "\n" + t.Render()
}
