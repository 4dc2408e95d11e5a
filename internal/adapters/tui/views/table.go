package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"provmark/internal/adapters/tui/styles"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// TableKeyMap defines key bindings for the inspection table
type TableKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	High       key.Binding
	Low        key.Binding
	Similar    key.Binding
	Detail     key.Binding
	Transforms key.Binding
	Features   key.Binding
	Selection  key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var TableKeys = TableKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	High: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "good"),
	),
	Low: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bad"),
	),
	Similar: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort similar"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter", "d"),
		key.WithHelp("enter", "diff"),
	),
	Transforms: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "transforms"),
	),
	Features: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "features"),
	),
	Selection: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "selection"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tableChrome is the number of lines around the rows: title, header,
// detail pane, status and help
const tableChrome = 14

// TableModel is the paginated inspection table
type TableModel struct {
	ViewState
	ws        *application.Workspace
	pager     *Paginator
	rows      []domain.DataRow
	scores    map[int]int
	similar   bool
	detail    bool
	inspected string
}

// NewTableModel creates the inspection table for ws
func NewTableModel(ws *application.Workspace) *TableModel {
	return &TableModel{
		ws:    ws,
		pager: NewPaginator(20),
	}
}

// Init loads the rows
func (m *TableModel) Init() tea.Cmd {
	m.Refresh()
	return nil
}

// Refresh re-reads the rows, the similarity ranking and the inspected count.
// The cursor stays on the same dataset row when it is still listed.
func (m *TableModel) Refresh() {
	ctx := context.Background()
	current, hasCurrent := m.Current()

	res, err := commands.NewSortRowsCommand(m.ws, m.similar).Execute(ctx)
	if err != nil {
		m.Fail(err)
		return
	}
	m.rows = res.Rows
	m.scores = res.Scores
	m.pager.SetTotal(len(m.rows))

	if hasCurrent {
		for i, r := range m.rows {
			if r.Idx == current.Idx {
				m.pager.SetCursor(i)
				break
			}
		}
	}

	if cnt, err := commands.NewCountInspectedCommand(m.ws).Execute(ctx); err == nil {
		m.inspected = cnt.Message
	}
}

// Current returns the row under the cursor
func (m *TableModel) Current() (domain.DataRow, bool) {
	c := m.pager.Cursor()
	if c < 0 || c >= len(m.rows) {
		return domain.DataRow{}, false
	}
	return m.rows[c], true
}

// SetSize fits the page to the terminal height
func (m *TableModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(max(height-tableChrome, 5))
}

// Update handles messages for the table
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case WorkspaceChangedMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, TableKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, TableKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, TableKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, TableKeys.NextPage):
		m.pager.NextPage()
	case key.Matches(msg, TableKeys.PrevPage):
		m.pager.PrevPage()
	case key.Matches(msg, TableKeys.High):
		m.toggle(domain.QualityHigh)
	case key.Matches(msg, TableKeys.Low):
		m.toggle(domain.QualityLow)
	case key.Matches(msg, TableKeys.Similar):
		m.similar = !m.similar
		m.pager.SetCursor(0)
		m.Refresh()
	case key.Matches(msg, TableKeys.Detail):
		m.detail = !m.detail
	case key.Matches(msg, TableKeys.Transforms):
		return m, switchTo(SwitchToProvenanceMsg{Namespace: domain.NamespaceTransform})
	case key.Matches(msg, TableKeys.Features):
		return m, switchTo(SwitchToProvenanceMsg{Namespace: domain.NamespaceFeature})
	case key.Matches(msg, TableKeys.Selection):
		return m, switchTo(SwitchToSelectionMsg{})
	case key.Matches(msg, TableKeys.Export):
		return m, switchTo(SwitchToExportMsg{})
	case key.Matches(msg, TableKeys.Help):
		return m, switchTo(SwitchToHelpMsg{})
	}
	return m, nil
}

func (m *TableModel) toggle(q domain.Quality) {
	row, ok := m.Current()
	if !ok {
		return
	}
	m.ClearMessage()
	ctx := context.Background()

	var err error
	if q == domain.QualityHigh {
		status := !m.ws.Quality.HighQualityIndices().Has(row.Idx)
		_, err = commands.NewToggleHighQualityCommand(m.ws, row.Idx, status).Execute(ctx)
	} else {
		status := !m.ws.Quality.LowQualityIndices().Has(row.Idx)
		_, err = commands.NewToggleLowQualityCommand(m.ws, row.Idx, status).Execute(ctx)
	}
	if err != nil {
		m.Fail(err)
		return
	}
	m.Refresh()
}

// View renders the table
func (m *TableModel) View() string {
	v := NewViewBuilder()
	title := "provmark"
	if src := m.ws.Source(); src != "" {
		title += " · " + src
	}
	v.Title(title)

	if len(m.rows) == 0 {
		v.Muted("No rows loaded.")
		v.BlankLine()
		v.Help(TableKeys.Help, TableKeys.Quit)
		return v.String()
	}

	high := m.ws.Quality.HighQualityIndices()
	low := m.ws.Quality.LowQualityIndices()
	textWidth := m.TextWidth(40)

	header := fmt.Sprintf("  %6s %-4s %-6s %-5s %-5s %-5s %s", "idx", "mark", "label", "align", "flu", "gram", "text")
	if m.similar {
		header = fmt.Sprintf("  %6s %-4s %-6s %-5s %-5s %-5s %-3s %s", "idx", "mark", "label", "align", "flu", "gram", "sim", "text")
	}
	v.Line(styles.TableHeader.Render(header))

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		r := m.rows[i]
		text := Truncate(r.Text, textWidth)
		sim := ""
		if m.similar {
			sim = fmt.Sprintf("%-3d ", m.scores[r.Idx])
		}
		line := fmt.Sprintf("%6d %s   %-6s %s  %s  %s  %s%s",
			r.Idx, RenderMark(high.Has(r.Idx), low.Has(r.Idx)), Truncate(r.Label, 6),
			RenderScore(r.Alignment), RenderScore(r.Fluency), RenderScore(r.Grammaticality),
			sim, text)
		if i == m.pager.Cursor() {
			v.Line(styles.RowSelected.Render("▸ ") + line)
		} else {
			v.Line("  " + line)
		}
	}

	v.BlankLine()
	v.Muted(fmt.Sprintf("Page %d/%d · %d rows · %s", m.pager.CurrentPage(), m.pager.TotalPages(), len(m.rows), m.inspected))

	if m.detail {
		if row, ok := m.Current(); ok {
			v.BlankLine()
			v.Raw(m.renderDetail(row))
		}
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(TableKeys.High, TableKeys.Low, TableKeys.Similar, TableKeys.Detail,
		TableKeys.Transforms, TableKeys.Features, TableKeys.Selection, TableKeys.Export,
		TableKeys.Help, TableKeys.Quit)
	return v.String()
}

func (m *TableModel) renderDetail(row domain.DataRow) string {
	var b strings.Builder
	b.WriteString(RenderLabelValue("Text", row.Text) + "\n")
	if row.OldSentence != "" {
		b.WriteString(RenderLabelValue("Original", row.OldSentence) + "\n")
	}
	if row.Diff != "" {
		b.WriteString(RenderLabelValue("Diff", RenderDiff(row.Diff)) + "\n")
	}
	b.WriteString(RenderLabelValue("Transforms", names(m.ws.Vocab, domain.NamespaceTransform, row.TransformPositions())) + "\n")
	b.WriteString(RenderLabelValue("Features", names(m.ws.Vocab, domain.NamespaceFeature, row.FeaturePositions())) + "\n")
	return styles.InputField.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func names(vocab domain.Vocabulary, ns domain.Namespace, positions []int) string {
	if len(positions) == 0 {
		return RenderMuted("none")
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = vocab.Name(ns, p)
	}
	return strings.Join(parts, ", ")
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
