package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"provmark/internal/adapters/tui/styles"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

// ProvenanceKeyMap defines key bindings for the category views
type ProvenanceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Low    key.Binding
	Back   key.Binding
}

var ProvenanceKeys = ProvenanceKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "👍 toggle"),
	),
	Low: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "👎 toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// ProvenanceModel lists the transforms or features shared by the
// high-quality rows
type ProvenanceModel struct {
	ViewState
	ws      *application.Workspace
	ns      domain.Namespace
	pager   *Paginator
	entries []commands.CategoryEntry
}

// NewProvenanceModel creates a category view for ns
func NewProvenanceModel(ws *application.Workspace, ns domain.Namespace) *ProvenanceModel {
	return &ProvenanceModel{
		ws:    ws,
		ns:    ns,
		pager: NewPaginator(6),
	}
}

// Namespace returns the category namespace shown
func (m *ProvenanceModel) Namespace() domain.Namespace {
	return m.ns
}

// Init loads the categories
func (m *ProvenanceModel) Init() tea.Cmd {
	m.ClearMessage()
	m.Refresh()
	return nil
}

// Refresh re-reads the common categories
func (m *ProvenanceModel) Refresh() {
	res, err := commands.NewCategoryOverviewCommand(m.ws, m.ns).Execute(context.Background())
	if err != nil {
		m.Fail(err)
		return
	}
	m.entries = res.Categories
	m.pager.SetTotal(len(m.entries))
}

// Current returns the category under the cursor
func (m *ProvenanceModel) Current() (commands.CategoryEntry, bool) {
	c := m.pager.Cursor()
	if c < 0 || c >= len(m.entries) {
		return commands.CategoryEntry{}, false
	}
	return m.entries[c], true
}

// SetSize fits the page to the terminal; each category takes a preview block
func (m *ProvenanceModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	perEntry := commands.DefaultPreviewSize + 2
	m.pager.SetPageSize(max((height-10)/perEntry, 2))
}

// Update handles messages for the category view
func (m *ProvenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case WorkspaceChangedMsg:
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ProvenanceKeys.Back):
			return m, switchTo(SwitchToTableMsg{})
		case key.Matches(msg, ProvenanceKeys.Up):
			m.pager.CursorUp()
		case key.Matches(msg, ProvenanceKeys.Down):
			m.pager.CursorDown()
		case key.Matches(msg, ProvenanceKeys.Toggle):
			m.toggle(domain.QualityHigh)
		case key.Matches(msg, ProvenanceKeys.Low):
			m.toggle(domain.QualityLow)
		}
	}
	return m, nil
}

func (m *ProvenanceModel) toggle(q domain.Quality) {
	entry, ok := m.Current()
	if !ok {
		return
	}
	status := !entry.HighQuality
	if q == domain.QualityLow {
		status = !entry.LowQuality
	}

	res, err := commands.NewToggleCategoryCommand(m.ws, m.ns, q, entry.Index, status).Execute(context.Background())
	if err != nil {
		m.Fail(err)
		return
	}
	m.SetMessage(res.Message, false)
	m.Refresh()
}

// View renders the category table
func (m *ProvenanceModel) View() string {
	v := NewViewBuilder()
	if m.ns == domain.NamespaceTransform {
		v.Title("Transformation provenance")
	} else {
		v.Title("Feature provenance")
	}

	if len(m.entries) == 0 {
		v.Muted("No common " + string(m.ns) + "s yet. Mark rows 👍 in the table first.")
		v.BlankLine()
		v.Message(m.Message, m.MessageErr)
		v.Help(ProvenanceKeys.Back)
		return v.String()
	}

	v.Raw(m.renderTable())
	v.BlankLine()
	v.Muted(fmt.Sprintf("Page %d/%d · %d %ss", m.pager.CurrentPage(), m.pager.TotalPages(), len(m.entries), m.ns))
	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(ProvenanceKeys.Up, ProvenanceKeys.Down, ProvenanceKeys.Toggle, ProvenanceKeys.Low, ProvenanceKeys.Back)
	return v.String()
}

func (m *ProvenanceModel) renderTable() string {
	start, end := m.pager.VisibleRange()
	textWidth := m.TextWidth(50)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.TableBorder).
		Headers(string(m.ns), "quality", "rows", "examples")

	for i := start; i < end; i++ {
		e := m.entries[i]
		var preview []string
		for _, p := range e.Preview {
			preview = append(preview, fmt.Sprintf("%d %s", p.Idx, Truncate(p.Text, textWidth)))
		}
		t.Row(e.Name, RenderMark(e.HighQuality, e.LowQuality), fmt.Sprintf("%d", e.RowCount), strings.Join(preview, "\n"))
	}

	// Data rows follow the header; the first one sits at HeaderRow+1.
	cursor := m.pager.CursorInPage()
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return styles.TableHeader
		}
		if row-(table.HeaderRow+1) == cursor {
			return styles.TableCell.Foreground(styles.Primary).Bold(true)
		}
		return styles.TableCell
	})
	return t.Render()
}
