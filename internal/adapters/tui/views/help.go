package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"provmark/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, switchTo(SwitchToTableMsg{})
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("provmark help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Curate augmented data by its provenance"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Inspection table"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString(helpLine("g", "Toggle 👍 high quality"))
	b.WriteString(helpLine("b", "Toggle 👎 low quality"))
	b.WriteString(helpLine("s", "Rank rows by similarity to 👍 rows"))
	b.WriteString(helpLine("enter / d", "Show text, diff and provenance"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Views"))
	b.WriteString("\n")
	b.WriteString(helpLine("t", "Transformation provenance"))
	b.WriteString(helpLine("f", "Feature provenance"))
	b.WriteString(helpLine("v", "Selection and quality scores"))
	b.WriteString(helpLine("e", "Export to CSV"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Provenance views"))
	b.WriteString("\n")
	b.WriteString(helpLine("enter", "Toggle 👍, marking every row of the category"))
	b.WriteString(helpLine("x", "Toggle 👎"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
