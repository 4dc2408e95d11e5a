package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"provmark/internal/adapters/tui/styles"
	"provmark/internal/adapters/tui/views"
	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/application/services"
	"provmark/internal/domain"
	"provmark/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewTable
	ViewTransforms
	ViewFeatures
	ViewSelection
	ViewExport
	ViewHelp
)

// Loader fills the workspace with a dataset
type Loader func(ctx context.Context) (*commands.LoadDatasetResult, error)

// App is the main TUI application model
type App struct {
	ws     *application.Workspace
	editor ports.EditorOpener
	load   Loader

	changes     <-chan services.Change
	unsubscribe func()

	state      ViewState
	spinner    spinner.Model
	loadErr    error
	table      *views.TableModel
	transforms *views.ProvenanceModel
	features   *views.ProvenanceModel
	selection  *views.SelectionModel
	export     *views.ExportModel
	help       *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. A nil load starts on the table
// with whatever ws already holds.
func NewApp(ws *application.Workspace, ed ports.EditorOpener, load Loader) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Success

	changes, unsubscribe := ws.Notifier.Subscribe(0)

	state := ViewLoading
	if load == nil {
		state = ViewTable
	}

	return &App{
		ws:          ws,
		editor:      ed,
		load:        load,
		changes:     changes,
		unsubscribe: unsubscribe,
		state:       state,
		spinner:     s,
		table:       views.NewTableModel(ws),
		transforms:  views.NewProvenanceModel(ws, domain.NamespaceTransform),
		features:    views.NewProvenanceModel(ws, domain.NamespaceFeature),
		selection:   views.NewSelectionModel(ws),
		export:      views.NewExportModel(ws),
		help:        views.NewHelpModel(),
	}
}

// Close drops the notifier subscription
func (a *App) Close() {
	a.unsubscribe()
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

type datasetLoadedMsg struct {
	result *commands.LoadDatasetResult
	err    error
}

// Init starts the dataset load and the change listener
func (a *App) Init() tea.Cmd {
	if a.load == nil {
		return tea.Batch(a.table.Init(), a.waitForChange())
	}
	return tea.Batch(a.spinner.Tick, a.loadDataset(), a.waitForChange())
}

func (a *App) loadDataset() tea.Cmd {
	return func() tea.Msg {
		res, err := a.load(context.Background())
		return datasetLoadedMsg{result: res, err: err}
	}
}

// waitForChange blocks on the notifier; it is re-armed after every change
func (a *App) waitForChange() tea.Cmd {
	return func() tea.Msg {
		change, ok := <-a.changes
		if !ok {
			return nil
		}
		return views.WorkspaceChangedMsg{Change: change}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetSize(msg.Width, msg.Height)
		a.transforms.SetSize(msg.Width, msg.Height)
		a.features.SetSize(msg.Width, msg.Height)
		a.selection.SetSize(msg.Width, msg.Height)
		a.export.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.state != ViewLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case datasetLoadedMsg:
		if msg.err != nil {
			a.loadErr = msg.err
			a.ws.Logger.Error("dataset load failed", "error", msg.err)
			return a, nil
		}
		a.ws.Logger.Info(msg.result.Message)
		a.state = ViewTable
		a.table.SetMessage(msg.result.Message, false)
		return a, a.table.Init()

	case views.WorkspaceChangedMsg:
		// every view re-pulls its snapshot, hidden ones included
		a.table.Refresh()
		a.transforms.Refresh()
		a.features.Refresh()
		a.selection.Refresh()
		return a, a.waitForChange()

	// View switching messages
	case views.SwitchToTableMsg:
		a.state = ViewTable
		a.table.Refresh()
		return a, nil

	case views.SwitchToProvenanceMsg:
		if msg.Namespace == domain.NamespaceTransform {
			a.state = ViewTransforms
			return a, a.transforms.Init()
		}
		a.state = ViewFeatures
		return a, a.features.Init()

	case views.SwitchToSelectionMsg:
		a.state = ViewSelection
		if row, ok := a.table.Current(); ok {
			a.selection.SetSelected([]int{row.Idx})
		}
		return a, a.selection.Init()

	case views.SwitchToExportMsg:
		a.state = ViewExport
		return a, a.export.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.export.SetMessage(msg.err.Error(), true)
		}
		return a, nil

	case tea.KeyMsg:
		if a.state == ViewLoading && (msg.String() == "q" || msg.String() == "ctrl+c") {
			return a, tea.Quit
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewTable:
		_, cmd = a.table.Update(msg)
	case ViewTransforms:
		_, cmd = a.transforms.Update(msg)
	case ViewFeatures:
		_, cmd = a.features.Update(msg)
	case ViewSelection:
		_, cmd = a.selection.Update(msg)
	case ViewExport:
		_, cmd = a.export.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLoading:
		if a.loadErr != nil {
			return views.NewViewBuilder().
				Title("provmark").
				Message(a.loadErr.Error(), true).
				Muted("Press q to quit.").
				String()
		}
		return views.NewViewBuilder().
			Title("provmark").
			Line(a.spinner.View() + " Loading dataset…").
			String()
	case ViewTransforms:
		return a.transforms.View()
	case ViewFeatures:
		return a.features.View()
	case ViewSelection:
		return a.selection.View()
	case ViewExport:
		return a.export.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.table.View()
	}
}
