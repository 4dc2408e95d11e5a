package views

import (
	"provmark/internal/application/services"
	"provmark/internal/domain"
)

// SwitchToTableMsg returns to the inspection table
type SwitchToTableMsg struct{}

// SwitchToProvenanceMsg opens the category view of a namespace
type SwitchToProvenanceMsg struct {
	Namespace domain.Namespace
}

// SwitchToSelectionMsg opens the selection view
type SwitchToSelectionMsg struct{}

// SwitchToExportMsg opens the export view
type SwitchToExportMsg struct{}

type SwitchToHelpMsg struct{}

// WorkspaceChangedMsg carries a notifier change into the program
type WorkspaceChangedMsg struct {
	Change services.Change
}

// OpenEditorMsg asks the app to open a file in $EDITOR
type OpenEditorMsg struct {
	Path string
}
