package ports

import "os/exec"

// EditorOpener builds the command that opens an exported file in the
// user's editor, for use with bubbletea's ExecProcess
type EditorOpener interface {
	Command(path string) (*exec.Cmd, error)
}
