package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback
// editor is available
var ErrNoEditor = errors.New("no editor found: set $EDITOR environment variable")

// DefaultFallbacks are tried in order when no editor is configured
var DefaultFallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	fallbacks []string
	lookPath  func(string) (string, error)
}

// NewOpener creates an opener using DefaultFallbacks
func NewOpener() *Opener {
	return &Opener{
		fallbacks: DefaultFallbacks,
		lookPath:  exec.LookPath,
	}
}

// Command returns an exec.Cmd opening path in the editor. Editor variables
// may carry arguments, e.g. EDITOR="code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.findEditor()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor prefers $VISUAL over $EDITOR, the way a full-screen program
// should
func (o *Opener) findEditor() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range o.fallbacks {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}

	return nil
}
