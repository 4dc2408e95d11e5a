package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		visual   string
		editor   string
		wantArgs []string
	}{
		{"editor", "", "nano", []string{"nano", "out.csv"}},
		{"visual wins", "code --wait", "nano", []string{"code", "--wait", "out.csv"}},
		{"fallback", "", "", []string{"/usr/bin/vi", "out.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)

			o := NewOpener()
			o.lookPath = func(name string) (string, error) {
				if name == "vi" {
					return "/usr/bin/vi", nil
				}
				return "", errors.New("not found")
			}

			cmd, err := o.Command("out.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgs, cmd.Args)
		})
	}
}

func TestOpener_NoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	o := NewOpener()
	o.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := o.Command("out.csv")
	assert.ErrorIs(t, err, ErrNoEditor)
}
