package views

// minTextWidth keeps row text readable on narrow terminals
const minTextWidth = 30

// ViewState is embedded by every screen: the terminal size it was last
// given and the one-line status shown under its body.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// TextWidth is the room left for row text once reserved columns
// (index, marks, scores, labels) are drawn, never below minTextWidth.
func (s *ViewState) TextWidth(reserved int) int {
	return max(s.Width-reserved, minTextWidth)
}

func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// Fail shows a failed command or export as an error status. A nil err
// leaves the status untouched.
func (s *ViewState) Fail(err error) {
	if err == nil {
		return
	}
	s.SetMessage(err.Error(), true)
}

func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
