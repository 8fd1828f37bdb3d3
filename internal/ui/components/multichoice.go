package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/theme"
)

// MultiChoice renders the options of one quiz question. It is a pure view
// over quiz state; selection and submission live in the quiz session.
type MultiChoice struct {
	Options      []string
	Selected     int // -1 when nothing is selected
	Submitted    bool
	CorrectIndex int
	Width        int
}

// View renders one numbered line per option. After submission the
// correct option is green and a wrong pick is red.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Submitted && i == m.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case m.Submitted:
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		if m.Width > 0 {
			style = style.Width(m.Width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
