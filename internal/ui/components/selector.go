package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/theme"
)

// Selector is a single-line picker cycled with the left and right keys.
// Key routing is left to the owning screen.
type Selector struct {
	Label   string
	Value   string
	Focused bool
}

// View renders the selector as "Label  ‹ Value ›".
func (s Selector) View() string {
	label := theme.Muted.Render(s.Label)
	value := theme.Unselected.Render(s.Value)
	arrows := theme.Muted
	if s.Focused {
		value = theme.Selected.Render(s.Value)
		arrows = lipgloss.NewStyle().Foreground(theme.Primary)
	}
	return label + "  " + arrows.Render("‹ ") + value + arrows.Render(" ›")
}
