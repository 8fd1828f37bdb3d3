package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/theme"
)

// Card wraps body in a rounded box of the given outer width, with an
// optional heading line.
func Card(heading, body string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.FocusedCard
	}
	content := body
	if heading != "" {
		content = theme.Heading.Render(heading) + "\n" + body
	}
	return style.Width(width).Render(content)
}

// Chips renders a row of pill labels, highlighting focused (-1 for none).
func Chips(labels []string, focused int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == focused {
			parts[i] = theme.ChipFocused.Render(l)
		} else {
			parts[i] = theme.Chip.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Banner renders an error or status line in a bordered box.
func Banner(msg string, width int) string {
	return theme.ErrorBanner.Width(width).Render(msg)
}
