package compose

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/lessons"
	"github.com/abhisek/microlearn/internal/ui/components"
	"github.com/abhisek/microlearn/internal/ui/layout"
	"github.com/abhisek/microlearn/internal/ui/theme"
)

func (c *ComposeScreen) View(width, height int) string {
	cw := layout.ReadableWidth(width)
	if cw > 72 {
		cw = 72
	}

	var sections []string

	sections = append(sections,
		theme.Title.Render("MicroLearn Architect"),
		theme.Subtitle.Render("Define your subject and audience level below."),
		"",
	)

	topic := c.input.View()
	sections = append(sections, components.Card("Topic", topic, cw, c.focus == focusTopic && !c.form.Busy()))

	audience := components.Selector{
		Label:   "Target audience",
		Value:   c.form.Audience().Label(),
		Focused: c.focus == focusAudience,
	}
	sections = append(sections, "  "+audience.View(), "")

	chipFocus := -1
	if c.focus == focusSuggestions {
		chipFocus = c.chip
	}
	sections = append(sections,
		theme.Muted.Render("  Try:"),
		components.Chips(c.form.Suggestions(), chipFocus),
		"",
	)

	state := c.form.State()
	switch {
	case state.IsLoading:
		sections = append(sections, "  "+c.spinner.View("Designing your microlesson…"))
	case state.Error != nil:
		sections = append(sections, components.Banner("⚠ "+lessons.UserMessage(state.Error), cw))
	default:
		sections = append(sections,
			"  "+components.NewButton("Generate Lesson", !c.form.CanSubmit()).View(),
			"",
			theme.Hint.Render("  Enter a topic above to begin the curriculum generation process."),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(content, "\n"))
}
