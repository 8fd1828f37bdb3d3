package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg advances a Spinner. ID scopes ticks to one spinner so a
// stopped spinner's pending tick does not restart it.
type SpinnerTickMsg struct {
	ID int
}

// Spinner is a braille loading indicator driven by tea.Tick.
type Spinner struct {
	ID    int
	frame int
}

// Tick schedules the next frame.
func (s Spinner) Tick() tea.Cmd {
	id := s.ID
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id}
	})
}

// Update advances the frame on a matching tick and schedules the next one.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if m, ok := msg.(SpinnerTickMsg); ok && m.ID == s.ID {
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.Tick()
	}
	return s, nil
}

// View renders the current frame followed by label.
func (s Spinner) View(label string) string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame]) +
		" " + theme.Muted.Render(label)
}
