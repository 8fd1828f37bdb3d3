package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/microlearn/internal/ui/theme"
)

const bannerArt = `╔╦╗╦╔═╗╦═╗╔═╗╦  ╔═╗╔═╗╦═╗╔╗╔
║║║║║  ╠╦╝║ ║║  ║╣ ╠═╣╠╦╝║║║
╩ ╩╩╚═╝╩╚═╚═╝╩═╝╚═╝╩ ╩╩╚═╝╚╝`

const bannerCompact = "MicroLearn"

// RenderBanner returns the banner styled in the primary color, falling
// back to plain text below 32 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
