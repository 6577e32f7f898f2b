package home

import (
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

const bannerArt = ` █████╗ ███████╗███╗   ███╗ █████╗ ███╗   ██╗
██╔══██╗██╔════╝████╗ ████║██╔══██╗████╗  ██║
███████║███████╗██╔████╔██║███████║██╔██╗ ██║
██╔══██║╚════██║██║╚██╔╝██║██╔══██║██║╚██╗██║
██║  ██║███████║██║ ╚═╝ ██║██║  ██║██║ ╚████║
╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "A · S · M · A · N"

// renderBanner returns the ASMan banner, or a compact fallback when the
// art would not fit.
func renderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
