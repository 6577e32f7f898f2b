package components

import (
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

// MascotVariant selects which ASman pose to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota
	MascotThinking               // lesson in progress
	MascotWorried                // something went wrong
)

const mascotIdle = `   ✦
 ╭───╮
 │ A │
 ╰─┬─╯
  /|\`

const mascotThinking = `  ✦ ✦
 ╭───╮
 │ A │ …
 ╰─┬─╯
  /|\`

const mascotWorried = `
 ╭───╮
 │ A │ ?
 ╰─┬─╯
  /|\`

// RenderMascot returns the ASman character art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Accent

	switch v {
	case MascotThinking:
		art = mascotThinking
		fg = theme.Primary
	case MascotWorried:
		art = mascotWorried
		fg = theme.Error
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
