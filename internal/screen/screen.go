package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Env is what screens share. Screens drive the wizard directly; the app
// rebuilds the active screen whenever the wizard moves.
type Env struct {
	Wizard   *wizard.Wizard
	Lessons  *lessons.Service
	Model    string
	Language localize.Language
}
