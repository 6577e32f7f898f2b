package failure

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

// FailureScreen is shown when a lesson could not be produced.
type FailureScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*FailureScreen)(nil)
var _ screen.KeyHintProvider = (*FailureScreen)(nil)

// New creates a new FailureScreen.
func New(env *screen.Env) *FailureScreen {
	w := env.Wizard
	items := []components.MenuItem{
		{Label: "Try again", Action: func() tea.Cmd {
			_ = w.Retry()
			return nil
		}},
		{Label: "Back to dashboard", Action: func() tea.Cmd {
			_ = w.Back()
			return nil
		}},
	}
	return &FailureScreen{env: env, menu: components.NewMenu(items)}
}

func (s *FailureScreen) Init() tea.Cmd {
	return nil
}

func (s *FailureScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *FailureScreen) View(width, height int) string {
	sections := []string{
		components.RenderMascot(components.MascotWorried),
		"",
		lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Oops! Something went wrong"),
		"",
		lipgloss.NewStyle().Width(min(width-8, 60)).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(describe(s.env.Wizard.Err())),
		"",
		strings.TrimRight(s.menu.View(), "\n"),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func describe(err error) string {
	switch {
	case err == nil:
		return "We could not create your lesson."
	case errors.Is(err, lessons.ErrInvalidLesson):
		return "The lesson came back incomplete. Trying again usually helps."
	}
	return "We could not create your lesson: " + err.Error()
}

func (s *FailureScreen) Title() string {
	return "Error"
}

func (s *FailureScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Dashboard"},
	}
}
