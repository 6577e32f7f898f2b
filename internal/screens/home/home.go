package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/screens/history"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

// HomeScreen is the dashboard.
type HomeScreen struct {
	env  *screen.Env
	menu components.Menu
	err  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

type actionErrMsg struct{ err error }

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	w := env.Wizard

	fail := func(err error) tea.Cmd {
		if err == nil {
			return nil
		}
		return func() tea.Msg { return actionErrMsg{err} }
	}

	items := []components.MenuItem{
		{Label: "New Lesson", Hint: "class → subject → topic → style", Action: func() tea.Cmd {
			return fail(w.NewChat())
		}},
		{Label: "Upload Teaching Material", Hint: "images, documents, voice notes", Action: func() tea.Cmd {
			return fail(w.OpenUpload())
		}},
		{Label: "Lesson History", Hint: fmt.Sprintf("%d saved", w.Sessions().Len()), Action: func() tea.Cmd {
			return func() tea.Msg { return history.OpenMsg{} }
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(actionErrMsg); ok {
		h.err = msg.err.Error()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)

	var sections []string
	sections = append(sections, renderBanner(width, compact))
	sections = append(sections, theme.Subtitle.Render("Global teaching styles for Indian classrooms, classes 1-10"))
	if !compact {
		sections = append(sections, components.RenderMascot(components.MascotIdle))
	}
	sections = append(sections, h.renderStatus())

	menu := theme.Card.Render(strings.TrimRight(h.menu.View(), "\n"))
	sections = append(sections, menu)

	if h.err != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(h.err))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStatus() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if h.env.Lessons != nil && h.env.Lessons.Configured() {
		return dim.Render("Lessons by ") + lipgloss.NewStyle().Foreground(theme.Secondary).Render(h.env.Model)
	}
	return dim.Render("Offline: built-in lessons only. Set an API key to generate with an LLM.")
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+R", Description: "History"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
