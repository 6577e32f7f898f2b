// Package picker implements the class, subject and style selection
// screens as one menu-driven screen.
package picker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/router"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

// Option is one choice. Pick applies it to the wizard.
type Option struct {
	Label    string
	Hint     string
	Disabled bool
	Pick     func() error
}

type pickErrMsg struct{ err error }

// PickerScreen shows a heading, the selection so far and a menu.
type PickerScreen struct {
	title   string
	heading string
	trail   string
	menu    components.Menu
	overlay bool
	err     string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. An overlay picker pops itself after a pick.
func New(title, heading, trail string, opts []Option, overlay bool) *PickerScreen {
	items := make([]components.MenuItem, len(opts))
	for i, o := range opts {
		items[i] = components.MenuItem{
			Label:    o.Label,
			Hint:     o.Hint,
			Disabled: o.Disabled,
			Action: func() tea.Cmd {
				if err := o.Pick(); err != nil {
					return func() tea.Msg { return pickErrMsg{err} }
				}
				if overlay {
					return func() tea.Msg { return router.PopScreenMsg{} }
				}
				return nil
			},
		}
	}
	return &PickerScreen{
		title:   title,
		heading: heading,
		trail:   trail,
		menu:    components.NewMenu(items),
		overlay: overlay,
	}
}

// Class builds the class selection screen.
func Class(env *screen.Env) *PickerScreen {
	w := env.Wizard
	opts := make([]Option, len(lessons.Classes))
	for i, c := range lessons.Classes {
		opts[i] = Option{
			Label: c.Level.Label(),
			Hint:  fmt.Sprintf("ages %s · %s", c.AgeRange, c.Description),
			Pick:  func() error { return w.SelectClass(c.Level) },
		}
	}
	return New("Class", "Which class are you teaching?", "", opts, false)
}

// Subject builds the subject selection screen.
func Subject(env *screen.Env) *PickerScreen {
	w := env.Wizard
	opts := make([]Option, len(lessons.Subjects))
	for i, s := range lessons.Subjects {
		opts[i] = Option{
			Label: s.Name,
			Hint:  s.Description,
			Pick:  func() error { return w.SelectSubject(s.ID) },
		}
	}
	return New("Subject", "Pick a subject", trail(w.Selection()), opts, false)
}

// Style builds the teaching style screen that starts generation.
func Style(env *screen.Env) *PickerScreen {
	w := env.Wizard
	return New("Teaching Style", "Choose a global teaching style",
		trail(w.Selection()), styleOptions("", w.SelectStyle), false)
}

// ChangeStyle builds the overlay the lesson player opens to regenerate
// the lesson in another style. The current style is disabled.
func ChangeStyle(env *screen.Env) *PickerScreen {
	w := env.Wizard
	sel := w.Selection()
	return New("Change Style", "Regenerate this lesson in another style",
		trail(sel), styleOptions(sel.Style, w.ChangeStyle), true)
}

func styleOptions(current lessons.Style, pick func(lessons.Style) error) []Option {
	opts := make([]Option, len(lessons.Styles))
	for i, s := range lessons.Styles {
		label := s.Flag + " " + s.Adjective + " Style"
		hint := s.Description + " · " + s.Approach
		if s.ID == current {
			hint = "current"
		}
		opts[i] = Option{
			Label:    label,
			Hint:     hint,
			Disabled: s.ID == current,
			Pick:     func() error { return pick(s.ID) },
		}
	}
	return opts
}

// trail renders what has been picked so far, e.g.
// "Class 2 · Mathematics · Addition".
func trail(sel wizard.Selection) string {
	var parts []string
	if sel.ClassLevel.Valid() {
		parts = append(parts, sel.ClassLevel.Label())
	}
	if sel.Subject.Valid() {
		parts = append(parts, sel.Subject.Name())
	}
	if sel.Topic != "" {
		parts = append(parts, sel.Topic)
	}
	return strings.Join(parts, " · ")
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(pickErrMsg); ok {
		p.err = msg.err.Error()
		return p, nil
	}
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render(p.heading))
	if p.trail != "" {
		sections = append(sections, theme.Subtitle.Render(p.trail))
	}
	sections = append(sections, "", strings.TrimRight(p.menu.View(), "\n"))
	if p.err != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(p.err))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (p *PickerScreen) Title() string {
	return p.title
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	back := "Back"
	if p.overlay {
		back = "Cancel"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-9", Description: "Quick pick"},
		{Key: "Esc", Description: back},
	}
}
