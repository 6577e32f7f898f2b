package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/router"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/screens/failure"
	"github.com/atulsharma648-byte/ASMan/internal/screens/history"
	"github.com/atulsharma648-byte/ASMan/internal/screens/home"
	"github.com/atulsharma648-byte/ASMan/internal/screens/loading"
	"github.com/atulsharma648-byte/ASMan/internal/screens/picker"
	"github.com/atulsharma648-byte/ASMan/internal/screens/player"
	"github.com/atulsharma648-byte/ASMan/internal/screens/topic"
	"github.com/atulsharma648-byte/ASMan/internal/screens/upload"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

// Options configures the interactive app.
type Options struct {
	Wizard  *wizard.Wizard
	Lessons *lessons.Service
	Model   string // provider model id, empty when offline
}

// lessonResultMsg carries the outcome of a generation started while the
// wizard was loading.
type lessonResultMsg struct {
	lesson lessons.LessonContent
	err    error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env      *screen.Env
	router   *router.Router
	width    int
	height   int
	inflight bool
}

// newAppModel creates the root model with one route per wizard state.
func newAppModel(opts Options) *AppModel {
	env := &screen.Env{
		Wizard:  opts.Wizard,
		Lessons: opts.Lessons,
		Model:   opts.Model,
	}

	r := router.New(home.New(env))
	r.Handle(wizard.StateDashboard, func() screen.Screen { return home.New(env) })
	r.Handle(wizard.StateClassSelection, func() screen.Screen { return picker.Class(env) })
	r.Handle(wizard.StateSubjectSelection, func() screen.Screen { return picker.Subject(env) })
	r.Handle(wizard.StateTopicInput, func() screen.Screen { return topic.New(env) })
	r.Handle(wizard.StateStyleSelection, func() screen.Screen { return picker.Style(env) })
	r.Handle(wizard.StateUpload, func() screen.Screen { return upload.New(env) })
	r.Handle(wizard.StateLoading, func() screen.Screen { return loading.New(env) })
	r.Handle(wizard.StateError, func() screen.Screen { return failure.New(env) })
	r.Handle(wizard.StateLessonPlayer, func() screen.Screen { return player.New(env) })

	return &AppModel{env: env, router: r}
}

func (m *AppModel) Init() tea.Cmd {
	return m.sync()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w := m.env.Wizard

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case lessonResultMsg:
		m.inflight = false
		if msg.err != nil {
			_ = w.Fail(msg.err)
		} else if err := w.Complete(msg.lesson); err != nil {
			_ = w.Fail(err)
		}
		return m, m.sync()

	case history.OpenMsg:
		return m, m.openHistory()

	case history.CloseMsg:
		m.closeHistory()
		return m, m.sync()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			_ = w.NewChat()
			return m, m.sync()
		case "ctrl+r":
			if m.historyActive() {
				m.closeHistory()
				return m, nil
			}
			return m, m.openHistory()
		case "esc":
			switch {
			case m.historyActive():
				m.closeHistory()
			case m.router.Depth() > 1:
				m.router.Pop()
			default:
				_ = w.Back()
			}
			return m, m.sync()
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.sync())
}

// sync rebuilds the screen after a wizard move and starts generation
// when the wizard entered loading.
func (m *AppModel) sync() tea.Cmd {
	w := m.env.Wizard
	cmd, changed := m.router.Sync(w.State(), w.Revision())
	if changed && w.Sessions().HistoryOpen() {
		w.Sessions().ToggleHistory()
	}

	req, loading := w.Pending()
	if !loading || m.inflight {
		return cmd
	}
	m.inflight = true
	return tea.Batch(cmd, func() tea.Msg {
		lesson, err := w.Generate(context.Background(), req)
		return lessonResultMsg{lesson: lesson, err: err}
	})
}

func (m *AppModel) historyActive() bool {
	_, ok := m.router.Active().(*history.HistoryScreen)
	return ok
}

// openHistory shows the history panel. It is unavailable while a lesson
// is loading, since no session can be resumed then.
func (m *AppModel) openHistory() tea.Cmd {
	w := m.env.Wizard
	if w.State() == wizard.StateLoading || m.historyActive() {
		return nil
	}
	if !w.Sessions().HistoryOpen() {
		w.Sessions().ToggleHistory()
	}
	return m.router.Push(history.New(m.env))
}

func (m *AppModel) closeHistory() {
	if w := m.env.Wizard; w.Sessions().HistoryOpen() {
		w.Sessions().ToggleHistory()
	}
	if m.historyActive() {
		m.router.Pop()
	}
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.Status{
		Language: m.env.Language.String(),
		Provider: m.env.Model,
	}, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Wizard == nil {
		return fmt.Errorf("app: wizard is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
