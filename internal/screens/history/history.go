package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

// OpenMsg asks the app to open the history panel.
type OpenMsg struct{}

// CloseMsg asks the app to close the history panel.
type CloseMsg struct{}

// HistoryScreen lists lesson sessions, newest first.
type HistoryScreen struct {
	env       *screen.Env
	sessions  []session.Session
	currentID string
	selected  int
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen over the wizard's session store.
func New(env *screen.Env) *HistoryScreen {
	s := &HistoryScreen{env: env}
	store := env.Wizard.Sessions()
	s.sessions = store.List()
	if cur, ok := store.Current(); ok {
		s.currentID = cur.ID
		for i, sess := range s.sessions {
			if sess.ID == cur.ID {
				s.selected = i
			}
		}
	}
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.sessions)-1 {
			s.selected++
		}
	case "enter":
		if len(s.sessions) == 0 {
			return s, nil
		}
		if err := s.env.Wizard.SelectSession(s.sessions[s.selected].ID); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return CloseMsg{} }
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Start a new one from the dashboard!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		marker := "  "
		if sess.ID == s.currentID {
			marker = "● "
		}
		title := sess.Title
		if i == s.selected {
			title = theme.Selected.Render("▸ " + marker + title)
		} else {
			title = theme.Unselected.Render("  " + marker + title)
		}

		b.WriteString(title + "\n")
		b.WriteString(theme.Hint.Render("      "+describe(sess)) + "\n\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  "+s.errMsg) + "\n")
	}

	// Keep the selection visible: each entry takes three lines.
	body, _ := layout.Window(b.String(), s.selected*3-height/2, height)
	return body
}

// describe summarizes an entry: age, what is bound so far, and where
// selecting it leads.
func describe(sess session.Session) string {
	parts := []string{humanize.Time(sess.Timestamp)}
	if sess.ClassLevel.Valid() {
		parts = append(parts, sess.ClassLevel.Label())
	}
	if sess.Subject.Valid() {
		parts = append(parts, sess.Subject.Name())
	}
	if sess.Style.Valid() {
		parts = append(parts, sess.Style.Name())
	}

	switch next := wizard.ResumeState(sess); next {
	case wizard.StateLessonPlayer:
		parts = append(parts, "lesson ready")
	default:
		parts = append(parts, fmt.Sprintf("continue at %s", strings.ReplaceAll(next.String(), "-", " ")))
	}
	return strings.Join(parts, " · ")
}
