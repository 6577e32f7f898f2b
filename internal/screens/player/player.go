package player

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
	"github.com/atulsharma648-byte/ASMan/internal/router"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/screens/picker"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

type tab int

const (
	tabLesson tab = iota
	tabQuiz
	tabActivity
	tabMethod
	tabGlossary
	tabCount
)

var tabNames = [...]string{
	tabLesson:   "Lesson",
	tabQuiz:     "Quiz",
	tabActivity: "Activity",
	tabMethod:   "Method",
	tabGlossary: "Glossary",
}

// PlayerScreen shows a generated lesson. The lesson itself stays in
// English; the Hindi overlay is applied when rendering.
type PlayerScreen struct {
	env    *screen.Env
	lesson lessons.LessonContent
	sel    wizard.Selection
	tab    tab
	scroll int
	quiz   []components.MultiChoice
	q      int
	err    string
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)

// New creates a new PlayerScreen for the wizard's current lesson.
func New(env *screen.Env) *PlayerScreen {
	lesson, _ := env.Wizard.Lesson()
	s := &PlayerScreen{
		env:    env,
		lesson: lesson,
		sel:    env.Wizard.Selection(),
	}
	s.buildQuiz()
	return s
}

// buildQuiz renders the questions in the current language, keeping any
// answers already given.
func (s *PlayerScreen) buildQuiz() {
	view := localize.Lesson(s.lesson, s.env.Language)
	quiz := make([]components.MultiChoice, len(view.Questions))
	for i, q := range view.Questions {
		mc := components.NewMultiChoice(q.Question, q.Options, q.Correct, q.Explanation)
		if i < len(s.quiz) {
			mc.Selected = s.quiz[i].Selected
			mc.Submitted = s.quiz[i].Submitted
			mc.ChosenIndex = s.quiz[i].ChosenIndex
		}
		quiz[i] = mc
	}
	s.quiz = quiz
}

func (s *PlayerScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "h":
		s.env.Language = s.env.Language.Toggle()
		s.buildQuiz()
		return s, nil
	case "s":
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: picker.ChangeStyle(s.env)} }
	case "g":
		if err := s.env.Wizard.ToggleGlobal(); err != nil {
			s.err = err.Error()
		}
		return s, nil
	case "tab", "right":
		s.setTab((s.tab + 1) % tabCount)
		return s, nil
	case "shift+tab", "left":
		s.setTab((s.tab + tabCount - 1) % tabCount)
		return s, nil
	case "1", "2", "3", "4", "5":
		s.setTab(tab(key[0] - '1'))
		return s, nil
	}

	if s.tab == tabQuiz {
		return s, s.updateQuiz(kmsg)
	}

	switch key {
	case "up", "k":
		s.scroll--
	case "down", "j":
		s.scroll++
	case "pgup":
		s.scroll -= 10
	case "pgdown", "space":
		s.scroll += 10
	}
	s.scroll = max(0, s.scroll)
	return s, nil
}

func (s *PlayerScreen) setTab(t tab) {
	s.tab = t
	s.scroll = 0
}

func (s *PlayerScreen) updateQuiz(msg tea.KeyMsg) tea.Cmd {
	if len(s.quiz) == 0 {
		return nil
	}
	switch msg.String() {
	case "n":
		if s.q < len(s.quiz)-1 {
			s.q++
		}
		return nil
	case "p":
		if s.q > 0 {
			s.q--
		}
		return nil
	}
	var cmd tea.Cmd
	s.quiz[s.q], cmd = s.quiz[s.q].Update(msg)
	return cmd
}

// Score returns correct and answered counts.
func (s *PlayerScreen) Score() (correct, answered int) {
	for _, mc := range s.quiz {
		if mc.Submitted {
			answered++
			if mc.IsCorrect() {
				correct++
			}
		}
	}
	return correct, answered
}

func (s *PlayerScreen) View(width, height int) string {
	cw := min(width-4, 90)
	view := localize.Lesson(s.lesson, s.env.Language)

	top := lipgloss.JoinVertical(lipgloss.Left,
		s.renderTitle(view),
		"",
		s.renderTabs(),
		"",
	)

	var body string
	switch s.tab {
	case tabLesson:
		body = s.renderLesson(view, cw)
	case tabQuiz:
		body = s.renderQuiz(cw)
	case tabActivity:
		body = wrap(view.Activity, cw)
	case tabMethod:
		body = s.renderMethod(view, cw)
	case tabGlossary:
		body = s.renderGlossary()
	}
	if s.err != "" {
		body = lipgloss.NewStyle().Foreground(theme.Error).Render(s.err) + "\n\n" + body
	}

	bodyHeight := height - lipgloss.Height(top)
	body, s.scroll = layout.Window(body, s.scroll, bodyHeight)

	content := lipgloss.JoinVertical(lipgloss.Left, top, body)
	return lipgloss.NewStyle().Padding(0, 2).Render(content)
}

func (s *PlayerScreen) renderTitle(view lessons.LessonContent) string {
	title := s.sel.Topic
	if view.RichMetadata != nil && view.RichMetadata.LessonTitle != "" {
		title = view.RichMetadata.LessonTitle
	}

	badges := []string{
		theme.Badge.Render(s.sel.Style.Name()),
	}
	if view.IsGlobalVersion {
		badges = append(badges, theme.Badge.Background(theme.Accent).Render("Global"))
	}
	if s.env.Language == localize.Hindi {
		badges = append(badges, theme.Badge.Background(theme.Primary).Render("हिंदी"))
	}

	sub := s.sel.ClassLevel.Label() + " · " + s.sel.Subject.Name() + " · ages " + lessons.AgeRange(s.sel.ClassLevel)
	return theme.Heading.Render(title) + "  " + strings.Join(badges, " ") + "\n" + theme.Hint.Render(sub)
}

func (s *PlayerScreen) renderTabs() string {
	parts := make([]string, tabCount)
	for t := range tabCount {
		label := tabNames[t]
		if t == tabQuiz && len(s.quiz) > 0 {
			correct, answered := s.Score()
			if answered > 0 {
				label += fmt.Sprintf(" %d/%d", correct, len(s.quiz))
			}
		}
		if t == s.tab {
			parts[t] = theme.TabActive.Render(label)
		} else {
			parts[t] = theme.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *PlayerScreen) renderLesson(view lessons.LessonContent, cw int) string {
	text := wrap(view.Explanation, cw)
	if md := view.RichMetadata; md != nil && (md.AgeGroup != "" || md.Duration != "") {
		var meta []string
		if md.AgeGroup != "" {
			meta = append(meta, "Age group: "+md.AgeGroup)
		}
		if md.Duration != "" {
			meta = append(meta, "Duration: "+md.Duration)
		}
		text += "\n\n" + theme.Hint.Render(strings.Join(meta, " · "))
	}
	return text
}

func (s *PlayerScreen) renderQuiz(cw int) string {
	if len(s.quiz) == 0 {
		return theme.Hint.Render("This lesson has no quiz.")
	}
	_, answered := s.Score()
	bar := components.NewProgressBar(fmt.Sprintf("Question %d of %d", s.q+1, len(s.quiz)), answered, len(s.quiz), cw)
	return bar.View() + "\n\n" + lipgloss.NewStyle().Width(cw).Render(s.quiz[s.q].View())
}

func (s *PlayerScreen) renderMethod(view lessons.LessonContent, cw int) string {
	text := wrap(view.GlobalMethod, cw)
	for _, si := range lessons.Styles {
		if si.ID == s.sel.Style {
			text += "\n\n" + theme.Heading.Render(si.Flag+" "+si.Adjective+" approach") + "\n" +
				wrap(si.Approach+". This "+si.Benefit+".", cw)
		}
	}
	return text
}

func (s *PlayerScreen) renderGlossary() string {
	if len(s.lesson.HindiTranslation) == 0 {
		return theme.Hint.Render("No glossary for this lesson.")
	}
	var b strings.Builder
	for _, t := range s.lesson.HindiTranslation {
		b.WriteString(lipgloss.NewStyle().Width(24).Foreground(theme.Text).Render(t.English))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(t.Hindi) + "\n")
	}
	return b.String()
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(text)
}

func (s *PlayerScreen) Title() string {
	return "Lesson"
}

func (s *PlayerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Section"}}
	if s.tab == tabQuiz {
		hints = append(hints,
			layout.KeyHint{Key: "A-D", Description: "Answer"},
			layout.KeyHint{Key: "n/p", Description: "Next/Prev"},
		)
	} else {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	lang := "हिंदी"
	if s.env.Language == localize.Hindi {
		lang = "English"
	}
	return append(hints,
		layout.KeyHint{Key: "h", Description: lang},
		layout.KeyHint{Key: "s", Description: "Style"},
		layout.KeyHint{Key: "g", Description: "Global"},
		layout.KeyHint{Key: "Esc", Description: "Dashboard"},
	)
}
