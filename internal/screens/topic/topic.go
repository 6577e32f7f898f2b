package topic

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

const maxTopicLen = 80

// TopicScreen asks for the lesson topic. Tab cycles through suggestions
// for the chosen subject.
type TopicScreen struct {
	env         *screen.Env
	input       components.TextInput
	suggestions []string
	next        int
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates a new TopicScreen.
func New(env *screen.Env) *TopicScreen {
	sel := env.Wizard.Selection()
	suggestions := lessons.TopicSuggestions(sel.Subject)

	placeholder := "Enter a topic"
	if len(suggestions) > 0 {
		placeholder = "e.g. " + suggestions[0]
	}

	s := &TopicScreen{
		env:         env,
		input:       components.NewTextInput("Topic", placeholder, false, maxTopicLen),
		suggestions: suggestions,
	}
	if sel.Topic != "" {
		s.input.SetValue(sel.Topic)
	}
	return s
}

func (s *TopicScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			if err := s.env.Wizard.SubmitTopic(s.input.Value()); err != nil {
				s.input.SetError("Please enter a topic")
			}
			return s, nil
		case "tab":
			if len(s.suggestions) > 0 {
				s.input.SetValue(s.suggestions[s.next%len(s.suggestions)])
				s.next++
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TopicScreen) View(width, height int) string {
	sel := s.env.Wizard.Selection()

	var sections []string
	sections = append(sections, theme.Title.Render("What should the lesson be about?"))
	sections = append(sections, theme.Subtitle.Render(sel.ClassLevel.Label()+" · "+sel.Subject.Name()))
	sections = append(sections, "", s.input.View())

	if len(s.suggestions) > 0 {
		chips := make([]string, len(s.suggestions))
		for i, t := range s.suggestions {
			chips[i] = lipgloss.NewStyle().Foreground(theme.Accent).Render(t)
		}
		line := lipgloss.NewStyle().Width(min(width-4, 70)).
			Render(theme.Hint.Render("Suggestions: ") + strings.Join(chips, "  "))
		sections = append(sections, "", line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *TopicScreen) Title() string {
	return "Topic"
}

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Tab", Description: "Suggestion"},
		{Key: "Esc", Description: "Back"},
	}
}
