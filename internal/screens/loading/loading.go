package loading

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTickMsg animates one loading screen; ticks addressed to an
// older screen are dropped so only one tick chain runs.
type spinnerTickMsg struct {
	id int
}

var lastID int

// LoadingScreen is shown while a lesson is generated. The app owns the
// generation call; this screen only animates.
type LoadingScreen struct {
	env   *screen.Env
	id    int
	frame int
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a new LoadingScreen.
func New(env *screen.Env) *LoadingScreen {
	lastID++
	return &LoadingScreen{env: env, id: lastID}
}

func (s *LoadingScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *LoadingScreen) tick() tea.Cmd {
	id := s.id
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{id: id}
	})
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(spinnerTickMsg); ok && msg.id == s.id {
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, s.tick()
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	req, ok := s.env.Wizard.Pending()
	if !ok {
		req, _ = s.env.Wizard.Selection().Request()
	}

	spinner := lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame])
	headline := spinner + " " + theme.Heading.Render("ASman is preparing your lesson")

	what := req.Topic + " · " + req.ClassLevel.Label() + " " + req.Subject.Name()
	how := req.Style.Name()
	if req.Variant.IsGlobal() {
		how += " · Global version"
	}

	sections := []string{
		components.RenderMascot(components.MascotThinking),
		"",
		headline,
		"",
		theme.Body.Render(what),
		theme.Hint.Render(how),
	}
	if tip := styleTip(req.Style); tip != "" {
		sections = append(sections, "", lipgloss.NewStyle().Width(min(width-8, 60)).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render(tip))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func styleTip(s lessons.Style) string {
	for _, si := range lessons.Styles {
		if si.ID == s {
			return si.Approach + ": " + si.Benefit + "."
		}
	}
	return ""
}

func (s *LoadingScreen) Title() string {
	return "Generating"
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}
