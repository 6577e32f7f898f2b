package upload

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/ui/components"
	"github.com/atulsharma648-byte/ASMan/internal/ui/layout"
	"github.com/atulsharma648-byte/ASMan/internal/ui/theme"
)

type field int

const (
	fieldPath field = iota
	fieldClass
	fieldSubject
	fieldCount
)

type analyzedMsg struct {
	file     lessons.UploadDescriptor
	analysis string
}

// UploadScreen describes a local file and asks the pipeline how to use
// it in a lesson.
type UploadScreen struct {
	env       *screen.Env
	path      components.TextInput
	focus     field
	class     int // index into lessons.Classes
	subject   int // index into lessons.Subjects
	analyzing bool
	file      *lessons.UploadDescriptor
	analysis  string
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates a new UploadScreen, preselecting the current class and
// subject when they are bound.
func New(env *screen.Env) *UploadScreen {
	s := &UploadScreen{
		env:  env,
		path: components.NewTextInput("File path", "~/Documents/plants-worksheet.pdf", false, 0),
	}
	sel := env.Wizard.Selection()
	for i, c := range lessons.Classes {
		if c.Level == sel.ClassLevel {
			s.class = i
		}
	}
	for i, sub := range lessons.Subjects {
		if sub.ID == sel.Subject {
			s.subject = i
		}
	}
	return s
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.path.Focus()
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzedMsg:
		s.analyzing = false
		s.file = &msg.file
		s.analysis = msg.analysis
		return s, nil

	case tea.KeyMsg:
		if s.analyzing {
			return s, nil
		}
		if s.file != nil {
			if msg.String() == "enter" {
				_ = s.env.Wizard.FinishUpload()
			}
			return s, nil
		}

		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			return s, s.analyze()
		case "left", "right":
			if s.focus != fieldPath {
				s.cycle(msg.String() == "right")
				return s, nil
			}
		}
	}

	if s.focus != fieldPath {
		return s, nil
	}
	var cmd tea.Cmd
	s.path, cmd = s.path.Update(msg)
	return s, cmd
}

func (s *UploadScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldPath {
		return s.path.Focus()
	}
	s.path.Blur()
	return nil
}

func (s *UploadScreen) cycle(forward bool) {
	step := -1
	if forward {
		step = 1
	}
	switch s.focus {
	case fieldClass:
		s.class = (s.class + step + len(lessons.Classes)) % len(lessons.Classes)
	case fieldSubject:
		s.subject = (s.subject + step + len(lessons.Subjects)) % len(lessons.Subjects)
	}
}

// analyze validates the file and runs the analysis off the UI goroutine.
func (s *UploadScreen) analyze() tea.Cmd {
	file, err := Describe(s.path.Value())
	if err == nil {
		err = lessons.CheckUpload(file)
	}
	if err != nil {
		s.path.SetError(err.Error())
		return s.setFocus(fieldPath)
	}

	svc := s.env.Lessons
	if svc == nil {
		svc = lessons.NewService(nil, nil, nil)
	}
	class := lessons.Classes[s.class].Level
	subject := lessons.Subjects[s.subject].ID
	s.analyzing = true

	return func() tea.Msg {
		return analyzedMsg{
			file:     file,
			analysis: svc.AnalyzeUpload(context.Background(), file, class, subject),
		}
	}
}

func (s *UploadScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Upload Teaching Material"))
	sections = append(sections, theme.Subtitle.Render("Images, PDFs, Word documents, text or voice notes up to 10MB"))
	sections = append(sections, "")

	if s.file != nil {
		sections = append(sections, s.renderResult(width))
	} else {
		sections = append(sections, s.path.View(), "")
		sections = append(sections, s.renderChoice("Class", lessons.Classes[s.class].Level.Label(), s.focus == fieldClass))
		sections = append(sections, s.renderChoice("Subject", lessons.Subjects[s.subject].Name, s.focus == fieldSubject))
		if s.analyzing {
			sections = append(sections, "", theme.Hint.Render("ASman is looking at your file..."))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *UploadScreen) renderChoice(label, value string, focused bool) string {
	style := theme.Unselected
	if focused {
		style = theme.Selected
		value = "◂ " + value + " ▸"
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Width(10).Render(label) + style.Render(value)
}

func (s *UploadScreen) renderResult(width int) string {
	f := s.file
	meta := fmt.Sprintf("%s · %s · %s", f.Name, f.Kind(), humanize.Bytes(uint64(f.Size)))
	body := lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.analysis)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+meta),
		"",
		theme.Card.Render(body),
		"",
		theme.Hint.Render("Press Enter to return to the dashboard"),
	)
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	if s.file != nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Analyze"},
		{Key: "Esc", Description: "Back"},
	}
}
