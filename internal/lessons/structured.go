package lessons

import (
	"fmt"
	"strings"
)

// structuredLesson is the nested shape returned for global-enhanced
// prompts.
type structuredLesson struct {
	LessonTitle  string `json:"lessonTitle"`
	AgeGroup     string `json:"ageGroup"`
	Duration     string `json:"duration"`
	Introduction struct {
		Hook      string `json:"hook"`
		Objective string `json:"objective"`
	} `json:"introduction"`
	Explanation struct {
		MainContent string   `json:"mainContent"`
		KeyPoints   []string `json:"keyPoints"`
		Examples    []string `json:"examples"`
	} `json:"explanation"`
	InteractiveSection struct {
		Questions []Question `json:"questions"`
	} `json:"interactiveSection"`
	HandsonActivity handsonActivity `json:"handsonActivity"`
	GlobalMethod    struct {
		Style          string `json:"style"`
		Application    string `json:"application"`
		CulturalBridge string `json:"culturalBridge"`
	} `json:"globalMethod"`
	Conclusion struct {
		Summary    string `json:"summary"`
		Homework   string `json:"homework"`
		NextLesson string `json:"nextLesson"`
	} `json:"conclusion"`
	LanguageSupport struct {
		HindiKeyTerms Glossary `json:"hindiKeyTerms"`
	} `json:"languageSupport"`
	TeacherNotes struct {
		Tips           []string `json:"tips"`
		CommonMistakes []string `json:"commonMistakes"`
		Extensions     []string `json:"extensions"`
	} `json:"teacherNotes"`
}

type handsonActivity struct {
	Title      string   `json:"title"`
	Materials  []string `json:"materials"`
	Steps      []string `json:"steps"`
	TimeNeeded string   `json:"timeNeeded"`
}

func (s *structuredLesson) canonical(v Variant) LessonContent {
	lesson := LessonContent{
		Explanation:      s.renderExplanation(),
		Questions:        s.InteractiveSection.Questions,
		Activity:         s.HandsonActivity.short(),
		GlobalMethod:     s.GlobalMethod.Application,
		HindiTranslation: s.LanguageSupport.HindiKeyTerms,
		IsGlobalVersion:  v.IsGlobal(),
	}
	if s.LessonTitle != "" || s.AgeGroup != "" || s.Duration != "" {
		lesson.RichMetadata = &RichMetadata{
			LessonTitle: s.LessonTitle,
			AgeGroup:    s.AgeGroup,
			Duration:    s.Duration,
		}
	}
	return lesson
}

// renderExplanation concatenates the sections in a fixed order under
// markdown headings. Empty sections are skipped.
func (s *structuredLesson) renderExplanation() string {
	var sections []string
	add := func(heading, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		sections = append(sections, "## "+heading+"\n"+body)
	}

	add("Learning Objective", s.Introduction.Objective)
	add("Let's Begin", s.Introduction.Hook)
	add("Main Content", s.Explanation.MainContent)
	add("Key Points", numbered(s.Explanation.KeyPoints))
	add("Examples", bullets(s.Explanation.Examples))

	act := s.HandsonActivity
	heading := "Hands-on Activity"
	if act.Title != "" {
		heading += ": " + act.Title
	}
	add(heading, act.long())

	gm := s.GlobalMethod
	var method strings.Builder
	method.WriteString(gm.Application)
	if gm.CulturalBridge != "" {
		if method.Len() > 0 {
			method.WriteString("\n\n")
		}
		method.WriteString("Cultural bridge: " + gm.CulturalBridge)
	}
	methodHeading := "Teaching Method"
	if gm.Style != "" {
		methodHeading = gm.Style + " " + methodHeading
	}
	add(methodHeading, method.String())

	add("Summary", s.Conclusion.Summary)
	add("Homework", s.Conclusion.Homework)
	add("Next Lesson", s.Conclusion.NextLesson)

	notes := s.TeacherNotes
	var nb []string
	if len(notes.Tips) > 0 {
		nb = append(nb, "Tips:\n"+bullets(notes.Tips))
	}
	if len(notes.CommonMistakes) > 0 {
		nb = append(nb, "Common mistakes:\n"+bullets(notes.CommonMistakes))
	}
	if len(notes.Extensions) > 0 {
		nb = append(nb, "Extensions:\n"+bullets(notes.Extensions))
	}
	add("Teacher Notes", strings.Join(nb, "\n\n"))

	return strings.Join(sections, "\n\n")
}

func (a handsonActivity) long() string {
	var lines []string
	if len(a.Materials) > 0 {
		lines = append(lines, "Materials: "+strings.Join(a.Materials, ", "))
	}
	if a.TimeNeeded != "" {
		lines = append(lines, "Time needed: "+a.TimeNeeded)
	}
	if len(a.Steps) > 0 {
		lines = append(lines, numbered(a.Steps))
	}
	return strings.Join(lines, "\n")
}

// short renders the activity on one line for LessonContent.Activity.
func (a handsonActivity) short() string {
	var b strings.Builder
	b.WriteString(a.Title)
	if len(a.Steps) > 0 {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(strings.Join(a.Steps, "; "))
	}
	var extra []string
	if len(a.Materials) > 0 {
		extra = append(extra, "Materials: "+strings.Join(a.Materials, ", "))
	}
	if a.TimeNeeded != "" {
		extra = append(extra, "Time: "+a.TimeNeeded)
	}
	if len(extra) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("(" + strings.Join(extra, ". ") + ")")
	}
	return b.String()
}

func numbered(items []string) string {
	var lines []string
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, it))
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, "• "+it)
	}
	return strings.Join(lines, "\n")
}
