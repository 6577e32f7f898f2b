package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
)

// PlaceholderTitle is the title of a session whose selections are not
// complete yet.
const PlaceholderTitle = "New Lesson"

// Session is one entry of the lesson history.
type Session struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Timestamp        time.Time              `json:"timestamp"`
	ClassLevel       lessons.ClassLevel     `json:"classLevel,omitempty"`
	Subject          lessons.Subject        `json:"subject,omitempty"`
	Topic            string                 `json:"topic,omitempty"`
	Style            lessons.Style          `json:"teachingStyle,omitempty"`
	HasGlobalVersion bool                   `json:"hasGlobalVersion,omitempty"`
	Lesson           *lessons.LessonContent `json:"lessonContent,omitempty"`
}

// HasLesson reports whether a lesson was generated for the session.
// Selecting a session without one resumes the wizard.
func (s Session) HasLesson() bool {
	return s.Lesson != nil
}

// Request returns the generation request bound by the session, and false
// when any of class, subject, topic or style is missing.
func (s Session) Request() (lessons.GenerationRequest, bool) {
	req := lessons.GenerationRequest{
		ClassLevel: s.ClassLevel,
		Subject:    s.Subject,
		Topic:      s.Topic,
		Style:      s.Style,
		Variant:    lessons.VariantStandard,
	}
	if s.HasGlobalVersion {
		req.Variant = lessons.VariantGlobal
	}
	return req, req.Validate() == nil
}

// Patch is a partial session update. Nil fields are left unchanged.
type Patch struct {
	Title            *string                `json:"title,omitempty"`
	ClassLevel       *lessons.ClassLevel    `json:"classLevel,omitempty"`
	Subject          *lessons.Subject       `json:"subject,omitempty"`
	Topic            *string                `json:"topic,omitempty"`
	Style            *lessons.Style         `json:"teachingStyle,omitempty"`
	HasGlobalVersion *bool                  `json:"hasGlobalVersion,omitempty"`
	Lesson           *lessons.LessonContent `json:"lessonContent,omitempty"`
}

func (p Patch) apply(s *Session) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.ClassLevel != nil {
		s.ClassLevel = *p.ClassLevel
	}
	if p.Subject != nil {
		s.Subject = *p.Subject
	}
	if p.Topic != nil {
		s.Topic = *p.Topic
	}
	if p.Style != nil {
		s.Style = *p.Style
	}
	if p.HasGlobalVersion != nil {
		s.HasGlobalVersion = *p.HasGlobalVersion
	}
	if p.Lesson != nil {
		s.Lesson = p.Lesson
	}
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// GenerateTitle returns "<topic> - Class N <Subject>", or the placeholder
// when any part is missing.
func GenerateTitle(class lessons.ClassLevel, subject lessons.Subject, topic string) string {
	topic = strings.TrimSpace(topic)
	if class == 0 || subject == "" || topic == "" {
		return PlaceholderTitle
	}
	return fmt.Sprintf("%s - %s %s", topic, class.Label(), subject.Name())
}
