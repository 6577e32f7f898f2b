package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
	"github.com/atulsharma648-byte/ASMan/internal/session"
)

type lessonRequest struct {
	ClassLevel int    `json:"classLevel"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Style      string `json:"teachingStyle"`
	Variant    string `json:"variant"`
	IsGlobal   bool   `json:"isGlobalVersion"`
	Language   string `json:"language"`

	// SessionID, when set, receives the generated lesson.
	SessionID string `json:"sessionId"`
}

func (r lessonRequest) parse() (lessons.GenerationRequest, localize.Language, error) {
	var req lessons.GenerationRequest
	subject, err := lessons.ParseSubject(r.Subject)
	if err != nil {
		return req, 0, err
	}
	style, err := lessons.ParseStyle(r.Style)
	if err != nil {
		return req, 0, err
	}
	variant, err := lessons.ParseVariant(r.Variant)
	if err != nil {
		return req, 0, err
	}
	if r.IsGlobal {
		variant = lessons.VariantGlobal
	}
	lang, err := localize.ParseLanguage(r.Language)
	if err != nil {
		return req, 0, err
	}
	req = lessons.GenerationRequest{
		ClassLevel: lessons.ClassLevel(r.ClassLevel),
		Subject:    subject,
		Topic:      strings.TrimSpace(r.Topic),
		Style:      style,
		Variant:    variant,
	}
	return req, lang, req.Validate()
}

type lessonResponse struct {
	Lesson   lessons.LessonContent `json:"lesson"`
	Variant  lessons.Variant       `json:"variant"`
	Language string                `json:"language"`
	Session  *session.Session      `json:"session,omitempty"`
}

func (s *Server) generateLesson(c *gin.Context) {
	var body lessonRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	req, lang, err := body.parse()
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	if body.SessionID != "" {
		if _, ok := s.sessions.Get(body.SessionID); !ok {
			respondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("session %q not found", body.SessionID))
			return
		}
	}

	lesson := s.lessons.GenerateLesson(c.Request.Context(), req)

	resp := lessonResponse{
		Lesson:   localize.Lesson(lesson, lang),
		Variant:  req.Variant,
		Language: lang.String(),
	}
	if body.SessionID != "" {
		global := req.Variant.IsGlobal()
		title := session.GenerateTitle(req.ClassLevel, req.Subject, req.Topic)
		s.sessions.Update(body.SessionID, session.Patch{
			Title:            &title,
			ClassLevel:       &req.ClassLevel,
			Subject:          &req.Subject,
			Topic:            &req.Topic,
			Style:            &req.Style,
			HasGlobalVersion: &global,
			Lesson:           &lesson,
		})
		if sess, ok := s.sessions.Get(body.SessionID); ok {
			resp.Session = &sess
		}
	}
	c.JSON(http.StatusOK, resp)
}

type uploadRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	Content    string `json:"content"`
	ClassLevel int    `json:"classLevel"`
	Subject    string `json:"subject"`
}

func (s *Server) analyzeUpload(c *gin.Context) {
	var body uploadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	class := lessons.ClassLevel(body.ClassLevel)
	if !class.Valid() {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, fmt.Errorf("class level %d out of range 1-10", body.ClassLevel))
		return
	}
	subject, err := lessons.ParseSubject(body.Subject)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	u := lessons.NewUpload(body.Name, body.Type, body.Size, body.Content)
	if err := lessons.CheckUpload(u); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	analysis := s.lessons.AnalyzeUpload(c.Request.Context(), u, class, subject)
	u.Text = ""
	c.JSON(http.StatusOK, gin.H{"file": u, "analysis": analysis})
}

type localizeRequest struct {
	Language string                 `json:"language"`
	Text     string                 `json:"text"`
	Glossary lessons.Glossary       `json:"glossary"`
	Lesson   *lessons.LessonContent `json:"lesson"`
}

func (s *Server) localize(c *gin.Context) {
	var body localizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	lang, err := localize.ParseLanguage(body.Language)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	if body.Lesson != nil {
		c.JSON(http.StatusOK, gin.H{"language": lang.String(), "lesson": localize.Lesson(*body.Lesson, lang)})
		return
	}
	if body.Text == "" {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, errors.New("text or lesson is required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang.String(), "text": localize.Text(body.Text, lang, body.Glossary)})
}
