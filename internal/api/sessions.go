package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

type sessionList struct {
	Sessions    []session.Session `json:"sessions"`
	CurrentID   string            `json:"currentId,omitempty"`
	HistoryOpen bool              `json:"historyOpen"`
}

func (s *Server) listSessions(c *gin.Context) {
	resp := sessionList{
		Sessions:    s.sessions.List(),
		HistoryOpen: s.sessions.HistoryOpen(),
	}
	if cur, ok := s.sessions.Current(); ok {
		resp.CurrentID = cur.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createSession(c *gin.Context) {
	c.JSON(http.StatusCreated, s.sessions.Create())
}

func (s *Server) currentSession(c *gin.Context) {
	cur, ok := s.sessions.Current()
	if !ok {
		respondError(c, http.StatusNotFound, CodeNotFound, errors.New("no current session"))
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (s *Server) toggleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"historyOpen": s.sessions.ToggleHistory()})
}

func checkPatch(p session.Patch) error {
	if p.ClassLevel != nil && !p.ClassLevel.Valid() {
		return fmt.Errorf("class level %d out of range 1-10", *p.ClassLevel)
	}
	if p.Subject != nil && !p.Subject.Valid() {
		return fmt.Errorf("unknown subject %q", *p.Subject)
	}
	if p.Style != nil && !p.Style.Valid() {
		return fmt.Errorf("unknown teaching style %q", *p.Style)
	}
	if p.Lesson != nil {
		return lessons.Validate(*p.Lesson)
	}
	return nil
}

func (s *Server) updateSession(c *gin.Context) {
	id := c.Param("id")
	var p session.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	if err := checkPatch(p); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	if !s.sessions.Update(id, p) {
		respondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("session %q not found", id))
		return
	}

	sess, _ := s.sessions.Get(id)
	// A new topic retitles the session unless the caller set a title.
	if p.Topic != nil && p.Title == nil {
		title := session.GenerateTitle(sess.ClassLevel, sess.Subject, sess.Topic)
		s.sessions.Update(id, session.Patch{Title: &title})
		sess.Title = title
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) selectSession(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.sessions.Select(id)
	if !ok {
		respondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("session %q not found", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": sess,
		"resume":  wizard.ResumeState(sess).String(),
	})
}
