// Package api exposes the lesson pipeline, the session history and the
// localization overlay over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/logger"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

// Options wires the server to its collaborators. Events may be nil, in
// which case /api/v1/stats reports 503.
type Options struct {
	Lessons     *lessons.Service
	Sessions    *session.Store
	Events      *store.SQLEventRepo
	Model       string
	CORSOrigins []string
	Logger      *logger.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	lessons  *lessons.Service
	sessions *session.Store
	events   *store.SQLEventRepo
	model    string
	log      *logger.Logger
	engine   *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.New(nil)
	}
	s := &Server{
		lessons:  opts.Lessons,
		sessions: sessions,
		events:   opts.Events,
		model:    opts.Model,
		log:      log,
	}
	if s.lessons == nil {
		s.lessons = lessons.NewService(nil, opts.Events, log)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log), corsMiddleware(opts.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	v1 := r.Group("/api/v1")
	{
		v1.POST("/lessons", s.generateLesson)
		v1.POST("/uploads/analyze", s.analyzeUpload)
		v1.POST("/localize", s.localize)

		v1.GET("/sessions", s.listSessions)
		v1.POST("/sessions", s.createSession)
		v1.GET("/sessions/current", s.currentSession)
		v1.POST("/sessions/history/toggle", s.toggleHistory)
		v1.PATCH("/sessions/:id", s.updateSession)
		v1.POST("/sessions/:id/select", s.selectSession)

		v1.GET("/stats", s.stats)
	}

	s.engine = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error {
	s.log.Info("HTTP API listening", "addr", addr, "provider_configured", s.lessons.Configured())
	return s.engine.Run(addr)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Requested-With"},
		AllowWildcard: true,
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}
