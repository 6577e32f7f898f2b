package lessons

import (
	"context"
	"errors"
	"strings"

	"github.com/atulsharma648-byte/ASMan/internal/logger"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

// Fallback reasons recorded in the event log.
const (
	ReasonInvalidRequest  = "invalid-request"
	ReasonUnavailable     = "unavailable"
	ReasonProviderFailure = "provider-failure"
)

// Service is the lesson content pipeline.
type Service struct {
	client *Client
	events store.EventRepo
	log    *logger.Logger
}

// NewService creates the pipeline. events and log may be nil.
func NewService(client *Client, events store.EventRepo, log *logger.Logger) *Service {
	if client == nil {
		client = NewClient(nil, DefaultConfig())
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{client: client, events: events, log: log}
}

// Configured reports whether lessons can come from a provider.
func (s *Service) Configured() bool {
	return s.client.Configured()
}

// GenerateLesson always returns a lesson that passes Validate. Provider
// problems and malformed responses are absorbed by the fallback.
func (s *Service) GenerateLesson(ctx context.Context, req GenerationRequest) LessonContent {
	log := s.log.With("class", int(req.ClassLevel), "subject", req.Subject, "style", req.Style, "variant", req.Variant)

	reason := ""
	if err := req.Validate(); err != nil {
		log.Warn("lesson request failed precondition", "error", err)
		reason = ReasonInvalidRequest
	} else {
		out := s.client.Generate(ctx, BuildInstruction(req), req.Variant)
		switch out.Kind {
		case OutcomeUnavailable:
			reason = ReasonUnavailable
		case OutcomeFailure:
			log.Warn("lesson provider failed", "error", out.Err)
			reason = ReasonProviderFailure
		case OutcomeRaw:
			lesson, shape, err := normalize(out.Text, req.Variant)
			if err == nil {
				if shape != req.Variant.ExpectedShape() {
					log.Debug("provider answered with the other lesson shape", "shape", shape)
				}
				s.record(ctx, req, store.SourceProvider, "")
				return lesson
			}
			var nerr *NormalizeError
			if errors.As(err, &nerr) {
				reason = string(nerr.Stage)
			}
			log.Warn("lesson response rejected", "stage", reason, "error", err)
		}
	}

	log.Info("using fallback lesson", "reason", reason)
	s.record(ctx, req, store.SourceFallback, reason)
	return Fallback(req)
}

func (s *Service) record(ctx context.Context, req GenerationRequest, source, reason string) {
	if s.events == nil {
		return
	}
	err := s.events.AppendLesson(ctx, store.LessonEventData{
		ClassLevel: int(req.ClassLevel),
		Subject:    string(req.Subject),
		Topic:      req.Topic,
		Style:      string(req.Style),
		Variant:    string(req.Variant),
		Source:     source,
		Reason:     reason,
	})
	if err != nil {
		s.log.Warn("failed to log lesson event", "error", err)
	}
}

// AnalyzeUpload returns a short teacher-facing note about an upload. It
// never fails: without a provider, or on any provider problem, a fixed
// encouraging sentence is returned.
func (s *Service) AnalyzeUpload(ctx context.Context, u UploadDescriptor, class ClassLevel, subject Subject) string {
	out := s.client.Describe(ctx, uploadSystemPrompt, uploadPrompt(u, class, subject))
	if out.Kind == OutcomeRaw {
		if text := strings.TrimSpace(out.Text); text != "" {
			return text
		}
	}
	if out.Kind == OutcomeFailure {
		s.log.Warn("upload analysis failed", "file", u.Name, "error", out.Err)
	}
	return uploadFallback(u, class, subject)
}
