package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atulsharma648-byte/ASMan/internal/logger"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

// LoggingProvider is a decorator that records every request in the event
// log and mirrors failures to the structured logger.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with event logging. A nil repo skips the
// event log; a nil logger discards log lines.
func WithLogging(p Provider, name string, repo store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingProvider{inner: p, name: name, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"provider", l.name,
			"model", data.Model,
			"purpose", purpose,
			"latency_ms", data.LatencyMs,
			"error", err,
		)
	} else {
		l.log.Debug("llm request",
			"provider", l.name,
			"model", data.Model,
			"purpose", purpose,
			"latency_ms", data.LatencyMs,
			"output_tokens", data.OutputTokens,
		)
	}

	// A timed-out call arrives with an expired ctx; the event still has to
	// be recorded.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Warn("failed to log LLM request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.JSON {
		b.WriteString("[format: json]\n")
	}

	return b.String()
}
