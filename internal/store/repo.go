package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // optional purpose filter for LLM events
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStats aggregates LLM usage for one purpose or model.
type UsageStats struct {
	Key          string `json:"key"`
	Calls        int    `json:"calls"`
	Failures     int    `json:"failures"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
	AvgLatencyMs int64  `json:"avgLatencyMs"`
}

// Lesson sources recorded by the generation pipeline.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// LessonEventData records the outcome of one lesson generation.
type LessonEventData struct {
	ClassLevel int
	Subject    string
	Topic      string
	Style      string
	Variant    string
	Source     string // SourceProvider or SourceFallback
	Reason     string // why the fallback was used; empty for provider lessons
}

// LessonStats summarizes lesson generation outcomes.
type LessonStats struct {
	Total    int            `json:"total"`
	Provider int            `json:"provider"`
	Fallback int            `json:"fallback"`
	ByReason map[string]int `json:"byReason"`
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendLesson(ctx context.Context, data LessonEventData) error
}
