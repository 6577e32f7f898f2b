package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLEventRepo implements EventRepo on top of the SQLite store.
type SQLEventRepo struct {
	db *sql.DB
}

var _ EventRepo = (*SQLEventRepo)(nil)

func (r *SQLEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_request_events
			(timestamp, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns LLM request events, newest first.
func (r *SQLEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	query := `
		SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body
		FROM llm_request_events`
	var args []any
	if opts.Purpose != "" {
		query += " WHERE purpose = ?"
		args = append(args, opts.Purpose)
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		var rec LLMEventRecord
		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose,
			&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
			&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LLMUsageByPurpose aggregates LLM calls grouped by purpose.
func (r *SQLEventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStats, error) {
	return r.usageBy(ctx, "purpose")
}

// LLMUsageByModel aggregates LLM calls grouped by model.
func (r *SQLEventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStats, error) {
	return r.usageBy(ctx, "model")
}

// column is one of two fixed identifiers, never user input.
func (r *SQLEventRepo) usageBy(ctx context.Context, column string) ([]UsageStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+column+`,
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0),
		       COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_request_events
		GROUP BY `+column+`
		ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("llm usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []UsageStats
	for rows.Next() {
		var s UsageStats
		if err := rows.Scan(&s.Key, &s.Calls, &s.Failures, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLEventRepo) AppendLesson(ctx context.Context, data LessonEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lesson_events
			(timestamp, class_level, subject, topic, style, variant, source, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.ClassLevel, data.Subject, data.Topic,
		data.Style, data.Variant, data.Source, data.Reason,
	)
	if err != nil {
		return fmt.Errorf("append lesson event: %w", err)
	}
	return nil
}

// LessonStats counts generated lessons by source and fallback reason.
func (r *SQLEventRepo) LessonStats(ctx context.Context) (LessonStats, error) {
	stats := LessonStats{ByReason: make(map[string]int)}

	rows, err := r.db.QueryContext(ctx, `
		SELECT source, reason, COUNT(*)
		FROM lesson_events
		GROUP BY source, reason`)
	if err != nil {
		return stats, fmt.Errorf("lesson stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source, reason string
		var n int
		if err := rows.Scan(&source, &reason, &n); err != nil {
			return stats, fmt.Errorf("scan lesson stats: %w", err)
		}
		stats.Total += n
		switch source {
		case SourceProvider:
			stats.Provider += n
		case SourceFallback:
			stats.Fallback += n
		}
		if reason != "" {
			stats.ByReason[reason] += n
		}
	}
	return stats, rows.Err()
}
