package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestQueryLLMEvents_NewestFirst(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := t.Context()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m1", Purpose: "lesson", Success: true, InputTokens: 10,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m1", Purpose: "upload-analysis", Success: false, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "upload-analysis", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)
	assert.Equal(t, "lesson", events[1].Purpose)
	assert.Equal(t, 10, events[1].InputTokens)
	assert.Greater(t, events[0].ID, events[1].ID)
}

func TestQueryLLMEvents_LimitAndPurpose(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := t.Context()

	for range 3 {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "lesson", Success: true}))
	}
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "upload-analysis", Success: true}))

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	lessons, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson"})
	require.NoError(t, err)
	assert.Len(t, lessons, 3)
}

func TestLLMUsage(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := t.Context()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "a", Purpose: "lesson", Success: true, InputTokens: 5, OutputTokens: 7, LatencyMs: 100}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "a", Purpose: "lesson", Success: false, LatencyMs: 300}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Model: "b", Purpose: "upload-analysis", Success: true, InputTokens: 1}))

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, UsageStats{Key: "lesson", Calls: 2, Failures: 1, InputTokens: 5, OutputTokens: 7, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "b", byModel[1].Key)
	assert.Equal(t, 1, byModel[1].Calls)
}

func TestLessonStats(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()
	ctx := t.Context()

	stats, err := repo.LessonStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	require.NoError(t, repo.AppendLesson(ctx, LessonEventData{ClassLevel: 5, Subject: "science", Topic: "Plants", Style: "european", Variant: "standard", Source: SourceProvider}))
	require.NoError(t, repo.AppendLesson(ctx, LessonEventData{ClassLevel: 5, Subject: "science", Topic: "Plants", Style: "european", Variant: "global", Source: SourceFallback, Reason: "unavailable"}))
	require.NoError(t, repo.AppendLesson(ctx, LessonEventData{ClassLevel: 2, Subject: "mathematics", Topic: "Addition", Style: "chinese", Variant: "standard", Source: SourceFallback, Reason: "parse"}))

	stats, err = repo.LessonStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Provider)
	assert.Equal(t, 2, stats.Fallback)
	assert.Equal(t, map[string]int{"unavailable": 1, "parse": 1}, stats.ByReason)
}

func TestOpen_SeparateMemoryStores(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	require.NoError(t, a.EventRepo().AppendLLMRequest(t.Context(), LLMRequestEventData{Model: "m", Purpose: "lesson", Success: true}))

	events, err := b.EventRepo().QueryLLMEvents(t.Context(), QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)
}
