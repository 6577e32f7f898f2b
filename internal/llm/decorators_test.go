package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsharma648-byte/ASMan/internal/store"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first", Usage: Usage{InputTokens: 10}},
		MockResponse{Text: "second"},
	)

	r1, err := mock.Generate(t.Context(), UserPrompt("sys", "a"))
	require.NoError(t, err)
	assert.Equal(t, "first", r1.Text)
	assert.Equal(t, 10, r1.Usage.InputTokens)

	r2, err := mock.Generate(t.Context(), UserPrompt("sys", "b"))
	require.NoError(t, err)
	assert.Equal(t, "second", r2.Text)

	_, err = mock.Generate(t.Context(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: "ok"},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(t.Context(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	mock := NewMockProvider(down, down, down)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(t.Context(), Request{})
	require.Error(t, err)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_NonTransientNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad")}},
		{"canceled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Text: "late"})
			p := WithRetry(mock, retryConfig())

			_, err := p.Generate(t.Context(), Request{})
			require.Error(t, err)
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithRetry(mock, RetryConfig{})

	_, err := p.Generate(t.Context(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestTimeout_ResolvesStuckCall(t *testing.T) {
	mock := NewMockProvider(MockResponse{Block: true})
	p := WithTimeout(mock, 20*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := p.Generate(context.Background(), Request{})
		done <- err
	}()

	select {
	case err := <-done:
		var unavail *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavail)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout decorator did not resolve the call")
	}
}

func TestTimeout_NonPositiveIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))
}

func TestLogging_RecordsEvent(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := NewMockProvider(
		MockResponse{Text: "{}", Usage: Usage{InputTokens: 12, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", st.EventRepo(), nil)

	ctx := WithPurpose(t.Context(), PurposeLesson)
	_, err = p.Generate(ctx, UserPrompt("sys", "hello"))
	require.NoError(t, err)
	_, err = p.Generate(ctx, UserPrompt("sys", "again"))
	require.Error(t, err)

	events, err := st.EventRepo().QueryLLMEvents(t.Context(), store.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.False(t, events[0].Success)
	assert.NotEmpty(t, events[0].ErrorMessage)
	assert.True(t, events[1].Success)
	assert.Equal(t, PurposeLesson, events[1].Purpose)
	assert.Equal(t, 12, events[1].InputTokens)
	assert.Contains(t, events[1].RequestBody, "[system]\nsys")
}

func TestLogging_RecordsTimedOutCall(t *testing.T) {
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := NewMockProvider(MockResponse{Block: true})
	p := WithTimeout(WithRetry(WithLogging(mock, "mock", st.EventRepo(), nil), retryConfig()), 20*time.Millisecond)

	_, err = p.Generate(WithPurpose(t.Context(), PurposeLesson), UserPrompt("sys", "hello"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	events, err := st.EventRepo().QueryLLMEvents(t.Context(), store.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, events, "timed-out call was not recorded")

	first := events[len(events)-1]
	assert.False(t, first.Success)
	assert.Contains(t, first.ErrorMessage, "deadline exceeded")
	assert.Equal(t, PurposeLesson, first.Purpose)
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, PurposeUpload, PurposeFrom(WithPurpose(context.Background(), PurposeUpload)))
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	require.True(t, ok)
	assert.InDelta(t, 0.75, cost, 1e-9)

	_, ok = EstimateCost("unknown-model", 1, 1)
	assert.False(t, ok)
}
