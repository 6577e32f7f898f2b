package lessons

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsharma648-byte/ASMan/internal/llm"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

var additionReq = GenerationRequest{
	ClassLevel: 2, Subject: SubjectMathematics, Topic: "Addition", Style: StyleChinese, Variant: VariantStandard,
}

func newTestService(t *testing.T, p llm.Provider) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(NewClient(p, DefaultConfig()), st.EventRepo(), nil), st
}

func threeQuestionFlat() string {
	return "```json\n" + `{
		"explanation": "Addition joins groups.",
		"questions": [
			{"question": "1+1?", "options": ["1", "2"], "correct": 1},
			{"question": "2+2?", "options": ["4", "5"], "correct": 0},
			{"question": "3+3?", "options": ["5", "6"], "correct": 1}
		],
		"activity": "Count bangles.",
		"globalMethod": "Drills.",
		"hindiTranslation": {"addition": "जोड़"}
	}` + "\n```"
}

func TestService_ProviderLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: threeQuestionFlat()})
	svc, st := newTestService(t, mock)

	lesson := svc.GenerateLesson(t.Context(), additionReq)

	assert.Equal(t, "Addition joins groups.", lesson.Explanation)
	assert.Len(t, lesson.Questions, 3)
	require.Equal(t, 1, mock.CallCount())

	req := mock.Calls[0]
	assert.True(t, req.JSON)
	assert.Equal(t, SystemInstruction(VariantStandard), req.System)
	assert.Equal(t, BuildInstruction(additionReq), req.Messages[0].Content)

	stats, err := st.EventRepo().LessonStats(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Provider)
	assert.Equal(t, 0, stats.Fallback)
}

func TestService_UnavailableUsesFallback(t *testing.T) {
	svc, st := newTestService(t, nil)
	assert.False(t, svc.Configured())

	lesson := svc.GenerateLesson(t.Context(), additionReq)

	require.NoError(t, Validate(lesson))
	assert.Contains(t, lesson.Explanation, "Addition")
	assert.Contains(t, lesson.Explanation, "Class 2")
	assert.Len(t, lesson.Questions, 3)
	_, ok := lesson.HindiTranslation.Lookup("Addition")
	assert.True(t, ok)

	stats, err := st.EventRepo().LessonStats(t.Context())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{ReasonUnavailable: 1}, stats.ByReason)
}

func TestService_GlobalUnavailable(t *testing.T) {
	svc, _ := newTestService(t, nil)
	req := additionReq
	req.Variant = VariantGlobal

	lesson := svc.GenerateLesson(t.Context(), req)

	regions := 0
	for _, r := range []string{"China", "Japan", "USA", "Europe", "Singapore", "Finland"} {
		if strings.Contains(lesson.Explanation, r) {
			regions++
		}
	}
	assert.GreaterOrEqual(t, regions, 4)
	assert.True(t, lesson.IsGlobalVersion)
}

func TestService_FallbackReasons(t *testing.T) {
	tests := []struct {
		name   string
		resp   llm.MockResponse
		reason string
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{}}, ReasonProviderFailure},
		{"truncated json", llm.MockResponse{Text: `{"explanation":`}, string(StageParse)},
		{"wrong object", llm.MockResponse{Text: `{"lesson":"x"}`}, string(StageClassify)},
		{"schema violation", llm.MockResponse{Text: `{"explanation":"x","questions":[]}`}, string(StageSchema)},
		{"bad index", llm.MockResponse{Text: `{"explanation":"x","questions":[{"question":"q","options":["a","b"],"correct":9}],"activity":"","globalMethod":"","hindiTranslation":{}}`}, string(StageInvariant)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newTestService(t, llm.NewMockProvider(tt.resp))

			lesson := svc.GenerateLesson(t.Context(), additionReq)

			require.NoError(t, Validate(lesson))
			assert.Len(t, lesson.Questions, 3)
			assert.Contains(t, lesson.Explanation, "Welcome to our Addition lesson")

			stats, err := st.EventRepo().LessonStats(t.Context())
			require.NoError(t, err)
			assert.Equal(t, map[string]int{tt.reason: 1}, stats.ByReason)
		})
	}
}

func TestService_InvalidRequestSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: threeQuestionFlat()})
	svc, _ := newTestService(t, mock)

	req := additionReq
	req.Topic = "   "
	lesson := svc.GenerateLesson(t.Context(), req)

	require.NoError(t, Validate(lesson))
	assert.Equal(t, 0, mock.CallCount())
}

type panicProvider struct{}

func (panicProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	panic("backend exploded")
}

func (panicProvider) ModelID() string { return "panic" }

func TestClient_PanicIsFailure(t *testing.T) {
	c := NewClient(panicProvider{}, DefaultConfig())
	out := c.Generate(t.Context(), "x", VariantStandard)
	assert.Equal(t, OutcomeFailure, out.Kind)
	assert.ErrorContains(t, out.Err, "backend exploded")
}

func TestClient_BlockedProviderResolves(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Millisecond
	c := NewClient(llm.NewMockProvider(llm.MockResponse{Block: true}), cfg)

	out := c.Generate(t.Context(), "x", VariantGlobal)
	assert.Equal(t, OutcomeFailure, out.Kind)
}

func TestClient_Outcomes(t *testing.T) {
	var nilClient *Client
	assert.False(t, nilClient.Configured())

	c := NewClient(nil, DefaultConfig())
	assert.Equal(t, OutcomeUnavailable, c.Generate(t.Context(), "x", VariantStandard).Kind)

	c = NewClient(llm.NewMockProvider(llm.MockResponse{Err: llm.ErrNotConfigured}), DefaultConfig())
	assert.Equal(t, OutcomeUnavailable, c.Generate(t.Context(), "x", VariantStandard).Kind)

	mock := llm.NewMockProvider(llm.MockResponse{Text: "raw"})
	c = NewClient(mock, DefaultConfig())
	out := c.Generate(t.Context(), "x", VariantGlobal)
	assert.Equal(t, OutcomeRaw, out.Kind)
	assert.Equal(t, "raw", out.Text)
	assert.Equal(t, DefaultConfig().GlobalMaxTokens, mock.Calls[0].MaxTokens)
	assert.Equal(t, "mock", c.ModelID())
}

func TestService_AnalyzeUpload(t *testing.T) {
	img := NewUpload("leaf.png", "image/png", 2048, "")
	assert.True(t, strings.HasPrefix(img.ID, "file-"))

	svc, _ := newTestService(t, nil)
	got := svc.AnalyzeUpload(t.Context(), img, 5, SubjectScience)
	assert.Equal(t, "I can see you've uploaded an image related to Science. This looks perfect for creating engaging lessons for Class 5 students!", got)

	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Use the leaf photo for a sorting game.  "})
	svc, st := newTestService(t, mock)
	doc := NewUpload("notes.txt", "text/plain", 10, strings.Repeat("a", 5000))
	got = svc.AnalyzeUpload(t.Context(), doc, 3, SubjectEnglish)
	assert.Equal(t, "Use the leaf photo for a sorting game.", got)

	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Class 3 English")
	assert.Contains(t, prompt, strings.Repeat("a", 2000))
	assert.NotContains(t, prompt, strings.Repeat("a", 2001))

	events, err := st.EventRepo().QueryLLMEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events, "client built on a bare mock has no logging decorator")

	svc, _ = newTestService(t, llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}))
	got = svc.AnalyzeUpload(t.Context(), NewUpload("song.mp3", "audio/mpeg", 10, ""), 1, SubjectArt)
	assert.Contains(t, got, "audio recording related to Art")
}

func TestCheckUpload(t *testing.T) {
	assert.NoError(t, CheckUpload(NewUpload("a.pdf", "application/pdf", 1024, "")))
	assert.ErrorContains(t, CheckUpload(NewUpload("big.png", "image/png", MaxUploadSize+1, "")), "too large")
	assert.ErrorContains(t, CheckUpload(NewUpload("a.exe", "application/x-msdownload", 10, "")), "not supported")
}
