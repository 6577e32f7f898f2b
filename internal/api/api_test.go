package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/llm"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/store"
)

const flatLesson = `{
	"explanation": "Addition joins two groups into one.",
	"questions": [{"question": "What is addition?", "options": ["joining", "taking away"], "correct": 0}],
	"activity": "Count bangles with a partner.",
	"globalMethod": "Drills first.",
	"hindiTranslation": {"addition": "जोड़", "groups": "समूह"}
}`

type testServer struct {
	srv      *Server
	sessions *session.Store
	events   *store.SQLEventRepo
}

func newTestServer(t *testing.T, p llm.Provider) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo := st.EventRepo()
	if p != nil {
		p = llm.WithLogging(p, "mock", repo, nil)
	}
	sessions := session.NewWithDemo(func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) })
	svc := lessons.NewService(lessons.NewClient(p, lessons.DefaultConfig()), repo, nil)

	srv := New(Options{
		Lessons:     svc,
		Sessions:    sessions,
		Events:      repo,
		Model:       "mock",
		CORSOrigins: []string{"http://localhost:*"},
	})
	return testServer{srv: srv, sessions: sessions, events: repo}
}

func (ts testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorEnvelope](t, rec).Error.Code
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestGenerateLesson_FallbackWithoutProvider(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/lessons", map[string]any{
		"classLevel":    2,
		"subject":       "mathematics",
		"topic":         "Addition",
		"teachingStyle": "chinese",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[lessonResponse](t, rec)
	require.NoError(t, lessons.Validate(resp.Lesson))
	assert.Contains(t, resp.Lesson.Explanation, "Class 2")
	assert.Equal(t, lessons.VariantStandard, resp.Variant)
	assert.Equal(t, "english", resp.Language)
	assert.Nil(t, resp.Session)

	stats, err := ts.events.LessonStats(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Fallback)
}

func TestGenerateLesson_TrimsTopic(t *testing.T) {
	ts := newTestServer(t, nil)
	sess := ts.sessions.Create()

	rec := ts.do(t, http.MethodPost, "/api/v1/lessons", map[string]any{
		"classLevel":    2,
		"subject":       "mathematics",
		"topic":         "  Addition ",
		"teachingStyle": "chinese",
		"sessionId":     sess.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[lessonResponse](t, rec)
	hi, ok := resp.Lesson.HindiTranslation.Lookup("Addition")
	require.True(t, ok, "glossary keyed by the trimmed topic")
	assert.Equal(t, "Addition (विषय)", hi)

	stored, ok := ts.sessions.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "Addition", stored.Topic)
	assert.Equal(t, "Addition - Class 2 Mathematics", stored.Title)
}

func TestGenerateLesson_ProviderHindiIntoSession(t *testing.T) {
	ts := newTestServer(t, llm.NewMockProvider(llm.MockResponse{Text: flatLesson, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20}}))
	sess := ts.sessions.Create()

	rec := ts.do(t, http.MethodPost, "/api/v1/lessons", map[string]any{
		"classLevel":      2,
		"subject":         "Mathematics",
		"topic":           "Addition",
		"teachingStyle":   "Chinese Style",
		"isGlobalVersion": true,
		"language":        "hindi",
		"sessionId":       sess.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[lessonResponse](t, rec)
	assert.Equal(t, "जोड़ joins two समूह into one.", resp.Lesson.Explanation)
	assert.True(t, resp.Lesson.IsGlobalVersion)
	assert.Equal(t, lessons.VariantGlobal, resp.Variant)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "Addition - Class 2 Mathematics", resp.Session.Title)

	stored, ok := ts.sessions.Get(sess.ID)
	require.True(t, ok)
	require.True(t, stored.HasLesson())
	assert.True(t, stored.HasGlobalVersion)
	assert.Equal(t, "Addition joins two groups into one.", stored.Lesson.Explanation, "the session keeps the canonical English lesson")
}

func TestGenerateLesson_BadInput(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"malformed json", `{"classLevel":`, CodeBadRequest},
		{"unknown subject", map[string]any{"classLevel": 2, "subject": "music", "topic": "x", "teachingStyle": "chinese"}, CodeInvalidRequest},
		{"unknown style", map[string]any{"classLevel": 2, "subject": "art", "topic": "x", "teachingStyle": "korean"}, CodeInvalidRequest},
		{"class out of range", map[string]any{"classLevel": 11, "subject": "art", "topic": "x", "teachingStyle": "chinese"}, CodeInvalidRequest},
		{"blank topic", map[string]any{"classLevel": 2, "subject": "art", "topic": "  ", "teachingStyle": "chinese"}, CodeInvalidRequest},
		{"unknown language", map[string]any{"classLevel": 2, "subject": "art", "topic": "x", "teachingStyle": "chinese", "language": "tamil"}, CodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/lessons", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/lessons", map[string]any{
		"classLevel": 2, "subject": "art", "topic": "x", "teachingStyle": "chinese", "sessionId": "nope",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, errorCode(t, rec))
}

func TestAnalyzeUpload(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/uploads/analyze", map[string]any{
		"name": "leaf.png", "type": "image/png", "size": 2048, "classLevel": 5, "subject": "science",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[struct {
		File     lessons.UploadDescriptor `json:"file"`
		Analysis string                   `json:"analysis"`
	}](t, rec)
	assert.True(t, strings.HasPrefix(resp.File.ID, "file-"))
	assert.Contains(t, resp.Analysis, "an image related to Science")
	assert.Contains(t, resp.Analysis, "Class 5")

	rec = ts.do(t, http.MethodPost, "/api/v1/uploads/analyze", map[string]any{
		"name": "big.png", "type": "image/png", "size": lessons.MaxUploadSize + 1, "classLevel": 5, "subject": "science",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/uploads/analyze", map[string]any{
		"name": "a.png", "type": "image/png", "size": 1, "classLevel": 0, "subject": "science",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocalize(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodPost, "/api/v1/localize", map[string]any{
		"language": "hindi",
		"text":     "The cat sat in a category.",
		"glossary": map[string]string{"cat": "बिल्ली"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[map[string]string](t, rec)
	assert.Equal(t, "The बिल्ली sat in a category.", resp["text"])

	rec = ts.do(t, http.MethodPost, "/api/v1/localize", map[string]any{"language": "english", "text": "cat", "glossary": map[string]string{"cat": "बिल्ली"}})
	assert.Equal(t, "cat", decode[map[string]string](t, rec)["text"])

	rec = ts.do(t, http.MethodPost, "/api/v1/localize", map[string]any{"language": "hindi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/localize", map[string]any{"language": "hindi", "glossary": []string{"x"}, "text": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessions(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions", nil)
	list := decode[sessionList](t, rec)
	require.Len(t, list.Sessions, 3)
	assert.Empty(t, list.CurrentID)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[session.Session](t, rec)
	assert.Equal(t, session.PlaceholderTitle, created.Title)

	rec = ts.do(t, http.MethodPatch, "/api/v1/sessions/"+created.ID, map[string]any{"classLevel": 4, "subject": "english"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPatch, "/api/v1/sessions/"+created.ID, map[string]any{"topic": "Rhymes"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[session.Session](t, rec)
	assert.Equal(t, "Rhymes - Class 4 English", updated.Title)

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions/current", nil)
	assert.Equal(t, created.ID, decode[session.Session](t, rec).ID)

	rec = ts.do(t, http.MethodPatch, "/api/v1/sessions/"+created.ID, map[string]any{"teachingStyle": "korean"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPatch, "/api/v1/sessions/"+created.ID, map[string]any{"lessonContent": map[string]any{"explanation": "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPatch, "/api/v1/sessions/nope", map[string]any{"topic": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/"+created.ID+"/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "style-selection", decode[map[string]any](t, rec)["resume"])

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/demo-3/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cur, _ := ts.sessions.Current()
	assert.Equal(t, "demo-3", cur.ID)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/nope/select", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/history/toggle", nil)
	assert.Equal(t, true, decode[map[string]bool](t, rec)["historyOpen"])
}

func TestStats(t *testing.T) {
	ts := newTestServer(t, llm.NewMockProvider(llm.MockResponse{Text: flatLesson, Usage: llm.Usage{InputTokens: 10, OutputTokens: 20}}))

	body := map[string]any{"classLevel": 2, "subject": "mathematics", "topic": "Addition", "teachingStyle": "american"}
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/lessons", body).Code)
	// The mock queue is now empty, so the second call falls back.
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/api/v1/lessons", body).Code)

	rec := ts.do(t, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[statsResponse](t, rec)

	assert.True(t, resp.Configured)
	assert.Equal(t, 2, resp.Lessons.Total)
	assert.Equal(t, 1, resp.Lessons.Provider)
	assert.Equal(t, 1, resp.Lessons.Fallback)
	assert.Equal(t, 1, resp.Lessons.ByReason[lessons.ReasonProviderFailure])

	require.Len(t, resp.ByPurpose, 1)
	assert.Equal(t, llm.PurposeLesson, resp.ByPurpose[0].Key)
	assert.Equal(t, 2, resp.ByPurpose[0].Calls)
	assert.Equal(t, 1, resp.ByPurpose[0].Failures)
	assert.Equal(t, 10, resp.ByPurpose[0].InputTokens)
}

func TestStats_NoEventLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(Options{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/lessons", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
