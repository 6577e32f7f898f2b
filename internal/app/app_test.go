package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/localize"
	"github.com/atulsharma648-byte/ASMan/internal/session"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testApp(t *testing.T) (*AppModel, *wizard.Wizard) {
	t.Helper()
	svc := lessons.NewService(nil, nil, nil)
	w := wizard.New(svc, session.NewWithDemo(nil), nil)
	m := newAppModel(Options{Wizard: w, Lessons: svc})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, w
}

func send(m *AppModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func title(m *AppModel) string {
	return m.router.Active().Title()
}

// finishLoading resolves the pending generation the way the async
// command would.
func finishLoading(t *testing.T, m *AppModel, w *wizard.Wizard) {
	t.Helper()
	req, ok := w.Pending()
	require.True(t, ok, "wizard is not loading")
	require.True(t, m.inflight, "generation was not started")
	lesson, err := w.Generate(context.Background(), req)
	m.Update(lessonResultMsg{lesson: lesson, err: err})
}

func TestApp_StartsOnDashboard(t *testing.T) {
	m, w := testApp(t)
	assert.Equal(t, wizard.StateDashboard, w.State())
	assert.Equal(t, "Dashboard", title(m))
}

func TestApp_LessonFlow(t *testing.T) {
	m, w := testApp(t)

	send(m, specialKey(tea.KeyEnter))
	require.Equal(t, wizard.StateClassSelection, w.State())
	assert.Equal(t, "Class", title(m))

	send(m, keyPress('2'))
	require.Equal(t, wizard.StateSubjectSelection, w.State())
	assert.Equal(t, "Subject", title(m))

	send(m, keyPress('1'))
	require.Equal(t, wizard.StateTopicInput, w.State())
	assert.Equal(t, "Topic", title(m))

	// Tab fills the first suggestion for mathematics.
	send(m, specialKey(tea.KeyTab), specialKey(tea.KeyEnter))
	require.Equal(t, wizard.StateStyleSelection, w.State())
	assert.Equal(t, "Addition", w.Selection().Topic)

	send(m, keyPress('1'))
	require.Equal(t, wizard.StateLoading, w.State())
	assert.Equal(t, "Generating", title(m))

	finishLoading(t, m, w)
	require.Equal(t, wizard.StateLessonPlayer, w.State())
	assert.Equal(t, "Lesson", title(m))
	assert.False(t, m.inflight)

	cur, ok := w.Sessions().Current()
	require.True(t, ok)
	assert.True(t, cur.HasLesson())
	assert.Equal(t, lessons.StyleChinese, cur.Style)
	assert.Equal(t, "Addition - Class 2 Mathematics", cur.Title)
}

func TestApp_EmptyTopicStaysOnInput(t *testing.T) {
	m, w := testApp(t)
	send(m, specialKey(tea.KeyEnter), keyPress('2'), keyPress('1'))
	require.Equal(t, wizard.StateTopicInput, w.State())

	send(m, specialKey(tea.KeyEnter))
	assert.Equal(t, wizard.StateTopicInput, w.State())
	assert.Contains(t, m.router.View(80, 20), "Please enter a topic")
}

func TestApp_EscGoesBack(t *testing.T) {
	m, w := testApp(t)
	send(m, specialKey(tea.KeyEnter), keyPress('2'))
	require.Equal(t, wizard.StateSubjectSelection, w.State())

	send(m, specialKey(tea.KeyEscape))
	assert.Equal(t, wizard.StateClassSelection, w.State())
	send(m, specialKey(tea.KeyEscape))
	assert.Equal(t, wizard.StateDashboard, w.State())
	assert.Equal(t, "Dashboard", title(m))

	// Esc on the dashboard is a no-op.
	send(m, specialKey(tea.KeyEscape))
	assert.Equal(t, wizard.StateDashboard, w.State())
}

func walkToPlayer(t *testing.T, m *AppModel, w *wizard.Wizard) {
	t.Helper()
	send(m, specialKey(tea.KeyEnter), keyPress('2'), keyPress('1'),
		specialKey(tea.KeyTab), specialKey(tea.KeyEnter), keyPress('1'))
	finishLoading(t, m, w)
	require.Equal(t, wizard.StateLessonPlayer, w.State())
}

func TestApp_LoadingIgnoresNavigation(t *testing.T) {
	m, w := testApp(t)
	send(m, specialKey(tea.KeyEnter), keyPress('2'), keyPress('1'),
		specialKey(tea.KeyTab), specialKey(tea.KeyEnter), keyPress('1'))
	require.Equal(t, wizard.StateLoading, w.State())

	send(m, specialKey(tea.KeyEscape), ctrlKey('n'), ctrlKey('r'))
	assert.Equal(t, wizard.StateLoading, w.State())
	assert.Equal(t, "Generating", title(m))
	assert.False(t, w.Sessions().HistoryOpen())
}

func TestApp_PlayerToggles(t *testing.T) {
	m, w := testApp(t)
	walkToPlayer(t, m, w)

	send(m, keyPress('h'))
	assert.Equal(t, localize.Hindi, m.env.Language)
	send(m, keyPress('h'))
	assert.Equal(t, localize.English, m.env.Language)

	send(m, keyPress('g'))
	require.Equal(t, wizard.StateLoading, w.State())
	req, _ := w.Pending()
	assert.Equal(t, lessons.VariantGlobal, req.Variant)

	finishLoading(t, m, w)
	lesson, ok := w.Lesson()
	require.True(t, ok)
	assert.True(t, lesson.IsGlobalVersion)
}

func TestApp_ChangeStyleOverlay(t *testing.T) {
	m, w := testApp(t)
	walkToPlayer(t, m, w)

	// The overlay push arrives as a command; deliver it by hand.
	m.Update(runKey(t, m, keyPress('s')))
	require.Equal(t, "Change Style", title(m))

	// Chinese is current and disabled, so 1 does nothing; 2 is Japanese.
	send(m, keyPress('1'))
	assert.Equal(t, wizard.StateLessonPlayer, w.State())
	send(m, keyPress('2'))
	require.Equal(t, wizard.StateLoading, w.State())
	req, _ := w.Pending()
	assert.Equal(t, lessons.StyleJapanese, req.Style)
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_HistoryPanel(t *testing.T) {
	m, w := testApp(t)

	send(m, ctrlKey('r'))
	assert.Equal(t, "History", title(m))
	assert.True(t, w.Sessions().HistoryOpen())

	send(m, specialKey(tea.KeyEscape))
	assert.Equal(t, "Dashboard", title(m))
	assert.False(t, w.Sessions().HistoryOpen())
	assert.Equal(t, wizard.StateDashboard, w.State())
}

func TestApp_HistoryResumesSession(t *testing.T) {
	m, w := testApp(t)

	send(m, ctrlKey('r'), specialKey(tea.KeyEnter))

	// demo-1 has everything but a lesson, so it resumes at style selection.
	assert.Equal(t, wizard.StateStyleSelection, w.State())
	assert.Equal(t, "Teaching Style", title(m))
	assert.False(t, w.Sessions().HistoryOpen())
	cur, ok := w.Sessions().Current()
	require.True(t, ok)
	assert.Equal(t, "demo-1", cur.ID)
}

func TestApp_NewChatShortcut(t *testing.T) {
	m, w := testApp(t)
	before := w.Sessions().Len()

	send(m, ctrlKey('n'))
	assert.Equal(t, wizard.StateClassSelection, w.State())
	assert.Equal(t, before+1, w.Sessions().Len())
}

func TestApp_ViewFrames(t *testing.T) {
	m, _ := testApp(t)
	out := m.render()
	assert.Contains(t, out, "ASMan")
	assert.Contains(t, out, "offline")

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(m.render(), "Terminal too small"))
}

// runKey sends a key to the active screen and returns the message its
// command produces.
func runKey(t *testing.T, m *AppModel, k tea.KeyPressMsg) tea.Msg {
	t.Helper()
	cmd := m.router.Update(k)
	require.NotNil(t, cmd)
	return cmd()
}
