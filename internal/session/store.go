package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
)

// Store is the in-memory, most-recent-first lesson history. Sessions are
// never deleted. The current session is tracked by id, so the current view
// and the list can never disagree.
type Store struct {
	mu          sync.RWMutex
	sessions    []*Session
	currentID   string
	historyOpen bool
	now         func() time.Time
}

// New creates an empty store. A nil clock uses time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// NewWithDemo creates a store seeded with the demo history.
func NewWithDemo(now func() time.Time) *Store {
	s := New(now)
	s.seedDemo()
	return s
}

func (s *Store) seedDemo() {
	now := s.now()
	demo := []Session{
		{
			ID: "demo-1", Title: "Addition with Fun - Class 2 Math",
			ClassLevel: 2, Subject: lessons.SubjectMathematics, Topic: "Addition", Style: lessons.StyleChinese,
			Timestamp: now.Add(-30 * time.Minute),
		},
		{
			ID: "demo-2", Title: "How Plants Grow - Class 5 Science",
			ClassLevel: 5, Subject: lessons.SubjectScience, Topic: "Plant Growth", Style: lessons.StyleEuropean,
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID: "demo-3", Title: "Animal Sounds - Class 3 English",
			ClassLevel: 3, Subject: lessons.SubjectEnglish, Topic: "Animals", Style: lessons.StyleAmerican,
			Timestamp: now.Add(-24 * time.Hour),
		},
	}
	for i := range demo {
		s.sessions = append(s.sessions, &demo[i])
	}
}

// Create prepends a new placeholder session, makes it current and closes
// the history view.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ID:        "session-" + uuid.NewString(),
		Title:     PlaceholderTitle,
		Timestamp: s.now(),
	}
	s.sessions = slices.Insert(s.sessions, 0, sess)
	s.currentID = sess.ID
	s.historyOpen = false
	return *sess
}

// Update merges p into the session with the given id. It returns false,
// changing nothing, when no such session exists.
func (s *Store) Update(id string, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return false
	}
	p.apply(sess)
	return true
}

// Select makes id the current session and closes the history view.
// The caller decides between the wizard and the player with HasLesson.
func (s *Store) Select(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(id)
	if sess == nil {
		return Session{}, false
	}
	s.currentID = id
	s.historyOpen = false
	return *sess, true
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess := s.find(id); sess != nil {
		return *sess, true
	}
	return Session{}, false
}

// Current returns the current session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess := s.find(s.currentID); sess != nil {
		return *sess, true
	}
	return Session{}, false
}

// List returns all sessions, most recent first.
func (s *Store) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = *sess
	}
	return out
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ToggleHistory opens or closes the history view and returns the new state.
func (s *Store) ToggleHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyOpen = !s.historyOpen
	return s.historyOpen
}

// HistoryOpen reports whether the history view is open.
func (s *Store) HistoryOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historyOpen
}

// find must be called with mu held.
func (s *Store) find(id string) *Session {
	if id == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}
