package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atulsharma648-byte/ASMan/internal/lessons"
	"github.com/atulsharma648-byte/ASMan/internal/logger"
	"github.com/atulsharma648-byte/ASMan/internal/session"
)

var (
	// ErrUnbound means loading was requested before class, subject, topic
	// and style were all selected.
	ErrUnbound = errors.New("lesson parameters not bound")

	// ErrInvalidSelection rejects an unknown class, subject or style, or
	// a blank topic.
	ErrInvalidSelection = errors.New("invalid selection")

	ErrUnknownSession = errors.New("unknown session")
)

// Generator produces lessons. *lessons.Service satisfies it.
type Generator interface {
	GenerateLesson(ctx context.Context, req lessons.GenerationRequest) lessons.LessonContent
}

// Selection is what the user has picked so far.
type Selection struct {
	ClassLevel lessons.ClassLevel
	Subject    lessons.Subject
	Topic      string
	Style      lessons.Style
	Variant    lessons.Variant
}

// Request returns the generation request, and false while any of class,
// subject, topic or style is unbound.
func (s Selection) Request() (lessons.GenerationRequest, bool) {
	req := lessons.GenerationRequest{
		ClassLevel: s.ClassLevel,
		Subject:    s.Subject,
		Topic:      s.Topic,
		Style:      s.Style,
		Variant:    s.Variant,
	}
	if req.Variant == "" {
		req.Variant = lessons.VariantStandard
	}
	return req, req.Validate() == nil
}

// Wizard orchestrates the lesson flow over the session store and the
// lesson pipeline. It is not safe for concurrent use; the only method
// that may run off the owning goroutine is Generate.
type Wizard struct {
	state    State
	sel      Selection
	lesson   *lessons.LessonContent
	pending  *lessons.GenerationRequest
	err      error
	rev      uint64
	gen      Generator
	sessions *session.Store
	log      *logger.Logger
}

// New creates a wizard on the dashboard.
func New(gen Generator, sessions *session.Store, log *logger.Logger) *Wizard {
	if log == nil {
		log = logger.Nop()
	}
	return &Wizard{
		state:    StateDashboard,
		sel:      Selection{Variant: lessons.VariantStandard},
		gen:      gen,
		sessions: sessions,
		log:      log,
	}
}

func (w *Wizard) State() State { return w.state }

// Revision counts completed transitions, including ones that land on the
// same state.
func (w *Wizard) Revision() uint64 { return w.rev }

func (w *Wizard) Selection() Selection { return w.sel }

// Lesson returns the lesson shown by the player.
func (w *Wizard) Lesson() (lessons.LessonContent, bool) {
	if w.lesson == nil {
		return lessons.LessonContent{}, false
	}
	return *w.lesson, true
}

// Err returns the failure that led to the error state.
func (w *Wizard) Err() error { return w.err }

// Sessions exposes the session store.
func (w *Wizard) Sessions() *session.Store { return w.sessions }

// Pending returns the request being generated while loading.
func (w *Wizard) Pending() (lessons.GenerationRequest, bool) {
	if w.state != StateLoading || w.pending == nil {
		return lessons.GenerationRequest{}, false
	}
	return *w.pending, true
}

func (w *Wizard) fire(ev Event) error {
	next, err := Transition(w.state, ev)
	if err != nil {
		return err
	}
	w.log.Debug("wizard transition", "from", w.state, "event", ev, "to", next)
	w.state = next
	w.rev++
	return nil
}

func (w *Wizard) patchCurrent(p session.Patch) {
	if cur, ok := w.sessions.Current(); ok {
		w.sessions.Update(cur.ID, p)
	}
}

// NewChat creates a session, clears the selection and opens class
// selection.
func (w *Wizard) NewChat() error {
	if err := w.fire(EventNewChat); err != nil {
		return err
	}
	w.sessions.Create()
	w.reset()
	return nil
}

// StartSelection opens class selection from the dashboard without creating
// a session.
func (w *Wizard) StartSelection() error {
	if err := w.fire(EventStartSelection); err != nil {
		return err
	}
	w.reset()
	return nil
}

func (w *Wizard) reset() {
	w.sel = Selection{Variant: lessons.VariantStandard}
	w.lesson = nil
	w.pending = nil
	w.err = nil
}

func (w *Wizard) OpenUpload() error { return w.fire(EventOpenUpload) }

func (w *Wizard) FinishUpload() error { return w.fire(EventUploadDone) }

func (w *Wizard) SelectClass(c lessons.ClassLevel) error {
	if !c.Valid() {
		return fmt.Errorf("%w: class %d", ErrInvalidSelection, c)
	}
	if err := w.fire(EventSelectClass); err != nil {
		return err
	}
	w.sel.ClassLevel = c
	w.patchCurrent(session.Patch{ClassLevel: &c})
	return nil
}

func (w *Wizard) SelectSubject(s lessons.Subject) error {
	if !s.Valid() {
		return fmt.Errorf("%w: subject %q", ErrInvalidSelection, s)
	}
	if err := w.fire(EventSelectSubject); err != nil {
		return err
	}
	w.sel.Subject = s
	w.patchCurrent(session.Patch{Subject: &s})
	return nil
}

// SubmitTopic binds the topic and retitles the current session.
func (w *Wizard) SubmitTopic(topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("%w: empty topic", ErrInvalidSelection)
	}
	if err := w.fire(EventSubmitTopic); err != nil {
		return err
	}
	w.sel.Topic = topic
	title := session.GenerateTitle(w.sel.ClassLevel, w.sel.Subject, topic)
	w.patchCurrent(session.Patch{Topic: &topic, Title: &title})
	return nil
}

// SelectStyle binds the style and enters loading.
func (w *Wizard) SelectStyle(s lessons.Style) error {
	if !s.Valid() {
		return fmt.Errorf("%w: style %q", ErrInvalidSelection, s)
	}
	sel := w.sel
	sel.Style = s
	return w.begin(EventSelectStyle, sel)
}

// ChangeStyle regenerates the shown lesson with another style.
func (w *Wizard) ChangeStyle(s lessons.Style) error {
	if !s.Valid() {
		return fmt.Errorf("%w: style %q", ErrInvalidSelection, s)
	}
	sel := w.sel
	sel.Style = s
	return w.begin(EventChangeStyle, sel)
}

// ToggleGlobal regenerates the shown lesson with the other variant.
func (w *Wizard) ToggleGlobal() error {
	sel := w.sel
	if sel.Variant.IsGlobal() {
		sel.Variant = lessons.VariantStandard
	} else {
		sel.Variant = lessons.VariantGlobal
	}
	return w.begin(EventToggleGlobal, sel)
}

// Retry re-enters loading with the last parameters when they are still
// bound, and returns to the dashboard otherwise.
func (w *Wizard) Retry() error {
	if w.state != StateError {
		return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, EventRetry, w.state)
	}
	if _, ok := w.sel.Request(); !ok {
		return w.fire(EventBack)
	}
	return w.begin(EventRetry, w.sel)
}

// begin enters loading for sel. Loading is only reachable with every
// parameter bound.
func (w *Wizard) begin(ev Event, sel Selection) error {
	req, ok := sel.Request()
	if !ok {
		if _, err := Transition(w.state, ev); err != nil {
			return err
		}
		return ErrUnbound
	}
	if err := w.fire(ev); err != nil {
		return err
	}
	w.sel = sel
	w.pending = &req
	w.err = nil
	return nil
}

// Complete resolves loading with a generated lesson and stores it in the
// current session.
func (w *Wizard) Complete(lesson lessons.LessonContent) error {
	req, ok := w.Pending()
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrIllegalTransition, EventLessonReady, w.state)
	}
	if err := w.fire(EventLessonReady); err != nil {
		return err
	}
	w.pending = nil
	w.lesson = &lesson
	global := req.Variant.IsGlobal()
	w.patchCurrent(session.Patch{
		Lesson:           &lesson,
		Style:            &req.Style,
		HasGlobalVersion: &global,
	})
	return nil
}

// Fail resolves loading with an error.
func (w *Wizard) Fail(err error) error {
	if ferr := w.fire(EventPipelineFailed); ferr != nil {
		return ferr
	}
	w.pending = nil
	w.err = err
	w.log.Error("lesson generation failed", "error", err)
	return nil
}

// Generate runs the pipeline for req. Anything unexpected, including a
// panic or a lesson that breaks the invariants, comes back as an error.
// It only reads the generator and may run on another goroutine.
func (w *Wizard) Generate(ctx context.Context, req lessons.GenerationRequest) (lesson lessons.LessonContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lesson generation panicked: %v", r)
		}
	}()
	lesson = w.gen.GenerateLesson(ctx, req)
	if verr := lessons.Validate(lesson); verr != nil {
		return lessons.LessonContent{}, verr
	}
	return lesson, nil
}

// Run resolves the pending load synchronously.
func (w *Wizard) Run(ctx context.Context) error {
	req, ok := w.Pending()
	if !ok {
		return fmt.Errorf("%w: nothing is loading", ErrIllegalTransition)
	}
	lesson, err := w.Generate(ctx, req)
	if err != nil {
		return w.Fail(err)
	}
	return w.Complete(lesson)
}

func (w *Wizard) Back() error { return w.fire(EventBack) }

// SelectSession makes a history entry current. A session with a lesson
// opens in the player; otherwise the wizard resumes at the first step
// still missing.
func (w *Wizard) SelectSession(id string) error {
	sess, ok := w.sessions.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	sel := Selection{
		ClassLevel: sess.ClassLevel,
		Subject:    sess.Subject,
		Topic:      sess.Topic,
		Style:      sess.Style,
		Variant:    lessons.VariantStandard,
	}
	if sess.HasGlobalVersion {
		sel.Variant = lessons.VariantGlobal
	}

	ev := resumeEvent(sess)
	if err := w.fire(ev); err != nil {
		return err
	}
	w.sessions.Select(id)
	w.reset()
	w.sel = sel
	w.lesson = sess.Lesson
	return nil
}

func resumeEvent(sess session.Session) Event {
	switch {
	case sess.HasLesson():
		return EventResumeLesson
	case !sess.ClassLevel.Valid():
		return EventResumeClass
	case !sess.Subject.Valid():
		return EventResumeSubject
	case strings.TrimSpace(sess.Topic) == "":
		return EventResumeTopic
	}
	return EventResumeStyle
}

// ResumeState is the screen a session opens on when picked from the
// history.
func ResumeState(sess session.Session) State {
	next, _ := Transition(StateDashboard, resumeEvent(sess))
	return next
}
