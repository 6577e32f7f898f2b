// Package wizard drives the lesson creation flow as an explicit state
// machine: every move is a (state, event) pair looked up in a fixed table.
package wizard

import (
	"errors"
	"fmt"
)

// State is a wizard screen.
type State int

const (
	StateDashboard State = iota
	StateClassSelection
	StateSubjectSelection
	StateTopicInput
	StateStyleSelection
	StateUpload
	StateLoading
	StateError
	StateLessonPlayer
)

var stateNames = [...]string{
	StateDashboard:        "dashboard",
	StateClassSelection:   "class-selection",
	StateSubjectSelection: "subject-selection",
	StateTopicInput:       "topic-input",
	StateStyleSelection:   "style-selection",
	StateUpload:           "upload",
	StateLoading:          "loading",
	StateError:            "error",
	StateLessonPlayer:     "lesson-player",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event is an input that may move the wizard.
type Event int

const (
	EventNewChat Event = iota
	EventStartSelection
	EventOpenUpload
	EventUploadDone
	EventSelectClass
	EventSelectSubject
	EventSubmitTopic
	EventSelectStyle
	EventLessonReady
	EventPipelineFailed
	EventRetry
	EventBack
	EventChangeStyle
	EventToggleGlobal
	EventResumeClass
	EventResumeSubject
	EventResumeTopic
	EventResumeStyle
	EventResumeLesson
)

var eventNames = [...]string{
	EventNewChat:        "new-chat",
	EventStartSelection: "start-selection",
	EventOpenUpload:     "open-upload",
	EventUploadDone:     "upload-done",
	EventSelectClass:    "select-class",
	EventSelectSubject:  "select-subject",
	EventSubmitTopic:    "submit-topic",
	EventSelectStyle:    "select-style",
	EventLessonReady:    "lesson-ready",
	EventPipelineFailed: "pipeline-failed",
	EventRetry:          "retry",
	EventBack:           "back",
	EventChangeStyle:    "change-style",
	EventToggleGlobal:   "toggle-global",
	EventResumeClass:    "resume-class",
	EventResumeSubject:  "resume-subject",
	EventResumeTopic:    "resume-topic",
	EventResumeStyle:    "resume-style",
	EventResumeLesson:   "resume-lesson",
}

func (e Event) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// ErrIllegalTransition is returned for (state, event) pairs outside the
// transition table. The wizard's state is unchanged.
var ErrIllegalTransition = errors.New("illegal wizard transition")

type edge struct {
	from State
	on   Event
}

var transitions = map[edge]State{
	{StateDashboard, EventStartSelection}: StateClassSelection,
	{StateDashboard, EventOpenUpload}:     StateUpload,

	{StateClassSelection, EventSelectClass}:     StateSubjectSelection,
	{StateClassSelection, EventBack}:            StateDashboard,
	{StateSubjectSelection, EventSelectSubject}: StateTopicInput,
	{StateSubjectSelection, EventBack}:          StateClassSelection,
	{StateTopicInput, EventSubmitTopic}:         StateStyleSelection,
	{StateTopicInput, EventBack}:                StateSubjectSelection,
	{StateStyleSelection, EventSelectStyle}:     StateLoading,
	{StateStyleSelection, EventBack}:            StateTopicInput,

	{StateLoading, EventLessonReady}:    StateLessonPlayer,
	{StateLoading, EventPipelineFailed}: StateError,

	{StateError, EventRetry}: StateLoading,
	{StateError, EventBack}:  StateDashboard,

	{StateLessonPlayer, EventChangeStyle}:  StateLoading,
	{StateLessonPlayer, EventToggleGlobal}: StateLoading,
	{StateLessonPlayer, EventBack}:         StateDashboard,

	{StateUpload, EventUploadDone}: StateDashboard,
	{StateUpload, EventBack}:       StateDashboard,
}

// interruptible states accept the global events: starting a new chat and
// resuming a session from the history. Loading is the only state that
// does not, so one pipeline call is in flight at a time.
var interruptible = []State{
	StateDashboard, StateClassSelection, StateSubjectSelection, StateTopicInput,
	StateStyleSelection, StateUpload, StateError, StateLessonPlayer,
}

func init() {
	resume := map[Event]State{
		EventNewChat:       StateClassSelection,
		EventResumeClass:   StateClassSelection,
		EventResumeSubject: StateSubjectSelection,
		EventResumeTopic:   StateTopicInput,
		EventResumeStyle:   StateStyleSelection,
		EventResumeLesson:  StateLessonPlayer,
	}
	for _, s := range interruptible {
		for ev, to := range resume {
			transitions[edge{s, ev}] = to
		}
	}
}

// Transition returns the state reached from s on ev.
func Transition(s State, ev Event) (State, error) {
	if next, ok := transitions[edge{s, ev}]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, ev, s)
}
