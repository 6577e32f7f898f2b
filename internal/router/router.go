package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/atulsharma648-byte/ASMan/internal/screen"
	"github.com/atulsharma648-byte/ASMan/internal/wizard"
)

// PushScreenMsg requests the router to push an overlay onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current overlay.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Factory builds the screen for a wizard state.
type Factory func() screen.Screen

// Router keeps a base screen for the current wizard state plus a stack
// of overlays (history, style picker) on top of it.
type Router struct {
	stack  []screen.Screen
	routes map[wizard.State]Factory
	rev    uint64
	synced bool
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack:  []screen.Screen{initial},
		routes: make(map[wizard.State]Factory),
	}
}

// Handle registers the screen shown for a wizard state.
func (r *Router) Handle(s wizard.State, f Factory) {
	r.routes[s] = f
}

// Sync rebuilds the base screen when the wizard revision changed since
// the last call, dropping any overlays. It reports whether it did.
// States without a route keep the current screen.
func (r *Router) Sync(state wizard.State, rev uint64) (tea.Cmd, bool) {
	if r.synced && rev == r.rev {
		return nil, false
	}
	r.synced = true
	r.rev = rev

	f, ok := r.routes[state]
	if !ok {
		return nil, false
	}
	s := f()
	r.stack = []screen.Screen{s}
	return s.Init(), true
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
