// Package control holds the state shared between the synchronous
// gesture loop and the background voice listener: the master enabled
// flag, the advisory status line, and the live drag/cursor tracking.
// All access goes through the mutex; the voice goroutine's writes to
// the enabled flag are intentional cross-context signals.
package control

import "sync"

// Snapshot is a point-in-time copy of the shared state, safe to hand
// to the server or tray without holding the lock.
type Snapshot struct {
	Enabled  bool    `json:"enabled"`
	Status   string  `json:"status"`
	Dragging bool    `json:"dragging"`
	CursorX  float64 `json:"cursorX"`
	CursorY  float64 `json:"cursorY"`
}

// State is the shared control state. The zero value is disabled with
// an empty status; use New for the standard startup message.
type State struct {
	mu        sync.RWMutex
	enabled   bool
	status    string
	dragging  bool
	cursorX   float64
	cursorY   float64
	onEnabled func(bool)
}

// OnEnabledChange registers a callback invoked after every enabled
// transition, whichever pipeline caused it. Register before the
// pipelines start; the callback runs outside the lock.
func (s *State) OnEnabledChange(fn func(enabled bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnabled = fn
}

// New returns a disabled State carrying the initial status message.
func New() *State {
	return &State{status: "Show an open palm to enable"}
}

// Enabled reports whether pointer control is active.
func (s *State) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled sets the enabled flag and reports whether the value
// changed, so callers can act exactly once on a transition.
func (s *State) SetEnabled(enabled bool) bool {
	s.mu.Lock()
	if s.enabled == enabled {
		s.mu.Unlock()
		return false
	}
	s.enabled = enabled
	fn := s.onEnabled
	s.mu.Unlock()

	if fn != nil {
		fn(enabled)
	}
	return true
}

// Toggle flips the enabled flag and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	s.enabled = !s.enabled
	enabled := s.enabled
	fn := s.onEnabled
	s.mu.Unlock()

	if fn != nil {
		fn(enabled)
	}
	return enabled
}

// Status returns the advisory status line.
func (s *State) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus updates the advisory status line. Concurrent writers
// resolve last-write-wins; the text is informational only.
func (s *State) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Dragging reports whether a gesture drag is in progress.
func (s *State) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragging
}

// SetDragging records whether a gesture drag is in progress. Only the
// gesture loop writes this; it is the authoritative source.
func (s *State) SetDragging(dragging bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = dragging
}

// SetCursor records the last cursor position issued to the sink.
func (s *State) SetCursor(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY = x, y
}

// Snapshot returns a consistent copy of the full state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Enabled:  s.enabled,
		Status:   s.status,
		Dragging: s.dragging,
		CursorX:  s.cursorX,
		CursorY:  s.cursorY,
	}
}
