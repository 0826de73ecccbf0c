package action

import (
	"fmt"
	"sync"
)

// RecorderSink records every sink call as a readable string. Used by
// tests to assert on the exact OS-level action sequence.
type RecorderSink struct {
	mu    sync.Mutex
	calls []string

	// Err, if set, is returned from every call.
	Err error
}

// NewRecorderSink returns an empty recorder.
func NewRecorderSink() *RecorderSink {
	return &RecorderSink{}
}

// Calls returns a copy of the recorded call strings in order.
func (r *RecorderSink) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *RecorderSink) record(s string) error {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
	return r.Err
}

func (r *RecorderSink) MoveCursor(x, y float64) error {
	return r.record(fmt.Sprintf("move(%.0f,%.0f)", x, y))
}

func (r *RecorderSink) Click() error       { return r.record("click") }
func (r *RecorderSink) DoubleClick() error { return r.record("double-click") }
func (r *RecorderSink) RightClick() error  { return r.record("right-click") }
func (r *RecorderSink) MouseDown() error   { return r.record("mouse-down") }
func (r *RecorderSink) MouseUp() error     { return r.record("mouse-up") }

func (r *RecorderSink) Scroll(amount int) error {
	return r.record(fmt.Sprintf("scroll(%d)", amount))
}

func (r *RecorderSink) Hotkey(keys ...string) error {
	return r.record(fmt.Sprintf("hotkey(%v)", keys))
}

func (r *RecorderSink) TakeScreenshot(prefix string) (string, error) {
	err := r.record("screenshot(" + prefix + ")")
	return "/tmp/" + prefix + "fake.png", err
}
