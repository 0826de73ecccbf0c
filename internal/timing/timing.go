// Package timing provides the small time-tracking value types the
// gesture state machines are built on: a hold timer measuring how long
// a condition has been continuously true, and a cooldown gating how
// often an action of the same category may fire.
package timing

import "time"

// Clock supplies the current time. Production code uses WallClock;
// tests inject a fake to exercise timing edges without sleeping.
type Clock interface {
	Now() time.Time
}

// WallClock is the real time.Now clock.
type WallClock struct{}

// Now returns the current wall-clock time.
func (WallClock) Now() time.Time { return time.Now() }

// FakeClock is a manually advanced clock for tests.
type FakeClock struct {
	current time.Time
}

// NewFakeClock returns a FakeClock starting at the given instant.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time { return c.current }

// Advance moves the fake clock forward by d.
func (c *FakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

// HoldTimer tracks since when a condition has held. The zero value is
// unset. Any interruption of the condition must Reset the timer.
type HoldTimer struct {
	start   time.Time
	running bool
}

// Start begins timing at now if the timer is not already running.
// A running timer is left untouched so the original start is kept.
func (t *HoldTimer) Start(now time.Time) {
	if !t.running {
		t.start = now
		t.running = true
	}
}

// Running reports whether the timer has been started and not reset.
func (t *HoldTimer) Running() bool { return t.running }

// Held returns how long the condition has held as of now.
// An unset timer reports zero.
func (t *HoldTimer) Held(now time.Time) time.Duration {
	if !t.running {
		return 0
	}
	return now.Sub(t.start)
}

// Reset returns the timer to the unset state.
func (t *HoldTimer) Reset() {
	t.running = false
	t.start = time.Time{}
}

// Cooldown remembers when a gate last fired. The zero value has never
// fired and is always ready.
type Cooldown struct {
	last  time.Time
	fired bool
}

// Ready reports whether at least window has elapsed since the last Fire.
func (c *Cooldown) Ready(now time.Time, window time.Duration) bool {
	if !c.fired {
		return true
	}
	return now.Sub(c.last) >= window
}

// Fire records now as the last firing time.
func (c *Cooldown) Fire(now time.Time) {
	c.last = now
	c.fired = true
}

// Reset clears the gate so it is immediately ready again.
func (c *Cooldown) Reset() {
	c.fired = false
	c.last = time.Time{}
}
