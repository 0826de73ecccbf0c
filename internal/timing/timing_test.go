package timing

import (
	"testing"
	"time"
)

func TestHoldTimer_HeldAccumulates(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var timer HoldTimer

	if timer.Running() {
		t.Fatal("zero-value timer should be unset")
	}
	if got := timer.Held(clock.Now()); got != 0 {
		t.Fatalf("unset timer should report 0, got %v", got)
	}

	timer.Start(clock.Now())
	clock.Advance(300 * time.Millisecond)

	if got := timer.Held(clock.Now()); got != 300*time.Millisecond {
		t.Errorf("expected 300ms held, got %v", got)
	}
}

func TestHoldTimer_StartKeepsOriginalStart(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var timer HoldTimer

	timer.Start(clock.Now())
	clock.Advance(500 * time.Millisecond)

	// A second Start while running must not restart the measurement.
	timer.Start(clock.Now())
	clock.Advance(500 * time.Millisecond)

	if got := timer.Held(clock.Now()); got != time.Second {
		t.Errorf("expected 1s held, got %v", got)
	}
}

func TestHoldTimer_ResetClears(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var timer HoldTimer

	timer.Start(clock.Now())
	clock.Advance(time.Second)
	timer.Reset()

	if timer.Running() {
		t.Error("timer should be unset after reset")
	}
	if got := timer.Held(clock.Now()); got != 0 {
		t.Errorf("reset timer should report 0, got %v", got)
	}
}

func TestCooldown_NeverFiredIsReady(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var cd Cooldown

	if !cd.Ready(clock.Now(), time.Hour) {
		t.Error("never-fired cooldown should be ready")
	}
}

func TestCooldown_BlocksUntilWindowElapses(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var cd Cooldown

	cd.Fire(clock.Now())

	clock.Advance(249 * time.Millisecond)
	if cd.Ready(clock.Now(), 250*time.Millisecond) {
		t.Error("cooldown should block before the window elapses")
	}

	clock.Advance(1 * time.Millisecond)
	if !cd.Ready(clock.Now(), 250*time.Millisecond) {
		t.Error("cooldown should be ready once the window elapses")
	}
}

func TestCooldown_ResetMakesReady(t *testing.T) {
	clock := NewFakeClock(time.Unix(1000, 0))
	var cd Cooldown

	cd.Fire(clock.Now())
	cd.Reset()

	if !cd.Ready(clock.Now(), time.Hour) {
		t.Error("reset cooldown should be immediately ready")
	}
}
