package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
)

func testTuning() Tuning {
	return Tuning{
		PinchThreshold:    35,
		DragHoldTime:      250 * time.Millisecond,
		ClickCooldown:     250 * time.Millisecond,
		DoubleClickWindow: 350 * time.Millisecond,
		ShortcutCooldown:  1800 * time.Millisecond,
		AuthHoldTime:      time.Second,
		ScrollSensitivity: 2.8,
	}
}

// frameAt wraps a hand pose into a 640x480 observation at the given time.
func frameAt(h detector.Hand, at time.Time) *detector.Frame {
	return &detector.Frame{Hand: h, Width: 640, Height: 480, Time: at}
}

func enabledClassifier(t Tuning) (*Classifier, *control.State) {
	state := control.New()
	state.SetEnabled(true)
	return NewClassifier(t, state), state
}

func TestTuning_RightClickThresholdIsPinchPlusFive(t *testing.T) {
	for _, pinch := range []float64{20, 35, 50} {
		tn := Tuning{PinchThreshold: pinch}
		if got := tn.RightClickThreshold(); got != pinch+5 {
			t.Errorf("RightClickThreshold() = %v, want %v", got, pinch+5)
		}
	}
}

func TestClassifier_AuthEnablesAfterHold(t *testing.T) {
	state := control.New()
	c := NewClassifier(testTuning(), state)

	enabledCalls := 0
	c.OnEnabled = func() { enabledCalls++ }

	t0 := time.Unix(1000, 0)
	palm := detector.OpenPalmHand()

	c.Classify(frameAt(palm, t0))
	c.Classify(frameAt(palm, t0.Add(999*time.Millisecond)))
	if state.Enabled() {
		t.Fatal("should not enable before the hold time elapses")
	}

	c.Classify(frameAt(palm, t0.Add(1001*time.Millisecond)))
	if !state.Enabled() {
		t.Fatal("should enable once the hold time elapses")
	}

	// Further holding is idempotent.
	c.Classify(frameAt(palm, t0.Add(2*time.Second)))
	if enabledCalls != 1 {
		t.Errorf("OnEnabled fired %d times, want 1", enabledCalls)
	}
}

func TestClassifier_AuthResetsWhenFingerDrops(t *testing.T) {
	state := control.New()
	c := NewClassifier(testTuning(), state)

	t0 := time.Unix(1000, 0)
	palm := detector.OpenPalmHand()

	c.Classify(frameAt(palm, t0))
	c.Classify(frameAt(palm, t0.Add(900*time.Millisecond)))

	// Dropping a finger just before the threshold resets the timer.
	c.Classify(frameAt(detector.FourFingerHand(), t0.Add(950*time.Millisecond)))

	c.Classify(frameAt(palm, t0.Add(time.Second)))
	c.Classify(frameAt(palm, t0.Add(1900*time.Millisecond)))
	if state.Enabled() {
		t.Fatal("interrupted hold must not enable")
	}

	c.Classify(frameAt(palm, t0.Add(2001*time.Millisecond)))
	if !state.Enabled() {
		t.Fatal("a fresh full hold after the interruption should enable")
	}
}

func TestClassifier_QuickPinchReleaseClicks(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	c.Classify(frameAt(detector.PinchHand(0.02), t0))
	ev := c.Classify(frameAt(detector.PinchHand(0.2), t0.Add(100*time.Millisecond)))

	if ev.Kind != KindClick {
		t.Errorf("quick pinch release should click, got %v", ev.Kind)
	}
}

func TestClassifier_DoubleClickSequence(t *testing.T) {
	// Three quick releases must produce single, double, single: the
	// double clears the last-click marker so the third release starts
	// fresh. The click cooldown is shortened so it does not mask the
	// double-click window under test.
	tn := testTuning()
	tn.ClickCooldown = 100 * time.Millisecond
	c, _ := enabledClassifier(tn)

	t0 := time.Unix(1000, 0)
	release := func(at time.Duration) Event {
		c.Classify(frameAt(detector.PinchHand(0.02), t0.Add(at-50*time.Millisecond)))
		return c.Classify(frameAt(detector.PinchHand(0.2), t0.Add(at)))
	}

	if ev := release(0); ev.Kind != KindClick {
		t.Fatalf("first release should single-click, got %v", ev.Kind)
	}
	if ev := release(200 * time.Millisecond); ev.Kind != KindDoubleClick {
		t.Fatalf("second release within the window should double-click, got %v", ev.Kind)
	}
	if ev := release(600 * time.Millisecond); ev.Kind != KindClick {
		t.Fatalf("third release should single-click again, got %v", ev.Kind)
	}
}

func TestClassifier_ClickCooldownSuppressesRapidSecondClick(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	c.Classify(frameAt(detector.PinchHand(0.02), t0))
	if ev := c.Classify(frameAt(detector.PinchHand(0.2), t0.Add(50*time.Millisecond))); ev.Kind != KindClick {
		t.Fatalf("first release should click, got %v", ev.Kind)
	}

	// A second full pinch cycle released 100ms later sits inside the
	// 250ms cooldown and must be suppressed.
	c.Classify(frameAt(detector.PinchHand(0.02), t0.Add(100*time.Millisecond)))
	if ev := c.Classify(frameAt(detector.PinchHand(0.2), t0.Add(150*time.Millisecond))); ev.Kind != KindNone {
		t.Errorf("release inside the click cooldown should be suppressed, got %v", ev.Kind)
	}
}

func TestClassifier_DragStartsOncePerPinch(t *testing.T) {
	c, state := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)
	pinch := detector.PinchHand(0.02)

	if ev := c.Classify(frameAt(pinch, t0)); ev.Kind != KindNone {
		t.Fatalf("pinch onset should not emit, got %v", ev.Kind)
	}
	if ev := c.Classify(frameAt(pinch, t0.Add(100*time.Millisecond))); ev.Kind != KindNone {
		t.Fatalf("held pinch below the drag time should not emit, got %v", ev.Kind)
	}

	ev := c.Classify(frameAt(pinch, t0.Add(260*time.Millisecond)))
	if ev.Kind != KindDragStart {
		t.Fatalf("pinch held past the drag time should start a drag, got %v", ev.Kind)
	}
	if !state.Dragging() {
		t.Error("shared state should record the drag")
	}

	// The same pinch must not start a second drag.
	if ev := c.Classify(frameAt(pinch, t0.Add(500*time.Millisecond))); ev.Kind != KindNone {
		t.Errorf("continued drag should not re-emit DragStart, got %v", ev.Kind)
	}

	ev = c.Classify(frameAt(detector.PinchHand(0.2), t0.Add(2*time.Second)))
	if ev.Kind != KindDragEnd {
		t.Errorf("release while dragging should end the drag regardless of duration, got %v", ev.Kind)
	}
	if state.Dragging() {
		t.Error("shared state should clear the drag on release")
	}
}

func TestClassifier_RightClickBeatsLeftClick(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	// Thumb-middle separation of 0.05 is 32px on a 640px frame, inside
	// the 40px right-click threshold (pinch 35 + 5).
	ev := c.Classify(frameAt(detector.MiddlePinchHand(0.05), t0))
	if ev.Kind != KindRightClick {
		t.Fatalf("thumb-middle pinch should right-click, got %v", ev.Kind)
	}

	// Inside the cooldown the same pose stays silent.
	ev = c.Classify(frameAt(detector.MiddlePinchHand(0.05), t0.Add(100*time.Millisecond)))
	if ev.Kind != KindNone {
		t.Errorf("right click inside the cooldown should be suppressed, got %v", ev.Kind)
	}
}

func TestClassifier_RightClickThresholdBoundary(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	// 0.07 is 44.8px on a 640px frame: outside the 40px threshold.
	ev := c.Classify(frameAt(detector.MiddlePinchHand(0.07), t0))
	if ev.Kind == KindRightClick {
		t.Error("separation past pinch+5 must not right-click")
	}
}

func TestClassifier_ScrollUpwardIsPositive(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	// First posed frame only records the reference y.
	if ev := c.Classify(frameAt(detector.PeaceSignHand(0.5), t0)); ev.Kind != KindNone {
		t.Fatalf("first scroll-pose frame should not emit, got %v", ev.Kind)
	}

	// Hand moves up: y 0.5 -> 0.45 is 24px on a 480px frame.
	ev := c.Classify(frameAt(detector.PeaceSignHand(0.45), t0.Add(33*time.Millisecond)))
	if ev.Kind != KindScroll {
		t.Fatalf("upward motion in the scroll pose should scroll, got %v", ev.Kind)
	}
	if want := 67; ev.Scroll != want { // round(24 * 2.8)
		t.Errorf("scroll delta = %d, want %d", ev.Scroll, want)
	}
	if ev.Scroll <= 0 {
		t.Error("upward motion must yield a positive delta")
	}
}

func TestClassifier_ScrollDeadZone(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	c.Classify(frameAt(detector.PeaceSignHand(0.5), t0))
	// 0.001 normalized is under half a pixel of motion on 480px.
	ev := c.Classify(frameAt(detector.PeaceSignHand(0.499), t0.Add(33*time.Millisecond)))
	if ev.Kind != KindNone {
		t.Errorf("sub-pixel motion should stay in the dead zone, got %v", ev.Kind)
	}
}

func TestClassifier_ScrollPoseBreakClearsReference(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	c.Classify(frameAt(detector.PeaceSignHand(0.5), t0))
	// Pose breaks; the stored reference y must be discarded.
	c.Classify(frameAt(detector.PoseHand(detector.FingerState{}), t0.Add(33*time.Millisecond)))

	// Re-entering the pose at a new height must not scroll on the
	// first frame even though the height changed a lot.
	ev := c.Classify(frameAt(detector.PeaceSignHand(0.2), t0.Add(66*time.Millisecond)))
	if ev.Kind != KindNone {
		t.Errorf("first frame after re-entering the pose should not scroll, got %v", ev.Kind)
	}
}

func TestClassifier_ScrollPoseExcludesClicks(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	// Peace pose with the thumb tip moved next to the index tip: the
	// pinch distance alone would click, but the scroll pose wins.
	h := detector.PeaceSignHand(0.35)
	h.Points[detector.ThumbTip] = h.Points[detector.IndexTip]

	c.Classify(frameAt(h, t0))
	ev := c.Classify(frameAt(h, t0.Add(33*time.Millisecond)))
	if ev.Kind == KindClick || ev.Kind == KindDragStart || ev.Kind == KindRightClick {
		t.Errorf("click/drag machine must be skipped while the scroll pose is active, got %v", ev.Kind)
	}
}

func TestClassifier_ShortcutPriorityAndGlobalCooldown(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	ev := c.Classify(frameAt(detector.ThreeFingerHand(), t0))
	if ev.Kind != KindShortcut || ev.Shortcut != ShortcutScreenshot {
		t.Fatalf("three fingers should fire the screenshot shortcut, got %+v", ev)
	}

	// The shortcut cooldown is global: a different shortcut pose right
	// after must stay silent.
	ev = c.Classify(frameAt(detector.FourFingerHand(), t0.Add(time.Second)))
	if ev.Kind != KindNone {
		t.Fatalf("shortcut inside the global cooldown should be suppressed, got %+v", ev)
	}

	ev = c.Classify(frameAt(detector.FourFingerHand(), t0.Add(2*time.Second)))
	if ev.Kind != KindShortcut || ev.Shortcut != ShortcutShowDesktop {
		t.Fatalf("four fingers after the cooldown should show the desktop, got %+v", ev)
	}
}

func TestClassifier_OpenPalmWhileEnabledMaximizes(t *testing.T) {
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	ev := c.Classify(frameAt(detector.OpenPalmHand(), t0))
	if ev.Kind != KindShortcut || ev.Shortcut != ShortcutMaximize {
		t.Fatalf("open palm while enabled should maximize, got %+v", ev)
	}
}

func TestClassifier_ResetEndsDragExactlyOnce(t *testing.T) {
	c, state := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)
	pinch := detector.PinchHand(0.02)

	c.Classify(frameAt(pinch, t0))
	if ev := c.Classify(frameAt(pinch, t0.Add(300*time.Millisecond))); ev.Kind != KindDragStart {
		t.Fatalf("expected a drag to start, got %v", ev.Kind)
	}

	// Hand lost while dragging: exactly one DragEnd.
	if ev := c.Reset(); ev.Kind != KindDragEnd {
		t.Fatalf("reset while dragging should end the drag, got %v", ev.Kind)
	}
	if state.Dragging() {
		t.Error("dragging flag should clear on reset")
	}
	if ev := c.Reset(); ev.Kind != KindNone {
		t.Errorf("a second reset should be silent, got %v", ev.Kind)
	}
	if state.Status() != "Show your hand to the camera" {
		t.Errorf("unexpected status after reset: %q", state.Status())
	}
}

func TestClassifier_DisabledFrameClearsTransientState(t *testing.T) {
	c, state := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)
	pinch := detector.PinchHand(0.02)

	c.Classify(frameAt(pinch, t0))
	c.Classify(frameAt(pinch, t0.Add(300*time.Millisecond))) // dragging now

	// Voice or tray disabled the pointer mid-drag.
	state.SetEnabled(false)
	ev := c.Classify(frameAt(pinch, t0.Add(400*time.Millisecond)))
	if ev.Kind != KindDragEnd {
		t.Fatalf("a disable mid-drag must release the button, got %v", ev.Kind)
	}
	if c.Dragging() {
		t.Error("dragging must clear while disabled")
	}

	// Re-enabling must not resurrect the old pinch.
	state.SetEnabled(true)
	if ev := c.Classify(frameAt(pinch, t0.Add(500*time.Millisecond))); ev.Kind != KindNone {
		t.Errorf("fresh pinch after re-enable should restart quietly, got %v", ev.Kind)
	}
}

func TestClassifier_AtMostOneEventPerFrame(t *testing.T) {
	// A pose that satisfies several machines at once (pinch during the
	// scroll pose, shortcut-compatible finger count) still yields a
	// single tagged event per frame by construction; walk a mixed
	// sequence and count.
	c, _ := enabledClassifier(testTuning())
	t0 := time.Unix(1000, 0)

	frames := []detector.Hand{
		detector.OpenPalmHand(),
		detector.PeaceSignHand(0.5),
		detector.PeaceSignHand(0.4),
		detector.PinchHand(0.02),
		detector.PinchHand(0.2),
		detector.ThreeFingerHand(),
	}

	for i, h := range frames {
		ev := c.Classify(frameAt(h, t0.Add(time.Duration(i)*100*time.Millisecond)))
		// Event is a single tagged value; just assert the tag is known.
		switch ev.Kind {
		case KindNone, KindClick, KindDoubleClick, KindRightClick,
			KindDragStart, KindDragEnd, KindScroll, KindShortcut:
		default:
			t.Fatalf("frame %d produced unknown event kind %v", i, ev.Kind)
		}
	}
}
