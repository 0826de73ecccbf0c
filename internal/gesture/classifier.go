package gesture

import (
	"math"
	"time"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/timing"
)

// Tuning holds the thresholds and windows of the gesture state
// machines. The right-click threshold is derived, never stored, so the
// pinch+5 relation cannot drift.
type Tuning struct {
	PinchThreshold    float64 // pixels, thumb-index distance for a pinch
	DragHoldTime      time.Duration
	ClickCooldown     time.Duration
	DoubleClickWindow time.Duration
	ShortcutCooldown  time.Duration
	AuthHoldTime      time.Duration
	ScrollSensitivity float64
}

// RightClickThreshold is the thumb-middle distance for a right click,
// always PinchThreshold+5.
func (t Tuning) RightClickThreshold() float64 {
	return t.PinchThreshold + 5
}

// Classifier converts per-frame finger states and tip positions into
// discrete events. It runs four sub-machines in fixed order — auth,
// scroll, click/drag, shortcuts — and emits at most one event per
// frame. It is driven by a single goroutine (the frame loop) and keeps
// all gesture state between frames.
type Classifier struct {
	tuning Tuning
	state  *control.State

	// OnEnabled, if set, is called once each time the palm hold
	// transitions the state to enabled.
	OnEnabled func()

	auth timing.HoldTimer

	pinching   bool
	pinchStart time.Time
	dragging   bool

	leftClick  timing.Cooldown
	rightClick timing.Cooldown
	shortcut   timing.Cooldown

	lastClickAt  time.Time // marker for the double-click window
	hasLastClick bool

	prevScrollY    float64
	hasPrevScrollY bool
}

// NewClassifier creates a Classifier writing to the given shared state.
func NewClassifier(tuning Tuning, state *control.State) *Classifier {
	return &Classifier{
		tuning: tuning,
		state:  state,
	}
}

// Dragging reports whether a drag is currently in progress.
func (c *Classifier) Dragging() bool { return c.dragging }

// Classify processes one hand observation and returns the discrete
// event it produced, if any. The frame's timestamp drives all timing.
func (c *Classifier) Classify(frame *detector.Frame) Event {
	now := frame.Time
	fingers := frame.Hand.Fingers()

	c.runAuth(fingers, now)

	if !c.state.Enabled() {
		// Pointer paused: transient gesture state must not survive
		// into the next enabled period. A drag interrupted by a
		// disable still has the OS button down, so close it out.
		ev := None
		if c.dragging {
			ev = Event{Kind: KindDragEnd}
			c.state.SetDragging(false)
		}
		c.pinching = false
		c.dragging = false
		c.hasPrevScrollY = false
		c.state.SetStatus("Mouse paused - show palm or press M")
		return ev
	}

	thumbX, thumbY := frame.Hand.TipPixel(detector.ThumbTip, frame.Width, frame.Height)
	indexX, indexY := frame.Hand.TipPixel(detector.IndexTip, frame.Width, frame.Height)
	middleX, middleY := frame.Hand.TipPixel(detector.MiddleTip, frame.Width, frame.Height)

	scrollPose, ev := c.runScroll(fingers, middleY)
	if ev.Kind != KindNone {
		return ev
	}

	if !scrollPose {
		dThumbIndex := detector.PixelDistance(thumbX, thumbY, indexX, indexY)
		dThumbMiddle := detector.PixelDistance(thumbX, thumbY, middleX, middleY)
		if ev := c.runClickDrag(dThumbIndex, dThumbMiddle, now); ev.Kind != KindNone {
			return ev
		}
	}

	return c.runShortcuts(fingers, now)
}

// Reset clears all transient gesture state after a frame with no hand.
// If a drag was in progress the returned event is DragEnd so the
// caller releases the OS button; otherwise None.
func (c *Classifier) Reset() Event {
	ev := None
	if c.dragging {
		ev = Event{Kind: KindDragEnd}
		c.state.SetDragging(false)
	}
	c.pinching = false
	c.dragging = false
	c.hasPrevScrollY = false
	c.auth.Reset()
	c.state.SetStatus("Show your hand to the camera")
	return ev
}

// runAuth handles the palm-hold enable gate. It runs every frame
// regardless of the enabled state; any finger dropping resets the
// timer to unset.
func (c *Classifier) runAuth(fingers detector.FingerState, now time.Time) {
	if !fingers.All() {
		c.auth.Reset()
		return
	}

	c.auth.Start(now)
	if !c.state.Enabled() && c.auth.Held(now) >= c.tuning.AuthHoldTime {
		if c.state.SetEnabled(true) {
			c.state.SetStatus("Mouse enabled (palm hold)")
			if c.OnEnabled != nil {
				c.OnEnabled()
			}
		}
	}
}

// runScroll handles the peace-sign scroll gesture. It returns whether
// the scroll pose is active this frame (which excludes the click/drag
// machine) and the scroll event, if motion exceeded the dead zone.
func (c *Classifier) runScroll(fingers detector.FingerState, middleY float64) (bool, Event) {
	pose := fingers.Index && fingers.Middle && !fingers.Ring && !fingers.Pinky
	if !pose {
		c.hasPrevScrollY = false
		return false, None
	}

	ev := None
	if c.hasPrevScrollY {
		delta := c.prevScrollY - middleY
		if math.Abs(delta) > 1 {
			ev = Event{
				Kind:   KindScroll,
				Scroll: int(math.Round(delta * c.tuning.ScrollSensitivity)),
			}
			c.state.SetStatus("Scrolling")
		}
	}
	c.prevScrollY = middleY
	c.hasPrevScrollY = true
	return true, ev
}

// runClickDrag handles pinch-based clicks and drags. A thumb-middle
// pinch right-clicks and short-circuits the left-click logic for the
// frame; a thumb-index pinch clicks on quick release, double-clicks
// within the double-click window, and drags when held.
func (c *Classifier) runClickDrag(dThumbIndex, dThumbMiddle float64, now time.Time) Event {
	if dThumbMiddle < c.tuning.RightClickThreshold() &&
		c.rightClick.Ready(now, c.tuning.ClickCooldown) {
		c.rightClick.Fire(now)
		c.state.SetStatus("Right click")
		return Event{Kind: KindRightClick}
	}

	if dThumbIndex < c.tuning.PinchThreshold {
		if !c.pinching {
			c.pinching = true
			c.pinchStart = now
		}
		if !c.dragging && now.Sub(c.pinchStart) >= c.tuning.DragHoldTime {
			c.dragging = true
			c.state.SetDragging(true)
			c.state.SetStatus("Dragging")
			return Event{Kind: KindDragStart}
		}
		return None
	}

	// Release edge: the pinch opened this frame.
	if !c.pinching {
		return None
	}

	held := now.Sub(c.pinchStart)
	ev := None

	switch {
	case c.dragging:
		ev = Event{Kind: KindDragEnd}
		c.state.SetDragging(false)
		c.state.SetStatus("Drag released")

	case held < c.tuning.DragHoldTime && c.leftClick.Ready(now, c.tuning.ClickCooldown):
		if c.hasLastClick && now.Sub(c.lastClickAt) <= c.tuning.DoubleClickWindow {
			ev = Event{Kind: KindDoubleClick}
			c.state.SetStatus("Double click")
			// Clear the marker so a third quick release starts a
			// fresh single instead of chaining doubles.
			c.hasLastClick = false
		} else {
			ev = Event{Kind: KindClick}
			c.state.SetStatus("Left click")
			c.lastClickAt = now
			c.hasLastClick = true
		}
		c.leftClick.Fire(now)
	}

	c.pinching = false
	c.dragging = false
	return ev
}

// runShortcuts handles the finger-count shortcut poses. One global
// cooldown gates all shortcut kinds; the first matching pose wins.
func (c *Classifier) runShortcuts(fingers detector.FingerState, now time.Time) Event {
	if !c.shortcut.Ready(now, c.tuning.ShortcutCooldown) {
		return None
	}

	var ev Event
	switch {
	case fingers.Index && fingers.Middle && fingers.Ring && !fingers.Pinky && !fingers.Thumb:
		ev = Event{Kind: KindShortcut, Shortcut: ShortcutScreenshot}
		c.state.SetStatus("Screenshot")

	case fingers.Index && fingers.Middle && fingers.Ring && fingers.Pinky && !fingers.Thumb:
		ev = Event{Kind: KindShortcut, Shortcut: ShortcutShowDesktop}
		c.state.SetStatus("Show desktop")

	case fingers.All():
		ev = Event{Kind: KindShortcut, Shortcut: ShortcutMaximize}
		c.state.SetStatus("Maximize window")

	default:
		return None
	}

	c.shortcut.Fire(now)
	return ev
}
