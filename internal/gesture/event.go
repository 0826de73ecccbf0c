// Package gesture turns per-frame hand landmark observations into
// discrete pointer events. The classifier runs four cooperating
// sub-machines (auth, scroll, click/drag, shortcuts) under hysteresis
// and cooldown rules so that at most one event fires per frame.
package gesture

// Kind identifies the discrete event a frame produced. Cursor movement
// is not an event; the pipeline maps and moves the cursor separately
// and a move may accompany a click or drag event.
type Kind int

const (
	// KindNone means the frame produced no discrete event.
	KindNone Kind = iota
	// KindClick is a single left click.
	KindClick
	// KindDoubleClick is a double left click.
	KindDoubleClick
	// KindRightClick is a right click.
	KindRightClick
	// KindDragStart begins a drag (mouse button down).
	KindDragStart
	// KindDragEnd finishes a drag (mouse button up).
	KindDragEnd
	// KindScroll is a scroll step; Event.Scroll carries the delta.
	KindScroll
	// KindShortcut is a gesture shortcut; Event.Shortcut carries which.
	KindShortcut
)

// String returns a short human-readable name for logging and the
// event feed.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindClick:
		return "click"
	case KindDoubleClick:
		return "double-click"
	case KindRightClick:
		return "right-click"
	case KindDragStart:
		return "drag-start"
	case KindDragEnd:
		return "drag-end"
	case KindScroll:
		return "scroll"
	case KindShortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// Shortcut identifies which gesture shortcut fired.
type Shortcut int

const (
	// ShortcutScreenshot captures the screen (three fingers up).
	ShortcutScreenshot Shortcut = iota
	// ShortcutShowDesktop reveals the desktop (four fingers up).
	ShortcutShowDesktop
	// ShortcutMaximize maximizes the focused window (five fingers up
	// while enabled).
	ShortcutMaximize
)

// String returns a short human-readable shortcut name.
func (s Shortcut) String() string {
	switch s {
	case ShortcutScreenshot:
		return "screenshot"
	case ShortcutShowDesktop:
		return "show-desktop"
	case ShortcutMaximize:
		return "maximize"
	default:
		return "unknown"
	}
}

// Event is the tagged result of classifying one frame.
type Event struct {
	Kind     Kind
	Scroll   int      // scroll delta, set when Kind == KindScroll
	Shortcut Shortcut // set when Kind == KindShortcut
}

// None is the empty event.
var None = Event{Kind: KindNone}
