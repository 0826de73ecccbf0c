// Package action defines the canonical pointer/keyboard commands and
// the sink that executes them against the OS. Both the gesture loop
// and the voice listener enqueue commands; a single dispatcher
// goroutine executes them serially so OS input events never interleave.
package action

// Op identifies a canonical command operation.
type Op int

const (
	// OpMove positions the cursor at Command.X/Y.
	OpMove Op = iota
	// OpClick is a single left click.
	OpClick
	// OpDoubleClick is a double left click.
	OpDoubleClick
	// OpRightClick is a right click.
	OpRightClick
	// OpMouseDown presses and holds the left button (drag start).
	OpMouseDown
	// OpMouseUp releases the left button (drag end).
	OpMouseUp
	// OpScroll scrolls vertically by Command.Amount.
	OpScroll
	// OpHotkey taps Command.Keys (key first, then modifiers).
	OpHotkey
	// OpScreenshot captures the screen to a file named with
	// Command.Prefix.
	OpScreenshot
)

// String returns a short operation name for logging.
func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpClick:
		return "click"
	case OpDoubleClick:
		return "double-click"
	case OpRightClick:
		return "right-click"
	case OpMouseDown:
		return "mouse-down"
	case OpMouseUp:
		return "mouse-up"
	case OpScroll:
		return "scroll"
	case OpHotkey:
		return "hotkey"
	case OpScreenshot:
		return "screenshot"
	default:
		return "unknown"
	}
}

// Command is one canonical, sink-agnostic action. Origin records which
// classifier produced it ("gesture", "voice", "manual") for the log
// and the event feed.
type Command struct {
	Op     Op
	X, Y   float64  // OpMove
	Amount int      // OpScroll
	Keys   []string // OpHotkey: key first, then modifiers
	Prefix string   // OpScreenshot file prefix, defaults to "screenshot_"
	Origin string
}

// Sink executes canonical commands against the OS (or records them in
// tests). Implementations are only ever called from the dispatcher
// goroutine and need no internal locking.
type Sink interface {
	MoveCursor(x, y float64) error
	Click() error
	DoubleClick() error
	RightClick() error
	MouseDown() error
	MouseUp() error
	Scroll(amount int) error
	Hotkey(keys ...string) error
	TakeScreenshot(prefix string) (string, error)
}

// Hotkey key sequences for the window-management and editing commands.
// Keys are robotgo names: the tap key first, then modifiers. These are
// the macOS bindings the gesture and voice vocabularies map onto.
func MaximizeKeys() []string { return []string{"f", "ctrl", "cmd"} }
func MinimizeKeys() []string { return []string{"m", "cmd"} }
func ShowDesktopKeys() []string { return []string{"f11"} }
func UndoKeys() []string { return []string{"z", "cmd"} }
func RedoKeys() []string { return []string{"z", "cmd", "shift"} }
func CopyKeys() []string { return []string{"c", "cmd"} }
func PasteKeys() []string { return []string{"v", "cmd"} }
func CutKeys() []string { return []string{"x", "cmd"} }
func SelectAllKeys() []string { return []string{"a", "cmd"} }
