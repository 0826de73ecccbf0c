package app

import (
	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/voice"
)

// voiceScrollAmount is the fixed scroll distance, in wheel ticks, for
// a spoken scroll command.
const voiceScrollAmount = 5

// moveAllowed reports whether a cursor move may ride along with the
// frame's event. Click and drag events share their frame with the
// move; a scroll or shortcut frame suppresses it.
func moveAllowed(ev gesture.Event) bool {
	return ev.Kind != gesture.KindScroll && ev.Kind != gesture.KindShortcut
}

// gestureCommand translates a classifier event into a queued action.
func gestureCommand(ev gesture.Event) (action.Command, bool) {
	cmd := action.Command{Origin: "gesture"}

	switch ev.Kind {
	case gesture.KindClick:
		cmd.Op = action.OpClick
	case gesture.KindDoubleClick:
		cmd.Op = action.OpDoubleClick
	case gesture.KindRightClick:
		cmd.Op = action.OpRightClick
	case gesture.KindDragStart:
		cmd.Op = action.OpMouseDown
	case gesture.KindDragEnd:
		cmd.Op = action.OpMouseUp
	case gesture.KindScroll:
		cmd.Op = action.OpScroll
		cmd.Amount = ev.Scroll
	case gesture.KindShortcut:
		switch ev.Shortcut {
		case gesture.ShortcutScreenshot:
			cmd.Op = action.OpScreenshot
		case gesture.ShortcutShowDesktop:
			cmd.Op = action.OpHotkey
			cmd.Keys = action.ShowDesktopKeys()
		case gesture.ShortcutMaximize:
			cmd.Op = action.OpHotkey
			cmd.Keys = action.MaximizeKeys()
		default:
			return action.Command{}, false
		}
	default:
		return action.Command{}, false
	}

	return cmd, true
}

// voiceCommand translates a spoken command into a queued action.
// Enable, disable, and greeting are handled by the app directly and
// return false here.
func voiceCommand(cmd voice.Command) (action.Command, bool) {
	c := action.Command{Origin: "voice"}

	switch cmd {
	case voice.CmdClick:
		c.Op = action.OpClick
	case voice.CmdDoubleClick:
		c.Op = action.OpDoubleClick
	case voice.CmdRightClick:
		c.Op = action.OpRightClick
	case voice.CmdScrollUp:
		c.Op = action.OpScroll
		c.Amount = voiceScrollAmount
	case voice.CmdScrollDown:
		c.Op = action.OpScroll
		c.Amount = -voiceScrollAmount
	case voice.CmdScreenshot:
		c.Op = action.OpScreenshot
	case voice.CmdMaximize:
		c.Op = action.OpHotkey
		c.Keys = action.MaximizeKeys()
	case voice.CmdMinimize:
		c.Op = action.OpHotkey
		c.Keys = action.MinimizeKeys()
	case voice.CmdShowDesktop:
		c.Op = action.OpHotkey
		c.Keys = action.ShowDesktopKeys()
	case voice.CmdUndo:
		c.Op = action.OpHotkey
		c.Keys = action.UndoKeys()
	case voice.CmdRedo:
		c.Op = action.OpHotkey
		c.Keys = action.RedoKeys()
	case voice.CmdCopy:
		c.Op = action.OpHotkey
		c.Keys = action.CopyKeys()
	case voice.CmdPaste:
		c.Op = action.OpHotkey
		c.Keys = action.PasteKeys()
	case voice.CmdCut:
		c.Op = action.OpHotkey
		c.Keys = action.CutKeys()
	case voice.CmdSelectAll:
		c.Op = action.OpHotkey
		c.Keys = action.SelectAllKeys()
	default:
		return action.Command{}, false
	}

	return c, true
}
