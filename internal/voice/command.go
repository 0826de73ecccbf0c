// Package voice turns microphone audio into mouse and keyboard
// commands. A Listener goroutine records speech segments, a Recognizer
// transcribes them, and a Vocabulary maps the transcript onto one of a
// fixed set of commands.
package voice

import (
	"strings"
	"sync"
)

// Command is a recognized voice command.
type Command int

const (
	CmdNone Command = iota
	CmdClick
	CmdDoubleClick
	CmdRightClick
	CmdScrollUp
	CmdScrollDown
	CmdScreenshot
	CmdEnable
	CmdDisable
	CmdMaximize
	CmdMinimize
	CmdShowDesktop
	CmdUndo
	CmdRedo
	CmdCopy
	CmdPaste
	CmdCut
	CmdSelectAll
	CmdGreeting
)

// String returns the command name used in logs and the event feed.
func (c Command) String() string {
	switch c {
	case CmdClick:
		return "click"
	case CmdDoubleClick:
		return "double-click"
	case CmdRightClick:
		return "right-click"
	case CmdScrollUp:
		return "scroll-up"
	case CmdScrollDown:
		return "scroll-down"
	case CmdScreenshot:
		return "screenshot"
	case CmdEnable:
		return "enable"
	case CmdDisable:
		return "disable"
	case CmdMaximize:
		return "maximize"
	case CmdMinimize:
		return "minimize"
	case CmdShowDesktop:
		return "show-desktop"
	case CmdUndo:
		return "undo"
	case CmdRedo:
		return "redo"
	case CmdCopy:
		return "copy"
	case CmdPaste:
		return "paste"
	case CmdCut:
		return "cut"
	case CmdSelectAll:
		return "select-all"
	case CmdGreeting:
		return "greeting"
	default:
		return "none"
	}
}

// CommandFromName maps a stored command name back to a Command. Used
// when loading custom phrases from the database.
func CommandFromName(name string) (Command, bool) {
	for c := CmdClick; c <= CmdGreeting; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return CmdNone, false
}

type rule struct {
	phrase string
	cmd    Command
}

// builtinRules is checked top to bottom; the first phrase found in the
// transcript wins. More specific phrases sit above their substrings so
// "right click" never degrades into a plain click.
var builtinRules = []rule{
	{"right click", CmdRightClick},
	{"context menu", CmdRightClick},
	{"double click", CmdDoubleClick},
	{"double tap", CmdDoubleClick},
	{"left click", CmdClick},
	{"click", CmdClick},
	{"tap", CmdClick},
	{"scroll up", CmdScrollUp},
	{"scroll down", CmdScrollDown},
	{"screenshot", CmdScreenshot},
	{"snap", CmdScreenshot},
	{"take a picture", CmdScreenshot},
	{"enable", CmdEnable},
	{"start", CmdEnable},
	{"activate", CmdEnable},
	{"disable", CmdDisable},
	{"stop", CmdDisable},
	{"pause", CmdDisable},
	{"maximize", CmdMaximize},
	{"max", CmdMaximize},
	{"minimize", CmdMinimize},
	{"min", CmdMinimize},
	{"show desktop", CmdShowDesktop},
	{"desktop", CmdShowDesktop},
	{"undo", CmdUndo},
	{"redo", CmdRedo},
	{"copy", CmdCopy},
	{"paste", CmdPaste},
	{"cut", CmdCut},
	{"select all", CmdSelectAll},
	{"select everything", CmdSelectAll},
	{"hello", CmdGreeting},
	{"hi", CmdGreeting},
	{"hey", CmdGreeting},
}

// CustomPhrase is a user-defined trigger stored in the profile
// database, checked before the built-in vocabulary.
type CustomPhrase struct {
	Phrase  string
	Command Command
}

// Vocabulary matches transcripts against custom phrases first, then
// the built-in rule list.
type Vocabulary struct {
	mu     sync.RWMutex
	custom []CustomPhrase
}

// NewVocabulary builds a Vocabulary with the given custom phrases.
func NewVocabulary(custom ...CustomPhrase) *Vocabulary {
	return &Vocabulary{custom: custom}
}

// SetCustom replaces the custom phrase list. The phrase API calls this
// on the HTTP goroutine while the listener is classifying, so the list
// is swapped under the lock.
func (v *Vocabulary) SetCustom(custom []CustomPhrase) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.custom = custom
}

// Classify maps a raw transcript onto a command. Transcripts are
// lowercased and matched on word boundaries, so "stop" never fires
// inside "desktop" and "hi" never fires inside "this". The boolean is
// false when nothing in the vocabulary matched. Safe for concurrent
// use with SetCustom.
func (v *Vocabulary) Classify(transcript string) (Command, bool) {
	words := tokenize(transcript)
	if len(words) == 0 {
		return CmdNone, false
	}

	v.mu.RLock()
	custom := v.custom
	v.mu.RUnlock()

	for _, cp := range custom {
		if containsPhrase(words, tokenize(cp.Phrase)) {
			return cp.Command, true
		}
	}
	for _, r := range builtinRules {
		if containsPhrase(words, strings.Fields(r.phrase)) {
			return r.cmd, true
		}
	}
	return CmdNone, false
}

// tokenize lowercases the transcript and strips punctuation so
// "Click!" and "click" tokenize identically.
func tokenize(s string) []string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})
}

// containsPhrase reports whether phrase appears as consecutive words.
func containsPhrase(words, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return false
	}
	for i := 0; i+len(phrase) <= len(words); i++ {
		match := true
		for j := range phrase {
			if words[i+j] != phrase[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
