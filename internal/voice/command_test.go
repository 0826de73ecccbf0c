package voice

import (
	"sync"
	"testing"
)

func TestVocabulary_ClassifyBuiltins(t *testing.T) {
	v := NewVocabulary()

	tests := []struct {
		transcript string
		want       Command
	}{
		{"please right click now", CmdRightClick},
		{"open the context menu", CmdRightClick},
		{"double click", CmdDoubleClick},
		{"Double Tap!", CmdDoubleClick},
		{"left click", CmdClick},
		{"click here", CmdClick},
		{"tap", CmdClick},
		{"scroll up a bit", CmdScrollUp},
		{"scroll down", CmdScrollDown},
		{"take a picture", CmdScreenshot},
		{"snap", CmdScreenshot},
		{"enable the mouse", CmdEnable},
		{"activate", CmdEnable},
		{"stop", CmdDisable},
		{"pause it", CmdDisable},
		{"maximize this", CmdMaximize},
		{"max", CmdMaximize},
		{"minimize the window", CmdMinimize},
		{"show desktop", CmdShowDesktop},
		{"desktop", CmdShowDesktop},
		{"undo that", CmdUndo},
		{"redo", CmdRedo},
		{"copy", CmdCopy},
		{"paste", CmdPaste},
		{"cut", CmdCut},
		{"select all", CmdSelectAll},
		{"select everything", CmdSelectAll},
		{"hello there", CmdGreeting},
	}

	for _, tt := range tests {
		got, ok := v.Classify(tt.transcript)
		if !ok {
			t.Errorf("Classify(%q) rejected, want %v", tt.transcript, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.transcript, got, tt.want)
		}
	}
}

func TestVocabulary_SpecificPhraseBeatsSubstring(t *testing.T) {
	v := NewVocabulary()

	// "right click" and "double click" both contain "click"; the more
	// specific rule must win.
	if got, _ := v.Classify("right click on it"); got != CmdRightClick {
		t.Errorf("got %v, want right-click", got)
	}
	if got, _ := v.Classify("give it a double click"); got != CmdDoubleClick {
		t.Errorf("got %v, want double-click", got)
	}
}

func TestVocabulary_MatchesWholeWordsOnly(t *testing.T) {
	v := NewVocabulary()

	// "this" contains "hi" and "desktop" contains "stop"; neither may
	// fire on the substring.
	if _, ok := v.Classify("this is fine"); ok {
		t.Error("matched a keyword inside an unrelated word")
	}
	if got, _ := v.Classify("show desktop"); got != CmdShowDesktop {
		t.Errorf(`"show desktop" classified as %v, want show-desktop`, got)
	}
}

func TestVocabulary_RejectsUnknownPhrases(t *testing.T) {
	v := NewVocabulary()

	for _, transcript := range []string{"open the pod bay doors", "", "   ", "um"} {
		if cmd, ok := v.Classify(transcript); ok {
			t.Errorf("Classify(%q) = %v, want reject", transcript, cmd)
		}
	}
}

func TestVocabulary_CustomPhrasesCheckedFirst(t *testing.T) {
	v := NewVocabulary(
		CustomPhrase{Phrase: "abracadabra", Command: CmdScreenshot},
		CustomPhrase{Phrase: "scroll up", Command: CmdScrollDown},
	)

	if got, ok := v.Classify("abracadabra please"); !ok || got != CmdScreenshot {
		t.Errorf("custom phrase gave (%v, %v), want screenshot", got, ok)
	}

	// A custom phrase shadowing a builtin wins.
	if got, _ := v.Classify("scroll up"); got != CmdScrollDown {
		t.Errorf("shadowed builtin gave %v, want the custom command", got)
	}
}

func TestVocabulary_ConcurrentSetCustomAndClassify(t *testing.T) {
	// The phrase API replaces the custom list on the HTTP goroutine
	// while the listener classifies on its own; exercised here under
	// the race detector.
	v := NewVocabulary()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				v.SetCustom([]CustomPhrase{{Phrase: "engage", Command: CmdEnable}})
			} else {
				v.SetCustom(nil)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if cmd, ok := v.Classify("engage"); ok && cmd != CmdEnable {
				t.Errorf("Classify(engage) = %v, want enable or no match", cmd)
				return
			}
			if cmd, ok := v.Classify("click"); !ok || cmd != CmdClick {
				t.Errorf("Classify(click) = (%v, %v), builtins must keep matching", cmd, ok)
				return
			}
		}
	}()

	wg.Wait()
}

func TestCommandFromName_RoundTrips(t *testing.T) {
	for c := CmdClick; c <= CmdGreeting; c++ {
		got, ok := CommandFromName(c.String())
		if !ok || got != c {
			t.Errorf("CommandFromName(%q) = (%v, %v), want %v", c.String(), got, ok, c)
		}
	}
	if _, ok := CommandFromName("launch-missiles"); ok {
		t.Error("unknown command name should not resolve")
	}
}
