package control

import (
	"sync"
	"testing"
)

func TestState_SetEnabledReportsTransition(t *testing.T) {
	s := New()

	if s.Enabled() {
		t.Fatal("new state should start disabled")
	}
	if !s.SetEnabled(true) {
		t.Error("enabling a disabled state should report a change")
	}
	if s.SetEnabled(true) {
		t.Error("re-enabling an enabled state should not report a change")
	}
	if !s.SetEnabled(false) {
		t.Error("disabling an enabled state should report a change")
	}
}

func TestState_OnEnabledChangeFiresOnTransitions(t *testing.T) {
	s := New()

	var got []bool
	s.OnEnabledChange(func(enabled bool) { got = append(got, enabled) })

	s.SetEnabled(true)
	s.SetEnabled(true) // no transition, no callback
	s.SetEnabled(false)
	s.Toggle()

	want := []bool{true, false, true}
	if len(got) != len(want) {
		t.Fatalf("callback fired %d times, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestState_Toggle(t *testing.T) {
	s := New()

	if !s.Toggle() {
		t.Error("first toggle should enable")
	}
	if s.Toggle() {
		t.Error("second toggle should disable")
	}
}

func TestState_SnapshotIsConsistentCopy(t *testing.T) {
	s := New()
	s.SetEnabled(true)
	s.SetStatus("Dragging")
	s.SetDragging(true)
	s.SetCursor(100, 200)

	snap := s.Snapshot()
	if !snap.Enabled || snap.Status != "Dragging" || !snap.Dragging {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.CursorX != 100 || snap.CursorY != 200 {
		t.Errorf("unexpected cursor in snapshot: (%v, %v)", snap.CursorX, snap.CursorY)
	}

	// Mutating after the snapshot must not affect the copy.
	s.SetStatus("changed")
	if snap.Status != "Dragging" {
		t.Error("snapshot should be immutable")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	// Exercises the mutex under the race detector: one writer playing
	// the gesture loop, one playing the voice listener.
	s := New()
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetDragging(i%2 == 0)
			s.SetStatus("gesture")
			s.Snapshot()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetEnabled(i%2 == 0)
			s.SetStatus("voice")
			s.Enabled()
		}
	}()

	wg.Wait()
}
