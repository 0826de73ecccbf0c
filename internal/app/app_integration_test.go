package app

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
)

type testRig struct {
	app      *App
	state    *control.State
	sink     *action.RecorderSink
	disp     *action.Dispatcher
	detector *detector.MockDetector
	frame    gocv.Mat
}

// newTestRig builds an app around a looping mock camera, a mock
// detector, and a recorder sink. Timing windows are stretched or
// shrunk so the test only depends on coarse frame counts.
func newTestRig(t *testing.T, mutate func(*config.Config)) *testRig {
	t.Helper()

	cfg := config.Defaults()
	cfg.AuthHoldTime = 100 * time.Millisecond
	cfg.DragHoldTime = time.Second
	cfg.ClickCooldown = 10 * time.Millisecond
	if mutate != nil {
		mutate(cfg)
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	camera := capture.NewMockCamera([]*gocv.Mat{&frame}, true)

	det := detector.NewMockDetector()
	sink := action.NewRecorderSink()
	disp := action.NewDispatcher(sink, zap.NewNop().Sugar())
	state := control.New()

	a := New(Options{
		Config:     cfg,
		Logger:     zap.NewNop().Sugar(),
		Camera:     camera,
		Detector:   det,
		Dispatcher: disp,
		State:      state,
		ScreenW:    1920,
		ScreenH:    1080,
	})

	t.Cleanup(func() {
		a.Stop()
		disp.Close()
		frame.Close()
	})

	return &testRig{
		app:      a,
		state:    state,
		sink:     sink,
		disp:     disp,
		detector: det,
		frame:    frame,
	}
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal(msg)
}

func hasCall(calls []string, want string) bool {
	for _, c := range calls {
		if c == want || strings.HasPrefix(c, want) {
			return true
		}
	}
	return false
}

func TestApp_PalmHoldEnablesAndCursorMoves(t *testing.T) {
	rig := newTestRig(t, nil)
	rig.detector.SetHands([]detector.Hand{detector.OpenPalmHand()})

	if err := rig.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	waitFor(t, 3*time.Second, rig.state.Enabled,
		"palm hold never enabled the mouse")

	waitFor(t, 3*time.Second, func() bool {
		return hasCall(rig.sink.Calls(), "move(")
	}, "no cursor moves dispatched after enabling")
}

func TestApp_PinchReleaseClicks(t *testing.T) {
	rig := newTestRig(t, nil)
	rig.state.SetEnabled(true)
	rig.detector.SetHands([]detector.Hand{detector.PinchHand(0.02)})

	if err := rig.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Hold the pinch for a few frames, well under the drag hold time,
	// then open it.
	time.Sleep(200 * time.Millisecond)
	rig.detector.SetHands([]detector.Hand{detector.PinchHand(0.2)})

	waitFor(t, 3*time.Second, func() bool {
		return hasCall(rig.sink.Calls(), "click")
	}, "pinch release never produced a click")

	if hasCall(rig.sink.Calls(), "mouse-down") {
		t.Error("a quick pinch must not start a drag")
	}
}

func TestApp_HandLossEndsDrag(t *testing.T) {
	rig := newTestRig(t, func(cfg *config.Config) {
		cfg.DragHoldTime = 100 * time.Millisecond
	})
	rig.state.SetEnabled(true)
	rig.detector.SetHands([]detector.Hand{detector.PinchHand(0.02)})

	if err := rig.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	waitFor(t, 3*time.Second, func() bool {
		return hasCall(rig.sink.Calls(), "mouse-down")
	}, "held pinch never started a drag")

	// Hand disappears mid-drag: the OS button must be released.
	rig.detector.SetHands(nil)

	waitFor(t, 3*time.Second, func() bool {
		return hasCall(rig.sink.Calls(), "mouse-up")
	}, "drag was not closed out after the hand vanished")
}

func TestApp_HandleKey(t *testing.T) {
	rig := newTestRig(t, nil)

	if quit := rig.app.HandleKey("q"); !quit {
		t.Error("q should request quit")
	}

	rig.app.HandleKey("m")
	if !rig.state.Enabled() {
		t.Error("m should toggle the mouse on")
	}
	rig.app.HandleKey("m")
	if rig.state.Enabled() {
		t.Error("m should toggle the mouse back off")
	}

	rig.app.HandleKey("s")
	rig.disp.Close()
	if !hasCall(rig.sink.Calls(), "screenshot(screenshot_test_)") {
		t.Errorf("s should take a test screenshot, calls: %v", rig.sink.Calls())
	}
}

func TestApp_FatalCameraErrorStopsPipeline(t *testing.T) {
	rig := newTestRig(t, nil)

	fatal := make(chan error, 1)
	rig.app.opts.OnFatal = func(err error) { fatal <- err }

	if err := rig.app.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Empty the camera: every read now fails and the pipeline must
	// give up after enough consecutive failures.
	rig.detector.SetHands(nil)
	cam := rig.app.opts.Camera.(*capture.MockCamera)
	cam.SetFrames(nil)

	select {
	case <-fatal:
	case <-time.After(10 * time.Second):
		t.Fatal("pipeline never reported the fatal camera error")
	}

	if rig.state.Enabled() {
		t.Error("pointer should be disabled after a fatal camera error")
	}
}
