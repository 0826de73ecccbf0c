// Package app wires the camera, detector, gesture classifier, voice
// listener, and action dispatcher into the running virtual mouse.
package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/voice"
)

// Options holds the collaborators the App orchestrates. Camera,
// Detector, Dispatcher, State, and Logger are required; Listener and
// Notifier are optional.
type Options struct {
	Config     *config.Config
	Logger     *zap.SugaredLogger
	Camera     capture.Camera
	Detector   detector.Detector
	Dispatcher *action.Dispatcher
	Listener   *voice.Listener
	Notifier   *action.Notifier
	State      *control.State

	// ScreenW and ScreenH are the primary display size in pixels.
	ScreenW, ScreenH int

	// OnEvent, if set, receives every executed action for the event
	// feed. Called from the dispatcher goroutine.
	OnEvent func(origin, actionName, detail string)
	// OnFatal, if set, is called once when the pipeline dies from an
	// unrecoverable camera error, after cleanup has run.
	OnFatal func(err error)
}

// App is the main application orchestrating the two input pipelines
// and the shared action dispatcher.
type App struct {
	opts       Options
	classifier *gesture.Classifier
	mapper     *gesture.Mapper

	mu     sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates an App from the given options.
func New(opts Options) *App {
	cfg := opts.Config

	a := &App{
		opts: opts,
		mapper: gesture.NewMapper(
			opts.ScreenW, opts.ScreenH,
			cfg.EdgeMargin, cfg.SmoothingFactor,
		),
	}

	a.classifier = gesture.NewClassifier(gesture.Tuning{
		PinchThreshold:    cfg.PinchThreshold,
		DragHoldTime:      cfg.DragHoldTime,
		ClickCooldown:     cfg.ClickCooldown,
		DoubleClickWindow: cfg.DoubleClickWindow,
		ShortcutCooldown:  cfg.ShortcutCooldown,
		AuthHoldTime:      cfg.AuthHoldTime,
		ScrollSensitivity: cfg.ScrollSensitivity,
	}, opts.State)
	a.classifier.OnEnabled = func() {
		if a.opts.Notifier != nil {
			a.opts.Notifier.Enabled()
		}
	}

	opts.Dispatcher.OnExecuted = a.onExecuted
	if opts.Listener != nil {
		opts.Listener.OnCommand = a.onVoiceCommand
	}

	return a
}

// State returns the shared control state.
func (a *App) State() *control.State { return a.opts.State }

// Start opens the camera and launches the frame pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.opts.Camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	a.opts.Logger.Infow("Frame pipeline started")
	return nil
}

// Stop halts the pipeline and releases the camera and detector. A drag
// in progress is closed out so the OS button is never left down.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	done := a.doneCh
	a.mu.Unlock()

	<-done

	if ev := a.classifier.Reset(); ev.Kind == gesture.KindDragEnd {
		a.opts.Dispatcher.Dispatch(action.Command{Op: action.OpMouseUp, Origin: "gesture"})
	}

	if a.opts.Listener != nil {
		a.opts.Listener.Stop()
	}

	if err := a.opts.Camera.Close(); err != nil {
		a.opts.Logger.Warnw("Error closing camera", "error", err)
	}
	if err := a.opts.Detector.Close(); err != nil {
		a.opts.Logger.Warnw("Error closing detector", "error", err)
	}

	a.opts.Logger.Infow("Frame pipeline stopped")
}

// SetMouseEnabled pauses or resumes the pointer.
func (a *App) SetMouseEnabled(enabled bool) {
	if !a.opts.State.SetEnabled(enabled) {
		return
	}
	if enabled {
		a.opts.State.SetStatus("Mouse enabled")
		if a.opts.Notifier != nil {
			a.opts.Notifier.Enabled()
		}
	} else {
		a.opts.State.SetStatus("Mouse paused - show palm or press M")
		if a.opts.Notifier != nil {
			a.opts.Notifier.Disabled()
		}
	}
}

// ToggleMouse flips the pointer enabled state.
func (a *App) ToggleMouse() {
	a.SetMouseEnabled(!a.opts.State.Enabled())
}

// SetVoiceEnabled starts or stops the voice listener.
func (a *App) SetVoiceEnabled(enabled bool) {
	if a.opts.Listener == nil {
		return
	}
	if enabled {
		a.opts.Listener.Start()
	} else {
		a.opts.Listener.Stop()
	}
}

// VoiceListening reports whether the voice listener is running.
func (a *App) VoiceListening() bool {
	return a.opts.Listener != nil && a.opts.Listener.Listening()
}

// HandleKey processes a keyboard control key and reports whether the
// application should quit. Keys: q quits, m toggles the mouse, v
// toggles voice, s takes a test screenshot.
func (a *App) HandleKey(key string) (quit bool) {
	switch key {
	case "q":
		return true
	case "m":
		a.ToggleMouse()
	case "v":
		a.SetVoiceEnabled(!a.VoiceListening())
	case "s":
		a.opts.Dispatcher.Dispatch(action.Command{
			Op:     action.OpScreenshot,
			Prefix: "screenshot_test_",
			Origin: "manual",
		})
	}
	return false
}

// onExecuted runs on the dispatcher goroutine after every command.
func (a *App) onExecuted(cmd action.Command, path string, err error) {
	if cmd.Op == action.OpScreenshot {
		if err != nil {
			a.opts.State.SetStatus("Screenshot failed")
		} else {
			a.opts.State.SetStatus("Screenshot saved: " + path)
		}
	}

	if a.opts.OnEvent != nil && cmd.Op != action.OpMove {
		detail := path
		if err != nil {
			detail = err.Error()
		}
		a.opts.OnEvent(cmd.Origin, cmd.Op.String(), detail)
	}
}

// onVoiceCommand runs on the listener goroutine for every recognized
// phrase. Enable, disable, and greeting act on shared state; the rest
// become queued actions.
func (a *App) onVoiceCommand(cmd voice.Command, transcript string) {
	switch cmd {
	case voice.CmdEnable:
		a.SetMouseEnabled(true)
		return
	case voice.CmdDisable:
		a.SetMouseEnabled(false)
		return
	case voice.CmdGreeting:
		a.opts.State.SetStatus("Hello! Listening for commands")
		return
	}

	if c, ok := voiceCommand(cmd); ok {
		a.opts.Dispatcher.Dispatch(c)
	}
}
