package app

import (
	"time"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// maxReadErrors is the number of consecutive camera read failures
// tolerated before the pipeline shuts itself down.
const maxReadErrors = 30

// runPipeline is the frame loop: read a frame, detect the hand,
// classify the gesture, and enqueue the resulting actions. It owns the
// classifier and mapper; no other goroutine touches them.
func (a *App) runPipeline(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	fps := a.opts.Camera.FPS()
	if fps <= 0 {
		fps = 15
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	readErrors := 0

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		mat, err := a.opts.Camera.ReadFrame()
		if err != nil {
			readErrors++
			if readErrors >= maxReadErrors {
				a.fatal(err)
				return
			}
			continue
		}
		readErrors = 0

		width, height := mat.Cols(), mat.Rows()
		hands, err := a.opts.Detector.Detect(mat)
		mat.Close()
		if err != nil {
			a.opts.Logger.Warnw("Hand detection failed", "error", err)
			continue
		}

		if len(hands) == 0 {
			if ev := a.classifier.Reset(); ev.Kind == gesture.KindDragEnd {
				a.opts.Dispatcher.Dispatch(action.Command{Op: action.OpMouseUp, Origin: "gesture"})
			}
			continue
		}

		frame := &detector.Frame{
			Hand:   hands[0],
			Width:  width,
			Height: height,
			Time:   time.Now(),
		}

		ev := a.classifier.Classify(frame)

		if a.opts.State.Enabled() && moveAllowed(ev) {
			tipX, tipY := frame.Hand.TipPixel(detector.IndexTip, width, height)
			x, y := a.mapper.Map(tipX, tipY, width, height)
			a.opts.State.SetCursor(x, y)
			a.opts.Dispatcher.Dispatch(action.Command{Op: action.OpMove, X: x, Y: y, Origin: "gesture"})
		}

		if cmd, ok := gestureCommand(ev); ok {
			a.opts.Dispatcher.Dispatch(cmd)
		}
	}
}

// fatal runs the unrecoverable-error cleanup: end any drag, stop the
// voice listener, release the camera, and report.
func (a *App) fatal(err error) {
	a.opts.Logger.Errorw("Camera failed, stopping pipeline", "error", err)

	if ev := a.classifier.Reset(); ev.Kind == gesture.KindDragEnd {
		a.opts.Dispatcher.Dispatch(action.Command{Op: action.OpMouseUp, Origin: "gesture"})
	}
	a.opts.State.SetEnabled(false)
	a.opts.State.SetStatus("Camera error - mouse stopped")

	if a.opts.Listener != nil {
		a.opts.Listener.Stop()
	}
	if err := a.opts.Camera.Close(); err != nil {
		a.opts.Logger.Warnw("Error closing camera", "error", err)
	}

	a.mu.Lock()
	a.stopCh = nil
	a.mu.Unlock()

	if a.opts.OnFatal != nil {
		a.opts.OnFatal(err)
	}
}
