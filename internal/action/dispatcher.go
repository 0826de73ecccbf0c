package action

import (
	"sync"

	"go.uber.org/zap"
)

// queueSize bounds the command queue. Moves arrive at frame rate and
// are cheap to execute; the queue never builds up in practice, but the
// buffer absorbs a burst while a screenshot is being written.
const queueSize = 64

// Dispatcher serializes all sink calls through one consumer goroutine.
// Dispatch may be called from any goroutine.
type Dispatcher struct {
	sink   Sink
	logger *zap.SugaredLogger

	// OnExecuted, if set, is called from the consumer goroutine after
	// each command, with the screenshot path when one was taken. Used
	// for the status line and the event feed.
	OnExecuted func(cmd Command, path string, err error)

	mu     sync.Mutex
	queue  chan Command
	done   chan struct{}
	closed bool
}

// NewDispatcher creates a Dispatcher and starts its consumer goroutine.
func NewDispatcher(sink Sink, logger *zap.SugaredLogger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Command, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues a command for serial execution. Move commands are
// dropped when the queue is full (a newer position is already on the
// way); every other command blocks until there is room. Dispatching
// after Close is a no-op. The mutex is held across the send so Close
// can never close the queue between the closed check and the send.
func (d *Dispatcher) Dispatch(cmd Command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	if cmd.Op == OpMove {
		select {
		case d.queue <- cmd:
		default:
		}
		return
	}
	d.queue <- cmd
}

// Close stops accepting commands, drains the queue, and waits for the
// consumer to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for cmd := range d.queue {
		path, err := d.execute(cmd)
		if err != nil {
			d.logger.Warnw("Action failed", "op", cmd.Op.String(), "origin", cmd.Origin, "error", err)
		}
		if d.OnExecuted != nil {
			d.OnExecuted(cmd, path, err)
		}
	}
}

func (d *Dispatcher) execute(cmd Command) (string, error) {
	switch cmd.Op {
	case OpMove:
		return "", d.sink.MoveCursor(cmd.X, cmd.Y)
	case OpClick:
		return "", d.sink.Click()
	case OpDoubleClick:
		return "", d.sink.DoubleClick()
	case OpRightClick:
		return "", d.sink.RightClick()
	case OpMouseDown:
		return "", d.sink.MouseDown()
	case OpMouseUp:
		return "", d.sink.MouseUp()
	case OpScroll:
		return "", d.sink.Scroll(cmd.Amount)
	case OpHotkey:
		return "", d.sink.Hotkey(cmd.Keys...)
	case OpScreenshot:
		prefix := cmd.Prefix
		if prefix == "" {
			prefix = "screenshot_"
		}
		return d.sink.TakeScreenshot(prefix)
	default:
		d.logger.Warnw("Unknown action op", "op", int(cmd.Op))
		return "", nil
	}
}
