package voice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ListenerConfig carries the timing and sensitivity knobs of the
// listen loop.
type ListenerConfig struct {
	// EnergyThreshold is the floor RMS energy for speech onset. The
	// calibrated ambient level raises the effective threshold but
	// never lowers it below this floor.
	EnergyThreshold float64
	// AmbientNoiseDuration is how long to sample ambient noise before
	// each listen.
	AmbientNoiseDuration time.Duration
	// ListenTimeout bounds the wait for speech onset per cycle.
	ListenTimeout time.Duration
	// PhraseTimeLimit bounds one recorded segment.
	PhraseTimeLimit time.Duration
}

// Listener runs the voice loop: record a segment, transcribe it,
// classify it, hand the command to OnCommand. It never executes
// actions itself; commands are delivered in order and there is no
// cooldown between them.
type Listener struct {
	mic    Microphone
	rec    Recognizer
	vocab  *Vocabulary
	cfg    ListenerConfig
	logger *zap.SugaredLogger

	// OnCommand receives each recognized command with its transcript.
	// Called from the listener goroutine.
	OnCommand func(cmd Command, transcript string)
	// OnStatus, if set, receives listening-state changes for the UI.
	OnStatus func(listening bool)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewListener wires a listener; call Start to begin the loop.
func NewListener(mic Microphone, rec Recognizer, vocab *Vocabulary, cfg ListenerConfig, logger *zap.SugaredLogger) *Listener {
	return &Listener{
		mic:    mic,
		rec:    rec,
		vocab:  vocab,
		cfg:    cfg,
		logger: logger,
	}
}

// Listening reports whether the loop is running.
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Start launches the listen loop. Starting an already-listening
// listener is a no-op, so a repeated "enable voice" command or key
// press never spawns a second loop.
func (l *Listener) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true
	l.mu.Unlock()

	if l.OnStatus != nil {
		l.OnStatus(true)
	}
	go l.loop(ctx)
}

// Stop requests cancellation and waits for the loop to exit. The loop
// checks for cancellation between pipeline stages, so a segment in
// flight finishes or aborts quickly rather than being killed mid-call.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	cancel := l.cancel
	done := l.done
	l.mu.Unlock()

	cancel()
	<-done
}

func (l *Listener) loop(ctx context.Context) {
	defer func() {
		l.mu.Lock()
		l.running = false
		done := l.done
		l.mu.Unlock()
		if l.OnStatus != nil {
			l.OnStatus(false)
		}
		close(done)
	}()

	for {
		// Recalibrating each cycle tracks a changing room: the
		// threshold floats with ambient noise but never drops below
		// the configured floor.
		threshold := l.cfg.EnergyThreshold
		if ambient, err := l.mic.Calibrate(ctx, l.cfg.AmbientNoiseDuration); err == nil {
			if t := ambient * 2; t > threshold {
				threshold = t
			}
		} else if errors.Is(err, context.Canceled) {
			return
		} else {
			l.logger.Warnw("Ambient calibration failed, using configured threshold", "error", err)
		}

		if ctx.Err() != nil {
			return
		}

		pcm, err := l.mic.Listen(ctx, threshold, l.cfg.ListenTimeout, l.cfg.PhraseTimeLimit)
		if errors.Is(err, ErrNoSpeech) {
			continue
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			l.logger.Warnw("Microphone read failed", "error", err)
			continue
		}

		if ctx.Err() != nil {
			return
		}

		transcript, err := l.rec.Transcribe(ctx, pcm, l.mic.SampleRate())
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			l.logger.Warnw("Transcription failed", "error", err)
			continue
		}

		transcript = strings.ToLower(strings.TrimSpace(transcript))
		if transcript == "" {
			continue
		}

		cmd, ok := l.vocab.Classify(transcript)
		if !ok {
			l.logger.Infow("Unrecognized phrase", "transcript", transcript)
			continue
		}

		l.logger.Infow("Voice command", "command", cmd.String(), "transcript", transcript)
		if l.OnCommand != nil {
			l.OnCommand(cmd, transcript)
		}
	}
}
