package action

import (
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"
)

// Notifier plays short audio cues when the pointer is enabled or
// disabled. Cue files are optional; a missing file just skips the cue.
type Notifier struct {
	dir    string
	logger *zap.SugaredLogger
	ready  bool
}

// NewNotifier initializes the speaker for the cue sample rate. Audio
// init failing (headless box, no sound device) is not fatal; the
// notifier turns into a no-op and logs once.
func NewNotifier(dir string, logger *zap.SugaredLogger) *Notifier {
	n := &Notifier{dir: dir, logger: logger}
	sr := beep.SampleRate(44100)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		logger.Warnw("Audio cues disabled", "error", err)
		return n
	}
	n.ready = true
	return n
}

// Enabled plays the enable cue.
func (n *Notifier) Enabled() { n.play("enable.wav") }

// Disabled plays the disable cue.
func (n *Notifier) Disabled() { n.play("disable.wav") }

func (n *Notifier) play(name string) {
	if !n.ready {
		return
	}
	f, err := os.Open(filepath.Join(n.dir, name))
	if err != nil {
		return
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		n.logger.Warnw("Bad cue file", "file", name, "error", err)
		return
	}
	resampled := beep.Resample(4, format.SampleRate, 44100, streamer)
	speaker.Play(beep.Seq(resampled, beep.Callback(func() {
		streamer.Close()
	})))
}
