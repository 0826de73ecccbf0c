package voice

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ScriptedMicrophone replays queued PCM segments. Once the queue is
// empty, Listen blocks until the context is cancelled. Used by tests.
type ScriptedMicrophone struct {
	mu       sync.Mutex
	segments [][]int16

	calibrations int32
}

// NewScriptedMicrophone queues the given segments.
func NewScriptedMicrophone(segments ...[]int16) *ScriptedMicrophone {
	return &ScriptedMicrophone{segments: segments}
}

// Calibrations returns how many times Calibrate ran.
func (m *ScriptedMicrophone) Calibrations() int {
	return int(atomic.LoadInt32(&m.calibrations))
}

func (m *ScriptedMicrophone) Calibrate(ctx context.Context, d time.Duration) (float64, error) {
	atomic.AddInt32(&m.calibrations, 1)
	return 0.01, ctx.Err()
}

func (m *ScriptedMicrophone) Listen(ctx context.Context, threshold float64, timeout, phraseLimit time.Duration) ([]int16, error) {
	m.mu.Lock()
	if len(m.segments) > 0 {
		seg := m.segments[0]
		m.segments = m.segments[1:]
		m.mu.Unlock()
		return seg, nil
	}
	m.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (m *ScriptedMicrophone) SampleRate() int { return micSampleRate }
func (m *ScriptedMicrophone) Close() error    { return nil }

// ScriptedRecognizer replays queued transcripts in order.
type ScriptedRecognizer struct {
	mu          sync.Mutex
	transcripts []string

	// Err, if set, is returned once the transcript queue is empty.
	Err error
}

// NewScriptedRecognizer queues the given transcripts.
func NewScriptedRecognizer(transcripts ...string) *ScriptedRecognizer {
	return &ScriptedRecognizer{transcripts: transcripts}
}

func (r *ScriptedRecognizer) Transcribe(ctx context.Context, pcm []int16, sampleRate int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.transcripts) == 0 {
		return "", r.Err
	}
	t := r.transcripts[0]
	r.transcripts = r.transcripts[1:]
	return t, nil
}
