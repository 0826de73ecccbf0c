package voice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrNoSpeech is returned by Listen when the wait-for-speech timeout
// expires without the energy threshold being crossed.
var ErrNoSpeech = errors.New("no speech detected before timeout")

// Microphone records mono PCM16 speech segments.
type Microphone interface {
	// Calibrate samples ambient noise for the given duration and
	// returns its mean RMS energy (0..1).
	Calibrate(ctx context.Context, d time.Duration) (float64, error)
	// Listen waits for a chunk whose RMS energy exceeds threshold,
	// then records until the speaker falls silent or phraseLimit is
	// reached. It returns ErrNoSpeech if timeout expires first.
	Listen(ctx context.Context, threshold float64, timeout, phraseLimit time.Duration) ([]int16, error)
	// SampleRate returns the capture rate in Hz.
	SampleRate() int
	Close() error
}

const (
	micSampleRate = 16000
	micChunk      = 512 // samples per read, 32ms at 16kHz

	// trailingSilence ends a segment once this much continuous
	// below-threshold audio follows the speech.
	trailingSilence = 800 * time.Millisecond
)

// PortAudioMicrophone captures from the default input device.
type PortAudioMicrophone struct {
	stream *portaudio.Stream
	buf    []int16
}

// OpenMicrophone initializes portaudio and opens the default input
// stream. The caller owns the returned microphone and must Close it.
func OpenMicrophone() (*PortAudioMicrophone, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	m := &PortAudioMicrophone{buf: make([]int16, micChunk)}
	stream, err := portaudio.OpenDefaultStream(1, 0, micSampleRate, micChunk, m.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("opening input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("starting input stream: %w", err)
	}
	m.stream = stream
	return m, nil
}

func (m *PortAudioMicrophone) SampleRate() int { return micSampleRate }

func (m *PortAudioMicrophone) Close() error {
	var err error
	if m.stream != nil {
		m.stream.Stop()
		err = m.stream.Close()
		m.stream = nil
	}
	portaudio.Terminate()
	return err
}

// readChunk blocks for one capture buffer and returns its RMS energy.
func (m *PortAudioMicrophone) readChunk() (float64, error) {
	if err := m.stream.Read(); err != nil {
		return 0, fmt.Errorf("reading microphone: %w", err)
	}
	return rmsEnergy(m.buf), nil
}

func (m *PortAudioMicrophone) Calibrate(ctx context.Context, d time.Duration) (float64, error) {
	deadline := time.Now().Add(d)
	var sum float64
	var n int
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		e, err := m.readChunk()
		if err != nil {
			return 0, err
		}
		sum += e
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (m *PortAudioMicrophone) Listen(ctx context.Context, threshold float64, timeout, phraseLimit time.Duration) ([]int16, error) {
	waitDeadline := time.Now().Add(timeout)

	// Wait for speech onset.
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(waitDeadline) {
			return nil, ErrNoSpeech
		}
		e, err := m.readChunk()
		if err != nil {
			return nil, err
		}
		if e >= threshold {
			break
		}
	}

	// Record until trailing silence or the phrase limit.
	segment := append([]int16(nil), m.buf...)
	phraseDeadline := time.Now().Add(phraseLimit)
	var silence time.Duration
	chunkDur := time.Duration(micChunk) * time.Second / micSampleRate

	for time.Now().Before(phraseDeadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := m.readChunk()
		if err != nil {
			return nil, err
		}
		segment = append(segment, m.buf...)
		if e < threshold {
			silence += chunkDur
			if silence >= trailingSilence {
				break
			}
		} else {
			silence = 0
		}
	}
	return segment, nil
}

// rmsEnergy returns the root-mean-square of the samples normalized to
// 0..1.
func rmsEnergy(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / 32768.0
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}
