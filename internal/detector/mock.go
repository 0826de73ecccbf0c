package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []Hand
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []Hand) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Hand, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset pose builders for tests and the mock pipeline. Coordinates
// are normalized frame space with y growing downward; finger joints
// are positioned so that Fingers() reproduces the requested pose.

// fingerColumns gives each finger a fixed x column so poses are easy
// to reason about in tests.
var fingerColumns = map[string]float64{
	"thumb":  0.62,
	"index":  0.55,
	"middle": 0.50,
	"ring":   0.45,
	"pinky":  0.40,
}

// PoseHand builds a hand whose derived FingerState matches want.
// Extended fingers have tips well above their PIP joints; folded
// fingers have tips at joint level.
func PoseHand(want FingerState) Hand {
	h := Hand{Handedness: "Right", Score: 0.95}
	h.Points[Wrist] = Point{X: 0.5, Y: 0.8}

	place := func(col string, tip, dip, pip, mcp int, up bool) {
		x := fingerColumns[col]
		h.Points[mcp] = Point{X: x, Y: 0.60}
		h.Points[pip] = Point{X: x, Y: 0.50}
		h.Points[dip] = Point{X: x, Y: 0.45}
		if up {
			h.Points[tip] = Point{X: x, Y: 0.35}
		} else {
			h.Points[tip] = Point{X: x, Y: 0.52}
		}
	}

	// The thumb has no DIP; reuse its IP joint for the comparison.
	place("thumb", ThumbTip, ThumbIP, ThumbIP, ThumbMCP, want.Thumb)
	h.Points[ThumbCMC] = Point{X: 0.58, Y: 0.72}
	place("index", IndexTip, IndexDIP, IndexPIP, IndexMCP, want.Index)
	place("middle", MiddleTip, MiddleDIP, MiddlePIP, MiddleMCP, want.Middle)
	place("ring", RingTip, RingDIP, RingPIP, RingMCP, want.Ring)
	place("pinky", PinkyTip, PinkyDIP, PinkyPIP, PinkyMCP, want.Pinky)

	return h
}

// OpenPalmHand returns a hand with all five fingers extended.
func OpenPalmHand() Hand {
	return PoseHand(FingerState{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true})
}

// PeaceSignHand returns the scroll pose: index and middle extended,
// ring and pinky folded. middleY places the middle fingertip at the
// given normalized height so motion between frames can be simulated.
func PeaceSignHand(middleY float64) Hand {
	h := PoseHand(FingerState{Index: true, Middle: true})
	h.Points[MiddleTip].Y = middleY
	return h
}

// PinchHand returns a hand whose thumb and index tips are separated by
// sep in normalized units; other fingers are folded away from the thumb.
func PinchHand(sep float64) Hand {
	h := PoseHand(FingerState{Index: true})
	h.Points[IndexTip] = Point{X: 0.50, Y: 0.40}
	h.Points[ThumbTip] = Point{X: 0.50 + sep, Y: 0.40}
	// Keep the middle tip far from the thumb so no right click triggers.
	h.Points[MiddleTip] = Point{X: 0.20, Y: 0.52}
	return h
}

// MiddlePinchHand returns a hand whose thumb and middle tips are
// separated by sep in normalized units (the right-click pose).
func MiddlePinchHand(sep float64) Hand {
	h := PoseHand(FingerState{Middle: true})
	h.Points[MiddleTip] = Point{X: 0.50, Y: 0.40}
	h.Points[ThumbTip] = Point{X: 0.50 + sep, Y: 0.40}
	// Keep the index tip far from the thumb so no left click triggers.
	h.Points[IndexTip] = Point{X: 0.15, Y: 0.52}
	return h
}

// ThreeFingerHand returns the screenshot shortcut pose: index, middle
// and ring extended, thumb and pinky folded.
func ThreeFingerHand() Hand {
	return PoseHand(FingerState{Index: true, Middle: true, Ring: true})
}

// FourFingerHand returns the show-desktop shortcut pose: all fingers
// but the thumb extended.
func FourFingerHand() Hand {
	return PoseHand(FingerState{Index: true, Middle: true, Ring: true, Pinky: true})
}
