// Package detector provides hand landmark types and the detection
// interface feeding the gesture classifier.
package detector

import (
	"math"
	"time"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// fingerUpMargin is the normalized tip-above-joint distance required to
// call a finger extended. Large enough to reject landmark jitter.
const fingerUpMargin = 0.02

// Point represents a landmark position. X and Y are normalized to
// [0,1] in frame space; Z is MediaPipe's relative depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand represents the 21 landmarks of a single detected hand.
type Hand struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness string              `json:"handedness"` // "Left" or "Right"
	Score      float64             `json:"score"`
}

// Frame is a single per-frame hand observation: one hand's landmarks
// plus the pixel dimensions of the source frame and its timestamp.
// Frames are transient; they are classified and discarded.
type Frame struct {
	Hand   Hand
	Width  int
	Height int
	Time   time.Time
}

// FingerState records which fingers are extended, derived per frame
// from tip-versus-joint comparison.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// All reports whether all five fingers are extended (open palm).
func (f FingerState) All() bool {
	return f.Thumb && f.Index && f.Middle && f.Ring && f.Pinky
}

// fingerUp reports whether the tip landmark sits above the PIP joint.
// Image y grows downward, so "above" means a more negative difference.
func (h *Hand) fingerUp(tip, pip int) bool {
	return h.Points[tip].Y-h.Points[pip].Y < -fingerUpMargin
}

// Fingers derives the extended/folded state of each finger.
func (h *Hand) Fingers() FingerState {
	return FingerState{
		Thumb:  h.fingerUp(ThumbTip, ThumbIP),
		Index:  h.fingerUp(IndexTip, IndexPIP),
		Middle: h.fingerUp(MiddleTip, MiddlePIP),
		Ring:   h.fingerUp(RingTip, RingPIP),
		Pinky:  h.fingerUp(PinkyTip, PinkyPIP),
	}
}

// TipPixel returns the pixel-space position of the given landmark
// within a frame of the given dimensions.
func (h *Hand) TipPixel(index, width, height int) (float64, float64) {
	p := h.Points[index]
	return p.X * float64(width), p.Y * float64(height)
}

// PixelDistance returns the Euclidean distance between two points in
// pixel space.
func PixelDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}
