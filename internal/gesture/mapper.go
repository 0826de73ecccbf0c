package gesture

// Mapper converts a fingertip position in camera pixel space to a
// screen-space cursor position with single-pole exponential smoothing.
// The mapper owns its previous output; it is not safe for concurrent
// use and belongs to the frame loop alone.
type Mapper struct {
	screenW   float64
	screenH   float64
	margin    float64
	smoothing float64
	prevX     float64
	prevY     float64
}

// NewMapper creates a Mapper for the given screen size. margin is the
// pixel band excluded from the frame edges; smoothing is the divisor
// of the exponential filter (higher = smoother). The previous output
// is seeded to the screen center.
func NewMapper(screenW, screenH int, margin, smoothing float64) *Mapper {
	if smoothing < 1 {
		smoothing = 1
	}
	return &Mapper{
		screenW:   float64(screenW),
		screenH:   float64(screenH),
		margin:    margin,
		smoothing: smoothing,
		prevX:     float64(screenW) / 2,
		prevY:     float64(screenH) / 2,
	}
}

// Map converts a camera-space point to a smoothed screen position.
// The x axis interpolates [margin, frameW-margin] onto [0, screenW]
// and likewise for y. Output is clamped to the screen after smoothing
// so the stored previous position always matches what was issued to
// the cursor.
func (m *Mapper) Map(x, y float64, frameW, frameH int) (float64, float64) {
	targetX := interp(x, m.margin, float64(frameW)-m.margin, 0, m.screenW)
	targetY := interp(y, m.margin, float64(frameH)-m.margin, 0, m.screenH)

	currX := m.prevX + (targetX-m.prevX)/m.smoothing
	currY := m.prevY + (targetY-m.prevY)/m.smoothing

	currX = clamp(currX, 0, m.screenW-1)
	currY = clamp(currY, 0, m.screenH-1)

	m.prevX, m.prevY = currX, currY
	return currX, currY
}

// interp linearly maps v from [inLo, inHi] to [outLo, outHi] without
// clamping; inputs past the margins extrapolate and are clamped after
// smoothing in Map.
func interp(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
