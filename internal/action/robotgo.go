package action

import (
	"github.com/go-vgo/robotgo"
)

// RobotSink drives the real OS pointer and keyboard through robotgo.
type RobotSink struct {
	shots *Screenshotter
}

// NewRobotSink creates an OS sink writing screenshots through shots.
func NewRobotSink(shots *Screenshotter) *RobotSink {
	return &RobotSink{shots: shots}
}

// ScreenSize returns the primary display resolution in pixels.
func ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

func (s *RobotSink) MoveCursor(x, y float64) error {
	robotgo.Move(int(x), int(y))
	return nil
}

func (s *RobotSink) Click() error {
	robotgo.Click("left", false)
	return nil
}

func (s *RobotSink) DoubleClick() error {
	robotgo.Click("left", true)
	return nil
}

func (s *RobotSink) RightClick() error {
	robotgo.Click("right", false)
	return nil
}

func (s *RobotSink) MouseDown() error {
	return robotgo.Toggle("left", "down")
}

func (s *RobotSink) MouseUp() error {
	return robotgo.Toggle("left", "up")
}

func (s *RobotSink) Scroll(amount int) error {
	robotgo.Scroll(0, amount)
	return nil
}

func (s *RobotSink) Hotkey(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	mods := make([]interface{}, 0, len(keys)-1)
	for _, m := range keys[1:] {
		mods = append(mods, m)
	}
	return robotgo.KeyTap(keys[0], mods...)
}

func (s *RobotSink) TakeScreenshot(prefix string) (string, error) {
	return s.shots.Capture(prefix)
}
