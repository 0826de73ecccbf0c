package action

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
)

// Screenshotter captures the primary display to timestamped PNG files
// in a fixed directory.
type Screenshotter struct {
	dir string
}

// NewScreenshotter ensures dir exists and is writable, then returns a
// Screenshotter saving into it. The write probe catches permission
// problems at startup instead of on the first capture.
func NewScreenshotter(dir string) (*Screenshotter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating screenshot dir: %w", err)
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return nil, fmt.Errorf("screenshot dir not writable: %w", err)
	}
	os.Remove(probe)
	return &Screenshotter{dir: dir}, nil
}

// Dir returns the directory screenshots are saved into.
func (s *Screenshotter) Dir() string { return s.dir }

// Capture grabs display 0 and writes <prefix><YYYYMMDD_HHMMSS>.png,
// returning the full path.
func (s *Screenshotter) Capture(prefix string) (string, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return "", fmt.Errorf("no active display")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return "", fmt.Errorf("capturing display: %w", err)
	}

	name := prefix + time.Now().Format("20060102_150405") + ".png"
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, nil
}
