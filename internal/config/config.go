// Package config provides the immutable runtime configuration for the
// Mudra touchless pointer-control daemon. Values are loaded once at
// startup from defaults, an optional .env file, and the environment;
// nothing reloads at runtime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the gesture and voice pipelines.
type Config struct {
	// Camera
	CameraIndex  int `env:"MUDRA_CAMERA_INDEX"`
	CameraWidth  int `env:"MUDRA_CAMERA_WIDTH"`
	CameraHeight int `env:"MUDRA_CAMERA_HEIGHT"`

	// Hand detection
	MinDetectionConfidence float64 `env:"MUDRA_MIN_DETECTION_CONFIDENCE"`
	MinTrackingConfidence  float64 `env:"MUDRA_MIN_TRACKING_CONFIDENCE"`

	// Cursor mapping
	SmoothingFactor float64 `env:"MUDRA_SMOOTHING_FACTOR"` // higher = smoother, less responsive
	EdgeMargin      float64 `env:"MUDRA_EDGE_MARGIN"`      // pixels excluded from the frame edges

	// Gesture thresholds. RightClickThreshold is always derived as
	// PinchThreshold+5 and is deliberately not configurable on its own.
	PinchThreshold    float64       `env:"MUDRA_PINCH_THRESHOLD"`
	DragHoldTime      time.Duration `env:"MUDRA_DRAG_HOLD_TIME"`
	ClickCooldown     time.Duration `env:"MUDRA_CLICK_COOLDOWN"`
	DoubleClickWindow time.Duration `env:"MUDRA_DOUBLE_CLICK_WINDOW"`
	ShortcutCooldown  time.Duration `env:"MUDRA_SHORTCUT_COOLDOWN"`
	AuthHoldTime      time.Duration `env:"MUDRA_AUTH_HOLD_TIME"`
	ScrollSensitivity float64       `env:"MUDRA_SCROLL_SENSITIVITY"`

	// Voice recognition
	VoiceEnergyThreshold float64       `env:"MUDRA_VOICE_ENERGY_THRESHOLD"` // RMS level treated as speech
	AmbientNoiseDuration time.Duration `env:"MUDRA_AMBIENT_NOISE_DURATION"`
	ListenTimeout        time.Duration `env:"MUDRA_LISTEN_TIMEOUT"`
	PhraseTimeLimit      time.Duration `env:"MUDRA_PHRASE_TIME_LIMIT"`
	TranscribeURL        string        `env:"MUDRA_TRANSCRIBE_URL"`
	TranscribeAPIKey     string        `env:"MUDRA_TRANSCRIBE_API_KEY"`
	TranscribeModel      string        `env:"MUDRA_TRANSCRIBE_MODEL"`
	TranscribeLanguage   string        `env:"MUDRA_TRANSCRIBE_LANGUAGE"`

	// Output
	ScreenshotDir string `env:"MUDRA_SCREENSHOT_DIR"`
	SoundDir      string `env:"MUDRA_SOUND_DIR"` // enable/disable cue files, empty disables cues

	// Storage and server
	DataDir    string `env:"MUDRA_DATA_DIR"` // SQLite database location
	ListenAddr string `env:"MUDRA_LISTEN_ADDR"`
	PluginDir  string `env:"MUDRA_PLUGIN_DIR"`
}

// RightClickThreshold returns the thumb-middle pinch distance for a
// right click. The invariant PinchThreshold+5 holds at all times.
func (c *Config) RightClickThreshold() float64 {
	return c.PinchThreshold + 5
}

// Defaults returns a Config with the stock tuning. Environment
// variables and .env entries override these in Load.
func Defaults() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		CameraIndex:  0,
		CameraWidth:  640,
		CameraHeight: 480,

		MinDetectionConfidence: 0.7,
		MinTrackingConfidence:  0.7,

		SmoothingFactor: 6,
		EdgeMargin:      80,

		PinchThreshold:    35,
		DragHoldTime:      250 * time.Millisecond,
		ClickCooldown:     250 * time.Millisecond,
		DoubleClickWindow: 350 * time.Millisecond,
		ShortcutCooldown:  1800 * time.Millisecond,
		AuthHoldTime:      time.Second,
		ScrollSensitivity: 2.8,

		VoiceEnergyThreshold: 0.015,
		AmbientNoiseDuration: 500 * time.Millisecond,
		ListenTimeout:        5 * time.Second,
		PhraseTimeLimit:      10 * time.Second,
		TranscribeURL:        "https://api.openai.com/v1/audio/transcriptions",
		TranscribeModel:      "whisper-1",
		TranscribeLanguage:   "en",

		ScreenshotDir: filepath.Join(home, "Desktop", "Screenshots"),
		SoundDir:      "",

		DataDir:    filepath.Join(home, ".mudra"),
		ListenAddr: ":8080",
		PluginDir:  filepath.Join(home, ".mudra", "plugins"),
	}
}

// Load builds the configuration: defaults, then .env (if present),
// then environment variables.
func Load() (*Config, error) {
	// Missing .env is fine; only report a file that exists but fails to parse.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SmoothingFactor < 1 {
		return fmt.Errorf("smoothing factor must be >= 1, got %v", c.SmoothingFactor)
	}
	if c.PinchThreshold <= 0 {
		return fmt.Errorf("pinch threshold must be positive, got %v", c.PinchThreshold)
	}
	if c.EdgeMargin < 0 {
		return fmt.Errorf("edge margin must be non-negative, got %v", c.EdgeMargin)
	}
	if c.ScrollSensitivity <= 0 {
		return fmt.Errorf("scroll sensitivity must be positive, got %v", c.ScrollSensitivity)
	}
	return nil
}
