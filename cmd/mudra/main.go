package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/action"
	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
	"github.com/ayusman/mudra/internal/voice"
)

func main() {
	fmt.Println("Mudra - Touchless Virtual Mouse")

	zl, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load configuration", "error", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatalw("Failed to create data directory", "error", err)
	}
	st, err := store.New(filepath.Join(cfg.DataDir, "mudra.db"))
	if err != nil {
		logger.Fatalw("Failed to initialize store", "error", err)
	}
	defer st.Close()

	shots, err := action.NewScreenshotter(cfg.ScreenshotDir)
	if err != nil {
		logger.Fatalw("Screenshot directory unusable", "error", err)
	}

	// Action sink: robotgo against the OS, or a scripted osinput
	// plugin when one is installed.
	var sink action.Sink = action.NewRobotSink(shots)
	pluginMgr := plugin.NewManager(cfg.PluginDir, logger)
	if err := pluginMgr.Discover(); err != nil {
		logger.Warnw("Plugin discovery failed", "error", err)
	} else if ps, err := plugin.NewSink(pluginMgr, "osinput", 5*time.Second); err == nil {
		logger.Infow("Using osinput plugin sink")
		sink = ps
	}

	dispatcher := action.NewDispatcher(sink, logger)
	defer dispatcher.Close()

	var notifier *action.Notifier
	if cfg.SoundDir != "" {
		notifier = action.NewNotifier(cfg.SoundDir, logger)
	}

	// Hand detector: MediaPipe bridge, or the mock when the Python
	// side is not installed.
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        1,
		MinConfidence:   cfg.MinDetectionConfidence,
		MinTrackingConf: cfg.MinTrackingConfidence,
	}); err == nil {
		det = mp
		logger.Infow("Using MediaPipe hand detection")
	} else {
		logger.Warnw("MediaPipe not available, using mock detector", "error", err)
		det = detector.NewMockDetector()
	}

	camera := capture.NewCamera(capture.Options{
		DeviceID: cfg.CameraIndex,
		Width:    cfg.CameraWidth,
		Height:   cfg.CameraHeight,
		Mirror:   true,
	})

	// Voice pipeline is optional; the mouse works without it.
	var listener *voice.Listener
	vocab := voice.NewVocabulary(loadCustomPhrases(st, logger)...)
	if mic, err := voice.OpenMicrophone(); err == nil {
		rec := voice.NewHTTPRecognizer(
			cfg.TranscribeURL, cfg.TranscribeAPIKey,
			cfg.TranscribeModel, cfg.TranscribeLanguage,
		)
		listener = voice.NewListener(mic, rec, vocab, voice.ListenerConfig{
			EnergyThreshold:      cfg.VoiceEnergyThreshold,
			AmbientNoiseDuration: cfg.AmbientNoiseDuration,
			ListenTimeout:        cfg.ListenTimeout,
			PhraseTimeLimit:      cfg.PhraseTimeLimit,
		}, logger)
		defer mic.Close()
	} else {
		logger.Warnw("Microphone not available, voice commands disabled", "error", err)
	}

	state := control.New()
	events := server.NewEventsHandler(logger)

	screenW, screenH := action.ScreenSize()
	a := app.New(app.Options{
		Config:     cfg,
		Logger:     logger,
		Camera:     camera,
		Detector:   det,
		Dispatcher: dispatcher,
		Listener:   listener,
		Notifier:   notifier,
		State:      state,
		ScreenW:    screenW,
		ScreenH:    screenH,
		OnEvent:    events.Publish,
	})

	srv := server.New(server.Config{
		Store:  st,
		Camera: camera,
		State:  state,
		Events: events,
		Hooks: server.ControlHooks{
			SetMouse:       a.SetMouseEnabled,
			SetVoice:       a.SetVoiceEnabled,
			VoiceListening: a.VoiceListening,
		},
		OnPhrasesChanged: func() {
			vocab.SetCustom(loadCustomPhrases(st, logger))
		},
	})
	go func() {
		logger.Infow("Control server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Errorw("Control server failed", "error", err)
		}
	}()

	if err := a.Start(); err != nil {
		logger.Fatalw("Failed to start the frame pipeline", "error", err)
	}
	if listener != nil {
		listener.Start()
	}

	t := tray.New(listener != nil)
	t.OnMouseToggle(a.SetMouseEnabled)
	t.OnVoiceToggle(a.SetVoiceEnabled)
	t.OnScreenshot(func() {
		dispatcher.Dispatch(action.Command{
			Op:     action.OpScreenshot,
			Prefix: "screenshot_test_",
			Origin: "manual",
		})
	})
	t.OnQuit(a.Stop)
	a.State().OnEnabledChange(t.SetMouseEnabled)

	// Blocks until Quit is chosen from the menu.
	t.Run()
}

// loadCustomPhrases reads user-defined voice triggers from the store.
func loadCustomPhrases(st *store.Store, logger *zap.SugaredLogger) []voice.CustomPhrase {
	rows, err := st.Phrases().List()
	if err != nil {
		logger.Warnw("Failed to load custom phrases", "error", err)
		return nil
	}

	phrases := make([]voice.CustomPhrase, 0, len(rows))
	for _, row := range rows {
		cmd, ok := voice.CommandFromName(row.Command)
		if !ok {
			logger.Warnw("Skipping phrase with unknown command", "phrase", row.Phrase, "command", row.Command)
			continue
		}
		phrases = append(phrases, voice.CustomPhrase{Phrase: row.Phrase, Command: cmd})
	}
	return phrases
}
