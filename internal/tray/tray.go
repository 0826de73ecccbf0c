// Package tray provides the macOS menu bar interface for the Mudra
// virtual mouse.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the menu bar application.
type Tray struct {
	onMouseToggle func(enabled bool)
	onVoiceToggle func(enabled bool)
	onScreenshot  func()
	onSettings    func()
	onQuit        func()

	mouseEnabled bool
	voiceEnabled bool
	mu           sync.RWMutex

	// Menu items stored for later updates
	menuMouse      *systray.MenuItem
	menuVoice      *systray.MenuItem
	menuLastAction *systray.MenuItem
}

// New creates a Tray. The pointer starts disabled (the palm hold or
// the menu enables it); the voice listener starts in the given state.
func New(voiceEnabled bool) *Tray {
	return &Tray{
		voiceEnabled: voiceEnabled,
	}
}

// OnMouseToggle sets the callback for the mouse enable/disable item.
func (t *Tray) OnMouseToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMouseToggle = fn
}

// OnVoiceToggle sets the callback for the voice enable/disable item.
func (t *Tray) OnVoiceToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onVoiceToggle = fn
}

// OnScreenshot sets the callback for the screenshot item.
func (t *Tray) OnScreenshot(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onScreenshot = fn
}

// OnSettings sets the callback for the settings item.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback for the quit item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the menu bar application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the menu bar application.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Virtual Mouse")

	t.menuMouse = systray.AddMenuItem("○ Mouse paused", "Toggle gesture mouse")
	t.menuVoice = systray.AddMenuItem(t.voiceTitle(), "Toggle voice commands")
	systray.AddSeparator()

	t.menuLastAction = systray.AddMenuItem("Last: none", "Last executed action")
	t.menuLastAction.Disable()
	systray.AddSeparator()

	menuScreenshot := systray.AddMenuItem("Take Screenshot", "Capture the screen now")
	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuMouse.ClickedCh:
				t.handleMouseToggle()
			case <-t.menuVoice.ClickedCh:
				t.handleVoiceToggle()
			case <-menuScreenshot.ClickedCh:
				t.handleScreenshot()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

func (t *Tray) voiceTitle() string {
	if t.voiceEnabled {
		return "● Voice on"
	}
	return "○ Voice off"
}

// handleMouseToggle handles the mouse menu item click.
func (t *Tray) handleMouseToggle() {
	t.mu.Lock()
	t.mouseEnabled = !t.mouseEnabled
	enabled := t.mouseEnabled
	t.applyMouseTitle()
	callback := t.onMouseToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleVoiceToggle handles the voice menu item click.
func (t *Tray) handleVoiceToggle() {
	t.mu.Lock()
	t.voiceEnabled = !t.voiceEnabled
	enabled := t.voiceEnabled
	if t.menuVoice != nil {
		t.menuVoice.SetTitle(t.voiceTitle())
	}
	callback := t.onVoiceToggle
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

// handleScreenshot handles the screenshot menu item click.
func (t *Tray) handleScreenshot() {
	t.mu.RLock()
	callback := t.onScreenshot
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleSettings handles the settings menu item click.
func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

func (t *Tray) applyMouseTitle() {
	if t.menuMouse == nil {
		return
	}
	if t.mouseEnabled {
		t.menuMouse.SetTitle("● Mouse active")
	} else {
		t.menuMouse.SetTitle("○ Mouse paused")
	}
}

// SetMouseEnabled reflects an enable change that came from elsewhere
// (palm hold, voice, HTTP) in the menu.
func (t *Tray) SetMouseEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mouseEnabled = enabled
	t.applyMouseTitle()
}

// SetLastAction updates the last action display in the menu.
func (t *Tray) SetLastAction(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastAction != nil {
		if name == "" {
			t.menuLastAction.SetTitle("Last: none")
		} else {
			t.menuLastAction.SetTitle("Last: " + name)
		}
	}
}

// MouseEnabled returns the menu's view of the pointer state.
func (t *Tray) MouseEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mouseEnabled
}
