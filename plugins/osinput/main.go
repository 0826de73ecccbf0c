// Package main provides an OS input plugin for macOS.
// It drives the pointer and keyboard through cliclick and AppleScript,
// as an alternative to the built-in robotgo sink.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Origin string          `json:"origin"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MoveParams carries the target cursor position in screen pixels.
type MoveParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScrollParams carries signed wheel ticks, positive meaning up.
type ScrollParams struct {
	Amount int `json:"amount"`
}

// HotkeyParams carries a key chord: the key first, then its modifiers.
type HotkeyParams struct {
	Keys []string `json:"keys"`
}

// ScreenshotParams carries the file name prefix for a capture.
type ScreenshotParams struct {
	Prefix string `json:"prefix"`
}

// pluginConfig is the optional per-plugin configuration block.
type pluginConfig struct {
	ScreenshotDir string `json:"screenshotDir"`
}

// modifierMap maps user-friendly modifier names to AppleScript equivalents.
var modifierMap = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

// keyCodeMap covers keys AppleScript cannot type as a keystroke.
var keyCodeMap = map[string]int{
	"f11":   103,
	"f3":    160,
	"esc":   53,
	"space": 49,
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "move":
		handleSimple(req, handleMove)
	case "click":
		handleSimple(req, func(Request) error { return runCliclick("c:.") })
	case "double_click":
		handleSimple(req, func(Request) error { return runCliclick("dc:.") })
	case "right_click":
		handleSimple(req, func(Request) error { return runCliclick("rc:.") })
	case "mouse_down":
		handleSimple(req, func(Request) error { return runCliclick("dd:.") })
	case "mouse_up":
		handleSimple(req, func(Request) error { return runCliclick("du:.") })
	case "scroll":
		handleSimple(req, handleScroll)
	case "hotkey":
		handleSimple(req, handleHotkey)
	case "screenshot":
		handleScreenshot(req)
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
	}
}

// handleSimple runs a handler and writes the standard success or error
// response.
func handleSimple(req Request, fn func(Request) error) {
	if err := fn(req); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}
	writeSuccessResponse()
}

// handleMove positions the cursor at absolute screen coordinates.
func handleMove(req Request) error {
	var p MoveParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	return runCliclick(fmt.Sprintf("m:%d,%d", int(p.X), int(p.Y)))
}

// handleScroll approximates wheel ticks with page up/down key codes;
// cliclick has no scroll command.
func handleScroll(req Request) error {
	var p ScrollParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	code := 116 // page up
	steps := p.Amount
	if steps < 0 {
		code = 121 // page down
		steps = -steps
	}
	if steps > 5 {
		steps = 5
	}
	for i := 0; i < steps; i++ {
		script := fmt.Sprintf(`tell application "System Events"
	key code %d
end tell`, code)
		if err := runAppleScript(script); err != nil {
			return err
		}
	}
	return nil
}

// handleHotkey sends a key chord. The first element of keys is the key
// itself; the rest are modifiers.
func handleHotkey(req Request) error {
	var p HotkeyParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	if len(p.Keys) == 0 {
		return fmt.Errorf("keys is required")
	}

	key := p.Keys[0]
	var appleModifiers []string
	for _, mod := range p.Keys[1:] {
		if appleMod, ok := modifierMap[strings.ToLower(mod)]; ok {
			appleModifiers = append(appleModifiers, appleMod)
		}
	}

	var stroke string
	if code, ok := keyCodeMap[strings.ToLower(key)]; ok {
		stroke = fmt.Sprintf("key code %d", code)
	} else {
		stroke = fmt.Sprintf(`keystroke "%s"`, key)
	}
	if len(appleModifiers) > 0 {
		stroke += fmt.Sprintf(" using {%s}", strings.Join(appleModifiers, ", "))
	}

	return runAppleScript(fmt.Sprintf(`tell application "System Events" to %s`, stroke))
}

// handleScreenshot captures the main display with screencapture and
// returns the written path in the response data.
func handleScreenshot(req Request) {
	var p ScreenshotParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse params: %v", err))
			return
		}
	}
	if p.Prefix == "" {
		p.Prefix = "screenshot_"
	}

	dir := os.TempDir()
	var cfg pluginConfig
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err == nil && cfg.ScreenshotDir != "" {
			dir = cfg.ScreenshotDir
		}
	}

	name := p.Prefix + time.Now().Format("20060102_150405") + ".png"
	path := filepath.Join(dir, name)

	cmd := exec.Command("screencapture", "-x", path)
	if output, err := cmd.CombinedOutput(); err != nil {
		writeErrorResponse(fmt.Sprintf("screencapture failed: %v: %s", err, string(output)))
		return
	}

	data, _ := json.Marshal(map[string]string{"path": path})
	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Data: data})
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// runCliclick executes a single cliclick command.
func runCliclick(args ...string) error {
	cmd := exec.Command("cliclick", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
