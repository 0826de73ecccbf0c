package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeSinkPlugin creates a plugin directory whose executable records
// the request JSON to a file and answers with the given response.
func writeSinkPlugin(t *testing.T, response string) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir, err := os.MkdirTemp("", "mudra-sink-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	pluginDir := filepath.Join(tmpDir, "osinput")
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	requestLog := filepath.Join(tmpDir, "request.json")
	script := "#!/bin/sh\ncat > " + requestLog + "\ncat <<'EOF'\n" + response + "\nEOF\n"
	if err := os.WriteFile(filepath.Join(pluginDir, "osinput.sh"), []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	manifest := `{
		"name": "osinput",
		"version": "1.0.0",
		"description": "test sink",
		"executable": "osinput.sh",
		"actions": ["move", "click", "scroll", "hotkey", "screenshot"]
	}`
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return tmpDir, requestLog
}

func newTestSink(t *testing.T, response string) (*Sink, string) {
	t.Helper()
	dir, requestLog := writeSinkPlugin(t, response)

	mgr := testManager(dir)
	if err := mgr.Discover(); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	sink, err := NewSink(mgr, "osinput", 5*time.Second)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}
	return sink, requestLog
}

func TestSink_MoveCursorSendsParams(t *testing.T) {
	sink, requestLog := newTestSink(t, `{"success":true}`)

	if err := sink.MoveCursor(120, 240); err != nil {
		t.Fatalf("MoveCursor() error = %v", err)
	}

	raw, err := os.ReadFile(requestLog)
	if err != nil {
		t.Fatalf("failed to read recorded request: %v", err)
	}
	req := string(raw)
	if !strings.Contains(req, `"action":"move"`) {
		t.Errorf("request %s should carry the move action", req)
	}
	if !strings.Contains(req, `"x":120`) || !strings.Contains(req, `"y":240`) {
		t.Errorf("request %s should carry the coordinates", req)
	}
}

func TestSink_ScreenshotReturnsPath(t *testing.T) {
	sink, _ := newTestSink(t, `{"success":true,"data":{"path":"/tmp/screenshot_test_20260823.png"}}`)

	path, err := sink.TakeScreenshot("screenshot_test_")
	if err != nil {
		t.Fatalf("TakeScreenshot() error = %v", err)
	}
	if path != "/tmp/screenshot_test_20260823.png" {
		t.Errorf("path = %q, want the plugin-reported path", path)
	}
}

func TestSink_FailedResponseBecomesError(t *testing.T) {
	sink, _ := newTestSink(t, `{"success":false,"error":"osascript not available"}`)

	err := sink.Click()
	if err == nil {
		t.Fatal("Click() should surface the plugin failure")
	}
	if !strings.Contains(err.Error(), "osascript not available") {
		t.Errorf("error %q should carry the plugin message", err)
	}
}

func TestSink_UnknownPluginName(t *testing.T) {
	dir, _ := writeSinkPlugin(t, `{"success":true}`)
	mgr := testManager(dir)
	mgr.Discover()

	if _, err := NewSink(mgr, "missing", 5*time.Second); err == nil {
		t.Error("NewSink() should fail for an unknown plugin")
	}
}
