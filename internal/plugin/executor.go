package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Executor runs plugin binaries: one request on stdin, one JSON
// response on stdout. Every call is bounded by the timeout so a hung
// plugin cannot stall the action queue behind it.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates an Executor with the given per-call timeout.
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{timeout: timeout}
}

// Execute runs the plugin once for the given request and parses its
// stdout as a Response. Errors carry the plugin name and action so the
// dispatcher log identifies the failing binary.
func (e *Executor) Execute(plugin *Plugin, req *Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request for plugin %s: %w", plugin.Manifest.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, plugin.Executable)
	cmd.Dir = plugin.Path
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("plugin %s action %s: timeout after %s", plugin.Manifest.Name, req.Action, e.timeout)
	}
	if runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("plugin %s action %s: %w: %s", plugin.Manifest.Name, req.Action, runErr, msg)
		}
		return nil, fmt.Errorf("plugin %s action %s: %w", plugin.Manifest.Name, req.Action, runErr)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("plugin %s wrote an unparseable response: %w: %s", plugin.Manifest.Name, err, stdout.String())
	}
	return &resp, nil
}
