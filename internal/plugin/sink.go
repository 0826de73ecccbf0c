package plugin

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sink adapts a single plugin into the action sink contract, so a
// scripted plugin (for example the AppleScript osinput plugin) can
// stand in for the built-in OS sink.
type Sink struct {
	plugin *Plugin
	exec   *Executor
}

// NewSink resolves the named plugin from the manager and wraps it as a
// sink. The timeout applies to every action the plugin executes.
func NewSink(m *Manager, name string, timeout time.Duration) (*Sink, error) {
	p, err := m.Get(name)
	if err != nil {
		return nil, fmt.Errorf("resolving sink plugin %q: %w", name, err)
	}
	return &Sink{
		plugin: p,
		exec:   NewExecutor(timeout),
	}, nil
}

func (s *Sink) run(action string, params interface{}) (*Response, error) {
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encoding %s params: %w", action, err)
		}
		raw = b
	}

	resp, err := s.exec.Execute(s.plugin, &Request{Action: action, Params: raw})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("plugin %s action %s failed: %s", s.plugin.Manifest.Name, action, resp.Error)
	}
	return resp, nil
}

func (s *Sink) MoveCursor(x, y float64) error {
	_, err := s.run("move", map[string]float64{"x": x, "y": y})
	return err
}

func (s *Sink) Click() error {
	_, err := s.run("click", nil)
	return err
}

func (s *Sink) DoubleClick() error {
	_, err := s.run("double_click", nil)
	return err
}

func (s *Sink) RightClick() error {
	_, err := s.run("right_click", nil)
	return err
}

func (s *Sink) MouseDown() error {
	_, err := s.run("mouse_down", nil)
	return err
}

func (s *Sink) MouseUp() error {
	_, err := s.run("mouse_up", nil)
	return err
}

func (s *Sink) Scroll(amount int) error {
	_, err := s.run("scroll", map[string]int{"amount": amount})
	return err
}

func (s *Sink) Hotkey(keys ...string) error {
	_, err := s.run("hotkey", map[string][]string{"keys": keys})
	return err
}

func (s *Sink) TakeScreenshot(prefix string) (string, error) {
	resp, err := s.run("screenshot", map[string]string{"prefix": prefix})
	if err != nil {
		return "", err
	}
	var data struct {
		Path string `json:"path"`
	}
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return "", fmt.Errorf("decoding screenshot response: %w", err)
		}
	}
	return data.Path, nil
}
