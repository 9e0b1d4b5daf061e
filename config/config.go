package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config holds persistent settings stored at <profileDir>/vlist.json.
type Config struct {
	Theme            string `json:"theme,omitempty"`
	Items            int    `json:"items"`
	Overscan         int    `json:"overscan"`
	Gap              int    `json:"gap"`
	ScrollingDelayMs int    `json:"scrolling_delay_ms"`
	EstimateHeight   int    `json:"estimate_height"`
}

const filename = "vlist.json"

// Load reads <profileDir>/vlist.json. A missing file yields the defaults;
// unreadable or malformed content is an error.
func Load(profileDir string) (Config, error) {
	cfg := Defaults()
	path := filepath.Join(profileDir, filename)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults(), errors.Wrapf(err, "decode %s", path)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to <profileDir>/vlist.json, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(profileDir, filename), data, 0o644)
}

// Validate rejects negative tuning values and unknown themes.
func (c Config) Validate() error {
	switch {
	case c.Items < 0:
		return errors.Errorf("config: items %d is negative", c.Items)
	case c.Overscan < 0:
		return errors.Errorf("config: overscan %d is negative", c.Overscan)
	case c.Gap < 0:
		return errors.Errorf("config: gap %d is negative", c.Gap)
	case c.ScrollingDelayMs < 0:
		return errors.Errorf("config: scrolling_delay_ms %d is negative", c.ScrollingDelayMs)
	case c.EstimateHeight < 1:
		return errors.Errorf("config: estimate_height %d must be at least 1", c.EstimateHeight)
	}
	switch c.Theme {
	case "", "dark", "light", "catppuccin", "tokyo-night":
		return nil
	}
	return errors.Errorf("config: unknown theme %q", c.Theme)
}

// Defaults leaves Theme empty so the theme follows the terminal background.
func Defaults() Config {
	return Config{
		Items:            10000,
		Overscan:         3,
		Gap:              1,
		ScrollingDelayMs: 150,
		EstimateHeight:   6,
	}
}
