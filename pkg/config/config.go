// Package config handles loading and saving fl configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/fl/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowHelp   bool   `yaml:"show_help,omitempty"`   // Expanded help on startup
	Theme      string `yaml:"theme,omitempty"`       // auto, dark, light
	CountWidth int    `yaml:"count_width,omitempty"` // Column width for indicator counts
}

// Config is the top-level configuration for fl.
type Config struct {
	// DataDir overrides the default mapping file search directory.
	DataDir string `yaml:"data_dir,omitempty"`
	// Mode is the startup exploration mode: forward or reverse.
	Mode string `yaml:"mode,omitempty"`
	// SortKey is the startup field sort: count or name.
	SortKey string `yaml:"sort_key,omitempty"`
	// SortDirection is the startup sort direction: asc or desc.
	SortDirection string `yaml:"sort_direction,omitempty"`
	// Watch enables live reload of the mapping source.
	Watch *bool    `yaml:"watch,omitempty"`
	UI    UIConfig `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	watch := true
	return Config{
		Mode:          "forward",
		SortKey:       "count",
		SortDirection: "desc",
		Watch:         &watch,
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for fl.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fl")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	cfg.DataDir = expandHome(cfg.DataDir)

	return cfg, nil
}

// Validate checks enum-valued fields and reports the first bad value.
func (c Config) Validate() error {
	switch c.Mode {
	case "", "forward", "reverse":
	default:
		return fmt.Errorf("invalid mode %q: want forward or reverse", c.Mode)
	}
	switch c.SortKey {
	case "", "count", "name":
	default:
		return fmt.Errorf("invalid sort_key %q: want count or name", c.SortKey)
	}
	switch c.SortDirection {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("invalid sort_direction %q: want asc or desc", c.SortDirection)
	}
	switch c.UI.Theme {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q: want auto, dark or light", c.UI.Theme)
	}
	return nil
}

// WatchEnabled reports whether live reload is on. Defaults to true.
func (c Config) WatchEnabled() bool {
	if c.Watch == nil {
		return true
	}
	return *c.Watch
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
