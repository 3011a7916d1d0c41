package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPattern = "plasma"
	DefaultTheme   = "cyberpunk"
	DefaultFPS     = 30
	DefaultSpeed   = 1.0

	MinFPS   = 1
	MaxFPS   = 120
	MinSpeed = 0.1
	MaxSpeed = 5.0

	BackendTcell = "tcell"
	BackendTea   = "tea"
)

var ErrNoConfig = errors.New("config: no config file")

type Config struct {
	Pattern   string  `yaml:"pattern"`
	Preset    int     `yaml:"preset"`
	Theme     string  `yaml:"theme"`
	FPS       int     `yaml:"fps"`
	Speed     float64 `yaml:"speed"`
	Seed      int64   `yaml:"seed"`
	Backend   string  `yaml:"backend"`
	Mouse     bool    `yaml:"mouse"`
	StatusBar bool    `yaml:"status_bar"`
	Playlist  string  `yaml:"playlist"`
	LogFile   string  `yaml:"log_file"`
	DataDir   string  `yaml:"data_dir"`

	// Patterns holds per-pattern overrides keyed by pattern name, then by
	// the pattern's config key.
	Patterns map[string]map[string]any `yaml:"patterns"`
}

func DefaultConfig() *Config {
	return &Config{
		Pattern:   DefaultPattern,
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
		Speed:     DefaultSpeed,
		Backend:   BackendTcell,
		Mouse:     true,
		StatusBar: true,
		DataDir:   "./data",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/termsaver/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termsaver", "config.yaml")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
		}
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when path is empty or
// the file does not exist. Parse errors are still returned.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, ErrNoConfig) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate forces every field into range and returns a note per adjustment.
// It never rejects a config.
func (c *Config) Validate() []string {
	var notes []string
	fix := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	if c.Pattern == "" {
		c.Pattern = DefaultPattern
		fix("pattern empty, using %s", DefaultPattern)
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
		fix("theme empty, using %s", DefaultTheme)
	}
	if c.Preset < 0 {
		fix("preset %d below 0, using 0", c.Preset)
		c.Preset = 0
	}
	switch {
	case c.FPS < MinFPS:
		fix("fps %d below %d", c.FPS, MinFPS)
		c.FPS = MinFPS
	case c.FPS > MaxFPS:
		fix("fps %d above %d", c.FPS, MaxFPS)
		c.FPS = MaxFPS
	}
	switch {
	case math.IsNaN(c.Speed) || c.Speed < MinSpeed:
		fix("speed %g below %g", c.Speed, MinSpeed)
		c.Speed = MinSpeed
	case c.Speed > MaxSpeed:
		fix("speed %g above %g", c.Speed, MaxSpeed)
		c.Speed = MaxSpeed
	}
	if c.Backend != BackendTcell && c.Backend != BackendTea {
		fix("unknown backend %q, using %s", c.Backend, BackendTcell)
		c.Backend = BackendTcell
	}
	return notes
}

// Overrides returns the override map for one pattern, or nil.
func (c *Config) Overrides(pattern string) map[string]any {
	if c.Patterns == nil {
		return nil
	}
	return c.Patterns[pattern]
}
