package playlist

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	MinDuration     = time.Second
	DefaultDuration = 30 * time.Second
)

var (
	ErrEmpty        = errors.New("playlist: no steps")
	ErrUnknownTheme = errors.New("playlist: unknown theme")
)

// Playlist is a timed sequence of patterns
type Playlist struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Shuffle     bool   `yaml:"shuffle"`
	Loop        bool   `yaml:"loop"`
	Seed        int64  `yaml:"seed"`
	Steps       []Step `yaml:"steps"`
}

// Step is one entry of a playlist. Preset 0 keeps the pattern defaults and an
// empty Theme keeps the current theme.
type Step struct {
	Pattern   string         `yaml:"pattern"`
	Preset    int            `yaml:"preset"`
	Theme     string         `yaml:"theme"`
	Duration  time.Duration  `yaml:"duration"`
	Overrides map[string]any `yaml:"overrides"`
}

// Catalog answers whether a pattern name exists
type Catalog interface {
	Has(name string) bool
}

// Load reads a playlist from a YAML file
func Load(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pl, nil
}

func Parse(data []byte) (*Playlist, error) {
	var pl Playlist
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("playlist: parse: %w", err)
	}
	return &pl, nil
}

// Validate rejects unknown patterns and themes and clamps durations.
func (p *Playlist) Validate(c Catalog) error {
	if len(p.Steps) == 0 {
		return ErrEmpty
	}
	for i := range p.Steps {
		s := &p.Steps[i]
		if !c.Has(s.Pattern) {
			return fmt.Errorf("playlist: step %d: %w: %q", i+1, pattern.ErrUnknownPattern, s.Pattern)
		}
		if s.Theme != "" {
			if _, ok := theme.Get(s.Theme); !ok {
				return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownTheme, s.Theme)
			}
		}
		switch {
		case s.Duration == 0:
			s.Duration = DefaultDuration
		case s.Duration < MinDuration:
			s.Duration = MinDuration
		}
		if s.Preset < 0 {
			s.Preset = 0
		}
	}
	return nil
}

// Total is the length of one pass through the playlist
func (p *Playlist) Total() time.Duration {
	var d time.Duration
	for _, s := range p.Steps {
		d += s.Duration
	}
	return d
}
