package config

import "sort"

// Profiles are named starting points for the whole app. Per-pattern presets
// live with the patterns themselves.
var Profiles = map[string]*Config{
	"calm": {
		Pattern: "ocean", Theme: "ocean", FPS: 20, Speed: 0.6,
		Backend: BackendTcell, Mouse: true,
	},
	"party": {
		Pattern: "fireworks", Preset: 2, Theme: "cyberpunk", FPS: 60, Speed: 1.5,
		Backend: BackendTcell, Mouse: true, StatusBar: true,
	},
	"retro": {
		Pattern: "matrix", Theme: "retro", FPS: 30, Speed: 1.0,
		Backend: BackendTcell, Mouse: false, StatusBar: true,
	},
	"lowpower": {
		Pattern: "life", Theme: "minimal", FPS: 8, Speed: 1.0,
		Backend: BackendTea, Mouse: false,
	},
	"cozy": {
		Pattern: "fire", Theme: "ember", FPS: 30, Speed: 0.8,
		Backend: BackendTcell, Mouse: true,
		Patterns: map[string]map[string]any{
			"fire": {"cooling": 0.25},
		},
	},
}

// GetProfile returns a copy of the named profile, or nil.
func GetProfile(name string) *Config {
	p, ok := Profiles[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultConfig().DataDir
	}
	return &cfg
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
