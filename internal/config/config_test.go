package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pattern != "plasma" {
		t.Errorf("expected pattern plasma, got %s", cfg.Pattern)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Speed != 1 {
		t.Errorf("expected speed 1, got %f", cfg.Speed)
	}
	if notes := cfg.Validate(); len(notes) != 0 {
		t.Errorf("defaults should validate cleanly, got %v", notes)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("pattern: maze\nfps: 45\npatterns:\n  maze:\n    algorithm: prim\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Pattern != "maze" || cfg.FPS != 45 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Theme != DefaultTheme || cfg.Backend != BackendTcell {
		t.Errorf("defaults lost: theme=%s backend=%s", cfg.Theme, cfg.Backend)
	}
	if got := cfg.Overrides("maze")["algorithm"]; got != "prim" {
		t.Errorf("expected maze override prim, got %v", got)
	}
	if cfg.Overrides("plasma") != nil {
		t.Error("expected no overrides for plasma")
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := Load(path); !errors.Is(err, ErrNoConfig) {
		t.Errorf("expected ErrNoConfig, got %v", err)
	}

	cfg, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Pattern != DefaultPattern {
		t.Errorf("expected default pattern, got %s", cfg.Pattern)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		fps     int
		speed   float64
		backend string
	}{
		{"low", Config{Pattern: "fire", Theme: "retro", FPS: 0, Speed: 0, Backend: "tea"}, MinFPS, MinSpeed, BackendTea},
		{"high", Config{Pattern: "fire", Theme: "retro", FPS: 500, Speed: 9, Backend: "tcell"}, MaxFPS, MaxSpeed, BackendTcell},
		{"backend", Config{Pattern: "fire", Theme: "retro", FPS: 30, Speed: 1, Backend: "sdl"}, 30, 1, BackendTcell},
	}

	for _, tt := range tests {
		cfg := tt.cfg
		notes := cfg.Validate()
		if len(notes) == 0 {
			t.Errorf("%s: expected adjustment notes", tt.name)
		}
		if cfg.FPS != tt.fps || cfg.Speed != tt.speed || cfg.Backend != tt.backend {
			t.Errorf("%s: got fps=%d speed=%f backend=%s", tt.name, cfg.FPS, cfg.Speed, cfg.Backend)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Pattern = "life"
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Pattern != "life" || got.Seed != 42 {
		t.Errorf("expected life/42, got %s/%d", got.Pattern, got.Seed)
	}
}

func TestGetProfile(t *testing.T) {
	cfg := GetProfile("calm")
	if cfg == nil {
		t.Fatal("expected profile, got nil")
	}
	if cfg.Pattern != "ocean" {
		t.Errorf("expected pattern ocean, got %s", cfg.Pattern)
	}

	cfg.Pattern = "maze"
	if Profiles["calm"].Pattern != "ocean" {
		t.Error("GetProfile must return a copy")
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	if cfg := GetProfile("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent profile")
	}
}

func TestListProfiles(t *testing.T) {
	names := ListProfiles()
	if len(names) != len(Profiles) {
		t.Fatalf("expected %d profiles, got %d", len(Profiles), len(names))
	}
	for _, name := range names {
		cfg := GetProfile(name)
		if notes := cfg.Validate(); len(notes) != 0 {
			t.Errorf("profile %s needs adjustment: %v", name, notes)
		}
	}
}
