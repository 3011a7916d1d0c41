package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/san-kum/termsaver/internal/pattern"
)

type names []string

func (n names) Has(name string) bool { return slices.Contains(n, name) }

var known = names{"fire", "maze", "plasma"}

const sample = `
name: evening
loop: true
steps:
  - pattern: fire
    preset: 2
    duration: 10s
  - pattern: maze
    theme: retro
    duration: 500ms
  - pattern: plasma
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evening.yaml")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	pl, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pl.Name != "evening" || !pl.Loop || len(pl.Steps) != 3 {
		t.Fatalf("unexpected playlist %+v", pl)
	}
	if err := pl.Validate(known); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := []struct {
		step     int
		duration time.Duration
	}{
		{0, 10 * time.Second},
		{1, MinDuration},
		{2, DefaultDuration},
	}
	for _, tt := range tests {
		if got := pl.Steps[tt.step].Duration; got != tt.duration {
			t.Errorf("step %d: expected %v, got %v", tt.step, tt.duration, got)
		}
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		pl   Playlist
		want error
	}{
		{"empty", Playlist{}, ErrEmpty},
		{"pattern", Playlist{Steps: []Step{{Pattern: "warp"}}}, pattern.ErrUnknownPattern},
		{"theme", Playlist{Steps: []Step{{Pattern: "fire", Theme: "neon-nope"}}}, ErrUnknownTheme},
	}

	for _, tt := range tests {
		if err := tt.pl.Validate(known); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestParseError(t *testing.T) {
	if _, err := Parse([]byte("steps: {")); err == nil {
		t.Error("expected parse error")
	}
}

func testPlaylist(loop bool) *Playlist {
	return &Playlist{
		Loop: loop,
		Steps: []Step{
			{Pattern: "fire", Duration: 2 * time.Second},
			{Pattern: "maze", Duration: 3 * time.Second},
		},
	}
}

func TestRunnerAdvance(t *testing.T) {
	r := NewRunner(testPlaylist(true))

	if r.Current().Pattern != "fire" {
		t.Fatalf("expected fire first, got %s", r.Current().Pattern)
	}
	if _, ok := r.Advance(time.Second); ok {
		t.Error("switched too early")
	}
	if r.Remaining() != time.Second {
		t.Errorf("expected 1s remaining, got %v", r.Remaining())
	}
	step, ok := r.Advance(time.Second)
	if !ok || step.Pattern != "maze" {
		t.Fatalf("expected switch to maze, got %v %v", step.Pattern, ok)
	}
	step, ok = r.Advance(3 * time.Second)
	if !ok || step.Pattern != "fire" {
		t.Errorf("expected loop back to fire, got %v %v", step.Pattern, ok)
	}
}

func TestRunnerStopsWithoutLoop(t *testing.T) {
	r := NewRunner(testPlaylist(false))

	if _, ok := r.Skip(); !ok {
		t.Fatal("expected switch to second step")
	}
	if _, ok := r.Advance(time.Hour); ok {
		t.Error("expected no switch past the end")
	}
	if !r.Done() {
		t.Error("expected runner to be done")
	}
	if _, ok := r.Advance(time.Hour); ok {
		t.Error("done runner must stay quiet")
	}
}

func TestRunnerShuffleIsPermutation(t *testing.T) {
	pl := &Playlist{Shuffle: true, Seed: 7, Loop: true}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		pl.Steps = append(pl.Steps, Step{Pattern: n, Duration: time.Second})
	}

	r := NewRunner(pl)
	var seen []string
	for range len(pl.Steps) {
		seen = append(seen, r.Current().Pattern)
		r.Skip()
	}
	slices.Sort(seen)
	if !slices.Equal(seen, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("expected every step once, got %v", seen)
	}

	again := NewRunner(pl)
	first := NewRunner(pl)
	if again.Current().Pattern != first.Current().Pattern {
		t.Error("same seed must give the same order")
	}
}
