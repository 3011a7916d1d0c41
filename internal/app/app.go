// Package app wires the engine, the pattern registry, overlays and an
// optional playlist into one screensaver, and maps keys to actions. It is
// frontend agnostic: term and viz drive it.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/metrics"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/playlist"
	"github.com/san-kum/termsaver/internal/theme"
	"github.com/san-kum/termsaver/internal/ui"
)

const speedStep = 1.25

type Options struct {
	Config   *config.Config
	Registry *pattern.Registry
	Sink     engine.Sink
	// Surface receives overlays after every tick. Nil disables overlays.
	Surface  ui.Surface
	Size     buffer.Size
	Clock    engine.Clock
	Logger   *log.Logger
	Playlist *playlist.Playlist
}

type App struct {
	cfg    *config.Config
	reg    *pattern.Registry
	eng    *engine.Engine
	clock  engine.Clock
	logger *log.Logger

	name   string
	preset int
	theme  theme.Theme

	overlays *ui.Manager
	status   *ui.StatusBar
	help     *ui.Help
	toast    *ui.Toast
	metrics  metrics.Set

	runner   *playlist.Runner
	lastWall time.Time
	done     bool
}

// New builds the app around the configured pattern. The engine is left
// stopped.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Registry == nil {
		return nil, errors.New("app: no pattern registry")
	}
	if opts.Clock == nil {
		opts.Clock = engine.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Sink == nil {
		opts.Sink = &engine.CountingSink{}
	}
	cfg := opts.Config
	cfg.Validate()

	th, ok := theme.Get(cfg.Theme)
	if !ok {
		opts.Logger.Printf("app: unknown theme %q, using %s", cfg.Theme, th.Name)
	}

	a := &App{
		cfg:     cfg,
		reg:     opts.Registry,
		clock:   opts.Clock,
		logger:  opts.Logger,
		theme:   th,
		metrics: metrics.Default(opts.Clock),
	}

	name, preset := cfg.Pattern, cfg.Preset
	var overrides map[string]any
	if opts.Playlist != nil {
		if err := opts.Playlist.Validate(a.reg); err != nil {
			return nil, err
		}
		a.runner = playlist.NewRunner(opts.Playlist)
		step := a.runner.Current()
		name, preset, overrides = step.Pattern, step.Preset, step.Overrides
		if t, ok := theme.Get(step.Theme); ok {
			a.theme = t
		}
	}

	p, err := a.build(name, overrides)
	if err != nil {
		return nil, err
	}
	a.name = name

	a.eng = engine.New(p, opts.Sink, opts.Size, engine.Config{
		Clock:  opts.Clock,
		Logger: opts.Logger,
		Speed:  cfg.Speed,
	})
	if preset > 0 && a.eng.ApplyPreset(preset) {
		a.preset = preset
	}

	a.overlays = ui.NewManager(a.eng.Invalidate)
	a.status = ui.NewStatusBar(a.theme, a.Status)
	a.status.SetVisible(cfg.StatusBar)
	a.toast = ui.NewToast(a.theme, opts.Clock, ui.DefaultToastTTL)
	a.help = ui.NewHelp(a.theme, Bindings())
	a.overlays.Add(a.status)
	a.overlays.Add(a.toast)
	a.overlays.Add(a.help)

	a.lastWall = opts.Clock.Now()
	a.eng.OnBeforeTick(a.beforeTick)
	a.eng.OnAfterRender(a.metrics.Hook())
	if opts.Surface != nil {
		a.eng.OnAfterRender(a.overlays.Hook(opts.Surface))
	}
	return a, nil
}

// build constructs name with the current theme. Overrides default to the
// config file's; a bad override map is logged and dropped.
func (a *App) build(name string, overrides map[string]any) (pattern.Pattern, error) {
	if overrides == nil {
		overrides = a.cfg.Overrides(name)
	}
	opts := pattern.Options{Seed: a.cfg.Seed, Theme: a.theme, Overrides: overrides}
	p, err := a.reg.New(name, opts)
	if errors.Is(err, pattern.ErrInvalidOverride) {
		a.logger.Printf("app: %s: %v; using defaults", name, err)
		opts.Overrides = nil
		p, err = a.reg.New(name, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return p, nil
}

func (a *App) Engine() *engine.Engine     { return a.eng }
func (a *App) Pattern() string            { return a.name }
func (a *App) Preset() int                { return a.preset }
func (a *App) Theme() theme.Theme         { return a.theme }
func (a *App) Metrics() metrics.Set       { return a.metrics }
func (a *App) Overlays() *ui.Manager      { return a.overlays }
func (a *App) Toast() *ui.Toast           { return a.toast }
func (a *App) Done() bool                 { return a.done }
func (a *App) Playlist() *playlist.Runner { return a.runner }

// Start begins animating.
func (a *App) Start() error {
	a.lastWall = a.clock.Now()
	return a.eng.Start()
}

// Status is the status bar's view of the app.
func (a *App) Status() ui.Status {
	s := ui.Status{
		Pattern: a.name,
		Theme:   a.theme.Name,
		State:   a.eng.State().String(),
		FPS:     a.metrics.Values()["fps"],
		Speed:   a.eng.Speed(),
	}
	if a.preset > 0 {
		s.Preset = a.presetName(a.preset)
	}
	if a.runner != nil && !a.runner.Done() {
		i, n := a.runner.Position()
		s.Extra = fmt.Sprintf("playlist %d/%d %s", i+1, n, a.runner.Remaining().Round(time.Second))
	}
	return s
}

func (a *App) presetName(id int) string {
	for _, p := range a.eng.Active().Presets() {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (a *App) beforeTick() {
	now := a.clock.Now()
	elapsed := now.Sub(a.lastWall)
	a.lastWall = now

	a.overlays.Check()
	if a.runner == nil || a.eng.State() != engine.Running {
		return
	}
	if step, ok := a.runner.Advance(elapsed); ok {
		a.applyStep(step)
	}
}

func (a *App) applyStep(step playlist.Step) {
	if t, ok := theme.Get(step.Theme); ok {
		a.setTheme(t)
	}
	if err := a.switchTo(step.Pattern, step.Overrides); err != nil {
		a.logger.Printf("app: playlist: %v", err)
		return
	}
	if step.Preset > 0 {
		a.applyPreset(step.Preset)
	}
}

// switchTo replaces the running pattern with a fresh instance of name.
func (a *App) switchTo(name string, overrides map[string]any) error {
	p, err := a.build(name, overrides)
	if err != nil {
		return err
	}
	if err := a.eng.SetPattern(p); err != nil {
		return err
	}
	a.name = name
	a.preset = 0
	return nil
}

func (a *App) applyPreset(id int) bool {
	if !a.eng.ApplyPreset(id) {
		return false
	}
	a.preset = id
	return true
}

func (a *App) setTheme(t theme.Theme) {
	a.theme = t
	a.overlays.SetTheme(t)
}

// HandleKey runs the action bound to key and reports whether one was.
func (a *App) HandleKey(key string) bool {
	action, arg := Lookup(key)
	if action == ActionNone {
		return false
	}
	a.Do(action, arg)
	return true
}

// Do performs one action. arg is the preset id for ActionPreset.
func (a *App) Do(action Action, arg int) {
	switch action {
	case ActionQuit:
		a.done = true
		if a.eng.State() != engine.Stopped {
			_ = a.eng.Stop()
		}

	case ActionNextPattern, ActionPrevPattern:
		offset := 1
		if action == ActionPrevPattern {
			offset = -1
		}
		name := a.reg.Neighbor(a.name, offset)
		if err := a.switchTo(name, nil); err != nil {
			a.logger.Printf("app: switch to %s: %v", name, err)
			a.toast.Show(err.Error())
			return
		}
		a.toast.Show(name)

	case ActionNextPreset:
		presets := a.eng.Active().Presets()
		if len(presets) == 0 {
			a.toast.Show("no presets")
			return
		}
		next := presets[0]
		for _, p := range presets {
			if p.ID > a.preset {
				next = p
				break
			}
		}
		if a.applyPreset(next.ID) {
			a.toast.Show(fmt.Sprintf("preset %d: %s", next.ID, next.Name))
		}

	case ActionPreset:
		if a.applyPreset(arg) {
			a.toast.Show(fmt.Sprintf("preset %d: %s", arg, a.presetName(arg)))
		} else {
			a.toast.Show(fmt.Sprintf("no preset %d", arg))
		}

	case ActionNextTheme:
		a.setTheme(theme.Next(a.theme.Name))
		preset := a.preset
		if err := a.switchTo(a.name, nil); err != nil {
			a.logger.Printf("app: rebuild %s: %v", a.name, err)
			return
		}
		if preset > 0 {
			a.applyPreset(preset)
		}
		a.toast.Show("theme: " + a.theme.Name)

	case ActionSpeedUp, ActionSpeedDown:
		speed := a.eng.Speed() * speedStep
		if action == ActionSpeedDown {
			speed = a.eng.Speed() / speedStep
		}
		a.eng.SetSpeed(speed)
		a.toast.Show(fmt.Sprintf("speed %.2fx", a.eng.Speed()))

	case ActionPause:
		if err := a.eng.TogglePause(); err != nil {
			a.logger.Printf("app: %v", err)
			return
		}
		a.toast.Show(a.eng.State().String())

	case ActionReset:
		a.eng.ResetPattern()
		a.toast.Show("reset")

	case ActionHelp:
		a.overlays.Toggle("help")

	case ActionStatus:
		a.overlays.Toggle("status")
	}
	a.eng.Invalidate()
}
