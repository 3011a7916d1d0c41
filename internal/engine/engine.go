package engine

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
)

// State is the engine lifecycle state.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	MinSpeed = 0.1
	MaxSpeed = 5.0
)

// FrameInfo describes the frame a tick just produced.
type FrameInfo struct {
	Frame      uint64
	Time       float64
	Delta      float64
	Size       buffer.Size
	Changes    int
	RenderTime time.Duration
	Skipped    bool
}

// AfterRenderFunc runs after every tick, in registration order.
type AfterRenderFunc func(FrameInfo)

// Config holds engine tunables.
type Config struct {
	Clock    Clock
	Logger   *log.Logger
	Speed    float64
	MaxDelta float64
}

func DefaultConfig() Config {
	return Config{
		Clock:    SystemClock{},
		Logger:   log.New(io.Discard, "", 0),
		Speed:    1.0,
		MaxDelta: 0.1,
	}
}

type Engine struct {
	buf    *buffer.DoubleBuffer
	sink   Sink
	clock  Clock
	logger *log.Logger

	active  pattern.Pattern
	state   State
	size    buffer.Size
	pending *buffer.Size
	mouse   *buffer.Point

	speed    float64
	maxDelta float64
	time     float64
	last     time.Time
	dirty    bool

	before    []func()
	callbacks []AfterRenderFunc
	stats     Stats
}

// New creates a stopped engine drawing p into a grid of the given size.
// p may be nil; the engine then emits blank frames until SetPattern.
func New(p pattern.Pattern, sink Sink, size buffer.Size, cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if cfg.MaxDelta <= 0 {
		cfg.MaxDelta = def.MaxDelta
	}
	if cfg.Speed == 0 {
		cfg.Speed = def.Speed
	}
	e := &Engine{
		buf:      buffer.NewDoubleBuffer(size.Width, size.Height),
		sink:     sink,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		active:   p,
		maxDelta: cfg.MaxDelta,
		dirty:    true,
	}
	e.size = e.buf.Size()
	e.SetSpeed(cfg.Speed)
	return e
}

func (e *Engine) State() State                 { return e.state }
func (e *Engine) Active() pattern.Pattern      { return e.active }
func (e *Engine) Size() buffer.Size            { return e.size }
func (e *Engine) Time() float64                { return e.time }
func (e *Engine) Speed() float64               { return e.speed }
func (e *Engine) Stats() Stats                 { return e.stats }
func (e *Engine) Buffer() *buffer.DoubleBuffer { return e.buf }

// Start moves Stopped to Running.
func (e *Engine) Start() error {
	if e.state != Stopped {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, e.state)
	}
	e.state = Running
	e.last = e.clock.Now()
	e.logger.Printf("engine: start pattern=%s size=%dx%d", e.patternName(), e.size.Width, e.size.Height)
	return nil
}

// Pause moves Running to Paused.
func (e *Engine) Pause() error {
	if e.state != Running {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, e.state)
	}
	e.state = Paused
	return nil
}

// Resume moves Paused to Running without counting the paused interval.
func (e *Engine) Resume() error {
	if e.state != Paused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, e.state)
	}
	e.state = Running
	e.last = e.clock.Now()
	return nil
}

// Stop moves any state to Stopped.
func (e *Engine) Stop() error {
	if e.state != Stopped {
		e.logger.Printf("engine: stop after %d frames", e.stats.Frames)
	}
	e.state = Stopped
	return nil
}

// TogglePause flips between Running and Paused.
func (e *Engine) TogglePause() error {
	if e.state == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// SetSpeed clamps s to [MinSpeed, MaxSpeed].
func (e *Engine) SetSpeed(s float64) {
	e.speed = pattern.ClampFloat(s, MinSpeed, MaxSpeed)
}

// OnAfterRender registers fn to run after every tick.
func (e *Engine) OnAfterRender(fn AfterRenderFunc) {
	e.callbacks = append(e.callbacks, fn)
}

// OnBeforeTick registers fn to run at the start of every tick, in any state
// but Stopped. fn may change the engine; the tick sees the result.
func (e *Engine) OnBeforeTick(fn func()) {
	e.before = append(e.before, fn)
}

// SetPattern switches the active pattern. The outgoing pattern is reset and
// the buffers are resynchronised against a blank frame so that no cell of
// the old pattern survives the switch.
func (e *Engine) SetPattern(p pattern.Pattern) error {
	if p == nil {
		return ErrNilPattern
	}
	if e.active != nil {
		e.active.Reset()
	}
	e.active = p
	e.buf.Clear()
	e.buf.Swap()
	e.dirty = true
	if err := e.sink.Clear(); err != nil {
		e.buf.Invalidate()
		return fmt.Errorf("%w: clear: %w", ErrSinkFailed, err)
	}
	e.logger.Printf("engine: pattern=%s", p.Name())
	return nil
}

// ApplyPreset delegates to the active pattern. The buffers are not
// resynchronised.
func (e *Engine) ApplyPreset(id int) bool {
	if e.active == nil {
		return false
	}
	ok := e.active.ApplyPreset(id)
	if ok {
		e.dirty = true
	}
	return ok
}

// ResetPattern drops the active pattern's simulation state.
func (e *Engine) ResetPattern() {
	if e.active != nil {
		e.active.Reset()
		e.dirty = true
	}
}

// Resize records a new size. It is applied at the start of the next tick.
func (e *Engine) Resize(size buffer.Size) {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	e.pending = &size
	e.dirty = true
}

// MouseMove records the pointer and forwards it to the active pattern.
func (e *Engine) MouseMove(p buffer.Point) {
	e.mouse = &p
	if e.active != nil {
		e.active.OnMouseMove(p)
	}
}

// MouseLeave forgets the pointer position.
func (e *Engine) MouseLeave() { e.mouse = nil }

func (e *Engine) MouseClick(p buffer.Point) {
	if e.active != nil {
		e.active.OnMouseClick(p)
	}
}

// Invalidate forces the next frame to repaint every cell, even while paused.
func (e *Engine) Invalidate() {
	e.buf.Invalidate()
	e.dirty = true
}

// Tick produces one frame while Running. While Paused it only redraws
// when something changed the picture (pattern switch, preset, resize),
// without advancing scene time. While Stopped it does nothing.
func (e *Engine) Tick() error {
	if e.state == Stopped {
		return nil
	}
	for _, fn := range e.before {
		fn()
	}

	switch e.state {
	case Stopped:
		return nil
	case Paused:
		if !e.dirty && e.pending == nil {
			return nil
		}
		e.last = e.clock.Now()
		return e.frame(0)
	}

	now := e.clock.Now()
	delta := now.Sub(e.last).Seconds()
	e.last = now
	if delta <= 0 {
		delta = 1e-6
	}
	if delta > e.maxDelta {
		delta = e.maxDelta
	}
	return e.frame(delta * e.speed)
}

func (e *Engine) frame(delta float64) error {
	e.time += delta

	if e.pending != nil {
		if err := e.applyResize(*e.pending); err != nil {
			e.logger.Printf("engine: resize: %v", err)
		}
		e.pending = nil
	}

	e.buf.Clear()
	info := FrameInfo{Frame: e.stats.Frames, Time: e.time, Delta: delta, Size: e.size}

	start := e.clock.Now()
	rerr := e.render()
	info.RenderTime = e.clock.Now().Sub(start)

	if rerr != nil {
		e.buf.Clear()
		e.stats.Skipped++
		e.stats.RenderErrors++
		info.Skipped = true
		e.logger.Printf("%v", rerr)
		e.afterRender(info)
		return rerr
	}

	var serr error
	changes := e.buf.Changes()
	counted := func(yield func(buffer.Change) bool) {
		for c := range changes {
			info.Changes++
			if !yield(c) {
				return
			}
		}
	}
	if err := e.sink.Emit(counted); err != nil {
		serr = fmt.Errorf("%w: emit: %w", ErrSinkFailed, err)
		e.stats.SinkErrors++
		e.logger.Printf("%v", serr)
	}
	e.buf.Swap()
	if serr != nil {
		e.buf.Invalidate()
	}

	e.dirty = false
	e.stats.observe(info)
	e.afterRender(info)
	return serr
}

func (e *Engine) render() (err error) {
	if e.active == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Pattern: e.active.Name(), Frame: e.stats.Frames, Time: e.time, Value: r}
		}
	}()
	e.active.Render(e.buf.Current(), e.time, e.size, e.mouse)
	return nil
}

func (e *Engine) applyResize(size buffer.Size) error {
	e.buf.Resize(size.Width, size.Height)
	e.size = e.buf.Size()
	if e.mouse != nil && !e.size.Contains(*e.mouse) {
		e.mouse = nil
	}
	return e.sink.Clear()
}

func (e *Engine) afterRender(info FrameInfo) {
	for _, fn := range e.callbacks {
		fn(info)
	}
}

func (e *Engine) patternName() string {
	if e.active == nil {
		return "<none>"
	}
	return e.active.Name()
}
