package engine_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/pattern"
)

// stubPattern writes `cells` red '#' cells in row-major order, or the whole
// grid when cells is negative.
type stubPattern struct {
	pattern.NoMouse
	name    string
	cells   int
	panics  bool
	resets  int
	renders int
	lastT   float64
	clicks  []buffer.Point
}

func (p *stubPattern) Name() string { return p.name }

func (p *stubPattern) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	if p.panics {
		panic("boom")
	}
	p.renders++
	p.lastT = t
	n := p.cells
	if n < 0 {
		n = size.Area()
	}
	for i := 0; i < n && i < size.Area(); i++ {
		g.Set(i%size.Width, i/size.Width, buffer.NewCell('#', buffer.RGB{R: 255}))
	}
}

func (p *stubPattern) Reset()                       { p.resets++ }
func (p *stubPattern) OnMouseClick(pt buffer.Point) { p.clicks = append(p.clicks, pt) }
func (p *stubPattern) Presets() []pattern.Preset    { return nil }
func (p *stubPattern) ApplyPreset(id int) bool      { return id == 1 }

func (p *stubPattern) Metrics() map[string]float64 {
	return map[string]float64{"renders": float64(p.renders)}
}

var _ = Describe("Engine", func() {
	var (
		clock *engine.ManualClock
		sink  *engine.RecordingSink
		full  *stubPattern
		e     *engine.Engine
	)

	tick := func() error {
		clock.Advance(16 * time.Millisecond)
		return e.Tick()
	}

	BeforeEach(func() {
		clock = engine.NewManualClock()
		sink = engine.NewRecordingSink(20, 10)
		full = &stubPattern{name: "full", cells: -1}
		cfg := engine.DefaultConfig()
		cfg.Clock = clock
		e = engine.New(full, sink, buffer.Size{Width: 20, Height: 10}, cfg)
	})

	Describe("state machine", func() {
		It("starts stopped", func() {
			Expect(e.State()).To(Equal(engine.Stopped))
		})

		It("follows valid transitions", func() {
			Expect(e.Start()).To(Succeed())
			Expect(e.State()).To(Equal(engine.Running))
			Expect(e.Pause()).To(Succeed())
			Expect(e.State()).To(Equal(engine.Paused))
			Expect(e.Resume()).To(Succeed())
			Expect(e.State()).To(Equal(engine.Running))
			Expect(e.Stop()).To(Succeed())
			Expect(e.State()).To(Equal(engine.Stopped))
		})

		DescribeTable("rejects invalid transitions",
			func(setup func(), op func() error, want engine.State) {
				setup()
				Expect(op()).To(MatchError(engine.ErrInvalidTransition))
				Expect(e.State()).To(Equal(want))
			},
			Entry("pause while stopped", func() {}, func() error { return e.Pause() }, engine.Stopped),
			Entry("resume while stopped", func() {}, func() error { return e.Resume() }, engine.Stopped),
			Entry("start while running", func() { e.Start() }, func() error { return e.Start() }, engine.Running),
			Entry("resume while running", func() { e.Start() }, func() error { return e.Resume() }, engine.Running),
			Entry("pause while paused", func() { e.Start(); e.Pause() }, func() error { return e.Pause() }, engine.Paused),
		)

		It("does nothing when ticked while stopped", func() {
			Expect(tick()).To(Succeed())
			Expect(e.Stats().Frames).To(BeZero())
			Expect(full.renders).To(BeZero())
		})
	})

	Describe("ticking", func() {
		BeforeEach(func() {
			Expect(e.Start()).To(Succeed())
		})

		It("emits only the cells that changed", func() {
			Expect(tick()).To(Succeed())
			Expect(sink.Last).To(HaveLen(200))
			Expect(tick()).To(Succeed())
			Expect(sink.Last).To(BeEmpty())
			Expect(e.Buffer().Previous().Equal(sink.Screen)).To(BeTrue())
		})

		It("advances scene time by the clamped delta scaled by speed", func() {
			e.SetSpeed(2)
			clock.Advance(time.Second)
			Expect(e.Tick()).To(Succeed())
			Expect(e.Time()).To(BeNumerically("~", 0.2, 1e-9))
			Expect(full.lastT).To(BeNumerically("~", 0.2, 1e-9))
		})

		It("clamps speed", func() {
			e.SetSpeed(100)
			Expect(e.Speed()).To(Equal(engine.MaxSpeed))
			e.SetSpeed(0)
			Expect(e.Speed()).To(Equal(engine.MinSpeed))
		})

		It("runs callbacks in registration order with frame info", func() {
			var order []string
			var got engine.FrameInfo
			e.OnAfterRender(func(engine.FrameInfo) { order = append(order, "first") })
			e.OnAfterRender(func(info engine.FrameInfo) {
				order = append(order, "second")
				got = info
			})
			Expect(tick()).To(Succeed())
			Expect(order).To(Equal([]string{"first", "second"}))
			Expect(got.Changes).To(Equal(200))
			Expect(got.Size).To(Equal(buffer.Size{Width: 20, Height: 10}))
			Expect(got.Skipped).To(BeFalse())
		})

		It("applies a resize at the next tick", func() {
			clears := sink.Clears
			e.Resize(buffer.Size{Width: 5, Height: 3})
			Expect(e.Size()).To(Equal(buffer.Size{Width: 20, Height: 10}))
			sink.Resize(5, 3)
			Expect(tick()).To(Succeed())
			Expect(e.Size()).To(Equal(buffer.Size{Width: 5, Height: 3}))
			Expect(sink.Clears).To(Equal(clears + 1))
			Expect(sink.Last).To(HaveLen(15))
		})

		It("survives a zero sized terminal", func() {
			e.Resize(buffer.Size{})
			Expect(tick()).To(Succeed())
			Expect(sink.Last).To(BeEmpty())
		})

		It("forwards mouse input to the active pattern", func() {
			e.MouseClick(buffer.Point{X: 3, Y: 4})
			Expect(full.clicks).To(ConsistOf(buffer.Point{X: 3, Y: 4}))
		})
	})

	Describe("switching patterns", func() {
		It("resynchronises against a blank frame", func() {
			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(sink.Screen.Count(func(c buffer.Cell) bool { return !c.IsBlank() })).To(Equal(200))

			small := &stubPattern{name: "small", cells: 10}
			Expect(e.SetPattern(small)).To(Succeed())
			Expect(full.resets).To(Equal(1))
			Expect(e.Active()).To(BeIdenticalTo(small))

			Expect(tick()).To(Succeed())
			Expect(sink.Last).To(HaveLen(10))
			Expect(sink.Screen.Count(func(c buffer.Cell) bool { return !c.IsBlank() })).To(Equal(10))
		})

		It("rejects a nil pattern", func() {
			Expect(e.SetPattern(nil)).To(MatchError(engine.ErrNilPattern))
			Expect(e.Active()).To(BeIdenticalTo(full))
		})

		It("delegates presets without resync", func() {
			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			clears := sink.Clears
			Expect(e.ApplyPreset(1)).To(BeTrue())
			Expect(e.ApplyPreset(7)).To(BeFalse())
			Expect(sink.Clears).To(Equal(clears))
		})

		It("redraws once while paused", func() {
			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(e.Pause()).To(Succeed())
			before := e.Time()

			Expect(tick()).To(Succeed())
			Expect(full.renders).To(Equal(1))

			small := &stubPattern{name: "small", cells: 10}
			Expect(e.SetPattern(small)).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(small.renders).To(Equal(1))
			Expect(sink.Last).To(HaveLen(10))
			Expect(e.Time()).To(Equal(before))
		})
		It("repaints everything after Invalidate while paused", func() {
			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(e.Pause()).To(Succeed())

			e.Invalidate()
			Expect(tick()).To(Succeed())
			Expect(full.renders).To(Equal(2))
			Expect(sink.Last).To(HaveLen(200))
		})

		It("runs before-tick hooks unless stopped", func() {
			calls := 0
			e.OnBeforeTick(func() { calls++ })
			Expect(tick()).To(Succeed())
			Expect(calls).To(BeZero())

			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(e.Pause()).To(Succeed())
			Expect(tick()).To(Succeed())
			Expect(calls).To(Equal(2))
		})
	})

	Describe("render failures", func() {
		It("skips the frame and keeps the buffers", func() {
			Expect(e.Start()).To(Succeed())
			Expect(tick()).To(Succeed())
			snapshot := e.Buffer().Previous().Clone()

			var skipped bool
			e.OnAfterRender(func(info engine.FrameInfo) { skipped = info.Skipped })

			full.panics = true
			err := tick()
			Expect(err).To(MatchError(engine.ErrRenderFailed))
			var rerr *engine.RenderError
			Expect(errors.As(err, &rerr)).To(BeTrue())
			Expect(rerr.Pattern).To(Equal("full"))
			Expect(skipped).To(BeTrue())
			Expect(e.Buffer().Previous().Equal(snapshot)).To(BeTrue())
			Expect(e.Stats().RenderErrors).To(Equal(uint64(1)))

			full.panics = false
			Expect(tick()).To(Succeed())
			Expect(sink.Last).To(BeEmpty())
			Expect(e.Stats().Frames).To(Equal(uint64(2)))
		})
	})

	Describe("Run", func() {
		It("executes queued input and returns when stopped", func() {
			inbox := make(chan func(), 2)
			inbox <- func() { e.SetSpeed(3) }
			inbox <- func() { e.Stop() }
			Expect(e.Run(context.Background(), 60, inbox)).To(Succeed())
			Expect(e.Speed()).To(Equal(3.0))
			Expect(e.State()).To(Equal(engine.Stopped))
		})

		It("returns the context error on cancel", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			Expect(e.Run(ctx, 120, nil)).To(MatchError(context.DeadlineExceeded))
			Expect(e.State()).To(Equal(engine.Stopped))
		})
	})
})

var _ = Describe("CountingSink", func() {
	It("counts emitted cells", func() {
		s := &engine.CountingSink{}
		b := buffer.NewDoubleBuffer(4, 2)
		b.Write(1, 1, buffer.Plain('x'))
		Expect(s.Emit(b.Changes())).To(Succeed())
		Expect(s.Last).To(Equal(1))
		Expect(s.Emits).To(Equal(1))
	})
})
