package app_test

import (
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/patterns"
	"github.com/san-kum/termsaver/internal/playlist"
	"github.com/san-kum/termsaver/internal/ui"
)

var _ = Describe("App", func() {
	var (
		clock *engine.ManualClock
		sink  *engine.RecordingSink
		cfg   *config.Config
		opts  app.Options
		a     *app.App
	)

	build := func() {
		var err error
		a, err = app.New(opts)
		Expect(err).NotTo(HaveOccurred())
	}

	tick := func() {
		clock.Advance(50 * time.Millisecond)
		Expect(a.Engine().Tick()).To(Succeed())
	}

	screen := func() string {
		return strings.Join(sink.Screen.Rows(), "\n")
	}

	BeforeEach(func() {
		clock = engine.NewManualClock()
		sink = engine.NewRecordingSink(48, 16)
		cfg = config.DefaultConfig()
		cfg.Seed = 1
		opts = app.Options{
			Config:   cfg,
			Registry: patterns.NewRegistry(),
			Sink:     sink,
			Surface:  ui.GridSurface{Grid: sink.Screen},
			Size:     buffer.Size{Width: 48, Height: 16},
			Clock:    clock,
		}
	})

	Describe("construction", func() {
		It("starts on the configured pattern, stopped", func() {
			build()
			Expect(a.Pattern()).To(Equal("plasma"))
			Expect(a.Engine().State()).To(Equal(engine.Stopped))
			Expect(a.Theme().Name).To(Equal(config.DefaultTheme))
		})

		It("applies the configured preset", func() {
			cfg.Preset = 2
			build()
			Expect(a.Preset()).To(Equal(2))
			Expect(a.Status().Preset).To(Equal("psychedelic"))
		})

		It("drops a bad override map instead of failing", func() {
			cfg.Patterns = map[string]map[string]any{"plasma": {"bogus": 1}}
			build()
			Expect(a.Pattern()).To(Equal("plasma"))
		})

		It("rejects an unknown pattern", func() {
			cfg.Pattern = "warp"
			_, err := app.New(opts)
			Expect(err).To(MatchError(pattern.ErrUnknownPattern))
		})
	})

	Describe("keys", func() {
		BeforeEach(func() {
			build()
			Expect(a.Start()).To(Succeed())
			tick()
		})

		It("reports unbound keys", func() {
			Expect(a.HandleKey("F12")).To(BeFalse())
		})

		It("cycles patterns in name order", func() {
			Expect(a.HandleKey("right")).To(BeTrue())
			Expect(a.Pattern()).To(Equal("rain"))
			Expect(a.Toast().Message()).To(Equal("rain"))
			Expect(a.HandleKey("left")).To(BeTrue())
			Expect(a.HandleKey("left")).To(BeTrue())
			Expect(a.Pattern()).To(Equal("ocean"))
			Expect(a.Engine().Active().Name()).To(Equal("ocean"))
		})

		It("steps through presets and jumps to a numbered one", func() {
			a.HandleKey("tab")
			Expect(a.Preset()).To(Equal(1))
			a.HandleKey("tab")
			Expect(a.Preset()).To(Equal(2))
			a.HandleKey("3")
			Expect(a.Preset()).To(Equal(3))
			a.HandleKey("tab")
			Expect(a.Preset()).To(Equal(1))

			a.HandleKey("9")
			Expect(a.Preset()).To(Equal(1))
			Expect(a.Toast().Message()).To(Equal("no preset 9"))
		})

		It("rebuilds the pattern when the theme changes", func() {
			a.HandleKey("2")
			before := a.Engine().Active()
			a.HandleKey("t")
			Expect(a.Theme().Name).To(Equal("retro"))
			Expect(a.Engine().Active()).NotTo(BeIdenticalTo(before))
			Expect(a.Pattern()).To(Equal("plasma"))
			Expect(a.Preset()).To(Equal(2))
		})

		It("adjusts speed within limits", func() {
			a.HandleKey("+")
			Expect(a.Engine().Speed()).To(BeNumerically("~", 1.25, 1e-9))
			for range 40 {
				a.HandleKey("-")
			}
			Expect(a.Engine().Speed()).To(Equal(engine.MinSpeed))
		})

		It("pauses, resumes and quits", func() {
			a.HandleKey(" ")
			Expect(a.Engine().State()).To(Equal(engine.Paused))
			a.HandleKey("space")
			Expect(a.Engine().State()).To(Equal(engine.Running))

			a.HandleKey("q")
			Expect(a.Done()).To(BeTrue())
			Expect(a.Engine().State()).To(Equal(engine.Stopped))
		})

		It("paints the status bar and toggles help", func() {
			tick()
			Expect(sink.Screen.Rows()[15]).To(ContainSubstring("plasma"))
			Expect(screen()).NotTo(ContainSubstring("termsaver"))

			a.HandleKey("?")
			tick()
			Expect(screen()).To(ContainSubstring("termsaver"))
			Expect(screen()).To(ContainSubstring("next pattern"))

			a.HandleKey("?")
			tick()
			Expect(screen()).NotTo(ContainSubstring("next pattern"))

			a.HandleKey("s")
			tick()
			Expect(sink.Screen.Rows()[15]).NotTo(ContainSubstring("plasma"))
		})

		It("shows overlays while paused", func() {
			a.HandleKey(" ")
			tick()
			a.HandleKey("?")
			tick()
			Expect(screen()).To(ContainSubstring("termsaver"))
		})
	})

	Describe("playlist", func() {
		It("switches patterns when a step runs out", func() {
			opts.Playlist = &playlist.Playlist{Steps: []playlist.Step{
				{Pattern: "fire", Duration: 2 * time.Second},
				{Pattern: "maze", Preset: 1, Theme: "ocean", Duration: 2 * time.Second},
			}}
			build()
			Expect(a.Pattern()).To(Equal("fire"))
			Expect(a.Start()).To(Succeed())

			clock.Advance(time.Second)
			Expect(a.Engine().Tick()).To(Succeed())
			Expect(a.Pattern()).To(Equal("fire"))

			clock.Advance(time.Second)
			Expect(a.Engine().Tick()).To(Succeed())
			Expect(a.Pattern()).To(Equal("maze"))
			Expect(a.Preset()).To(Equal(1))
			Expect(a.Theme().Name).To(Equal("ocean"))
			Expect(a.Status().Extra).To(Equal("playlist 2/2 2s"))

			clock.Advance(time.Second)
			Expect(a.Engine().Tick()).To(Succeed())
			Expect(a.Status().Extra).To(Equal("playlist 2/2 1s"))
		})

		It("rejects a playlist naming an unknown pattern", func() {
			opts.Playlist = &playlist.Playlist{Steps: []playlist.Step{{Pattern: "warp"}}}
			_, err := app.New(opts)
			Expect(err).To(MatchError(pattern.ErrUnknownPattern))
		})
	})
})

var _ = Describe("Bindings", func() {
	It("lists one row per action", func() {
		rows := app.Bindings()
		Expect(rows).To(HaveLen(int(app.ActionStatus)))
		Expect(rows[0]).To(Equal(ui.KeyHelp{Key: "ctrl+c/esc/q", Desc: "quit"}))
	})

	It("maps digits to presets", func() {
		action, id := app.Lookup("7")
		Expect(action).To(Equal(app.ActionPreset))
		Expect(id).To(Equal(7))
	})
})
