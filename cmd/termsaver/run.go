package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/patterns"
	"github.com/san-kum/termsaver/internal/playlist"
	"github.com/san-kum/termsaver/internal/term"
	"github.com/san-kum/termsaver/internal/viz"
	"github.com/spf13/cobra"
)

// loadConfig resolves the config file or profile, then applies the flags
// the user actually set. A pattern argument wins over the config.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case profile != "":
		cfg = config.GetProfile(profile)
		if cfg == nil {
			return nil, fmt.Errorf("unknown profile %q (have %v)", profile, config.ListProfiles())
		}
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	default:
		c, err := config.LoadOrDefault(config.DefaultPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Pattern = args[0]
		if !flags.Changed("preset") {
			cfg.Preset = 0
		}
	}
	if flags.Changed("preset") {
		cfg.Preset = presetID
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("mouse") {
		cfg.Mouse = mouse
	}
	if flags.Changed("status") {
		cfg.StatusBar = statusBar
	}
	if flags.Changed("playlist") {
		cfg.Playlist = playlistIn
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	for _, note := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "config: %s\n", note)
	}
	return cfg, nil
}

// openLogger appends to the configured log file. The terminal belongs to
// the renderer, so without a file logs are discarded.
func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return log.New(f, "termsaver ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func runSaver(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	var pl *playlist.Playlist
	if cfg.Playlist != "" {
		pl, err = playlist.Load(cfg.Playlist)
		if err != nil {
			return err
		}
	}
	return launch(cfg, pl)
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	pl, err := playlist.Load(args[0])
	if err != nil {
		return err
	}
	if !checkOnly {
		return launch(cfg, pl)
	}

	if err := pl.Validate(patterns.NewRegistry()); err != nil {
		return err
	}
	fmt.Printf("playlist: %s\n", pl.Name)
	if pl.Description != "" {
		fmt.Printf("%s\n", pl.Description)
	}
	fmt.Printf("steps: %d  total: %v  loop: %v  shuffle: %v\n\n", len(pl.Steps), pl.Total(), pl.Loop, pl.Shuffle)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPATTERN\tPRESET\tTHEME\tDURATION")
	for i, s := range pl.Steps {
		th := s.Theme
		if th == "" {
			th = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%v\n", i+1, s.Pattern, s.Preset, th, s.Duration)
	}
	return w.Flush()
}

// launch runs the screensaver on the configured backend until quit or a
// termination signal.
func launch(cfg *config.Config, pl *playlist.Playlist) error {
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Printf("start pattern=%s theme=%s backend=%s fps=%d seed=%d", cfg.Pattern, cfg.Theme, cfg.Backend, cfg.FPS, cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := patterns.NewRegistry()

	if cfg.Backend == config.BackendTea {
		frame := viz.NewFrame(80, 24)
		a, err := app.New(app.Options{
			Config:   cfg,
			Registry: reg,
			Sink:     frame,
			Surface:  frame,
			Size:     frame.Size(),
			Logger:   logger,
			Playlist: pl,
		})
		if err != nil {
			return err
		}
		err = viz.Run(ctx, a, frame, cfg.FPS, cfg.Mouse)
		logStats(logger, a)
		return quiet(err)
	}

	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer ts.Fini()
	ts.HideCursor()
	ts.EnableFocus()
	if cfg.Mouse {
		ts.EnableMouse()
	}

	scr := term.NewScreen(ts)
	a, err := app.New(app.Options{
		Config:   cfg,
		Registry: reg,
		Sink:     scr,
		Surface:  scr,
		Size:     scr.Size(),
		Logger:   logger,
		Playlist: pl,
	})
	if err != nil {
		return err
	}
	err = term.Run(ctx, scr, a, cfg.FPS)
	logStats(logger, a)
	return quiet(err)
}

// quiet drops the error a signal-triggered shutdown produces.
func quiet(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func logStats(logger *log.Logger, a *app.App) {
	st := a.Engine().Stats()
	logger.Printf("stop frames=%d skipped=%d render_errors=%d sink_errors=%d frame_time=%v",
		st.Frames, st.Skipped, st.RenderErrors, st.SinkErrors, st.FrameTime)
}

// headlessSize parses "WIDTHxHEIGHT".
func headlessSize(s string) (buffer.Size, error) {
	var size buffer.Size
	if _, err := fmt.Sscanf(s, "%dx%d", &size.Width, &size.Height); err != nil {
		return size, fmt.Errorf("bad size %q: want WIDTHxHEIGHT", s)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return size, fmt.Errorf("bad size %q: dimensions must be positive", s)
	}
	return size, nil
}
