package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/export"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/patterns"
	"github.com/san-kum/termsaver/internal/storage"
	"github.com/san-kum/termsaver/internal/viz"
	"github.com/spf13/cobra"
)

// benchClock runs ahead of the wall clock by one frame interval per tick,
// so scene time advances at the target rate while render timings stay
// real.
type benchClock struct {
	offset time.Duration
}

func (c *benchClock) Now() time.Time          { return time.Now().Add(c.offset) }
func (c *benchClock) Advance(d time.Duration) { c.offset += d }

type benchResult struct {
	meta   storage.RunMetadata
	frames []storage.Frame
}

func benchPattern(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	var targets []buffer.Size
	for _, s := range strings.Split(sizes, ",") {
		size, err := headlessSize(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		targets = append(targets, size)
	}
	if benchFrames <= 0 {
		return fmt.Errorf("frames must be positive")
	}

	reg := patterns.NewRegistry()
	st := storage.New(cfg.DataDir)

	fmt.Printf("benchmarking %s (%d frames, seed %d)\n\n", cfg.Pattern, benchFrames, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tFRAMES\tWALL\tFRAMES/SEC\tRENDER_MS\tCHURN\tRUN")

	var results []benchResult
	for _, size := range targets {
		res, err := benchOne(cfg, reg, size, logger)
		if err != nil {
			return err
		}
		runID := "-"
		if !noSave {
			runID, err = st.Save(res.meta, res.frames)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
		}
		m := res.meta
		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.0f\t%.3f\t%.3f\t%s\n",
			m.Width, m.Height, m.Frames, time.Duration(m.Wall*float64(time.Second)).Round(time.Millisecond),
			float64(m.Frames)/m.Wall, m.Metrics["render_ms"], m.Metrics["churn"], runID)
		results = append(results, res)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, res := range results {
		label := fmt.Sprintf("%dx%d", res.meta.Width, res.meta.Height)
		fmt.Println(viz.Metric(label, viz.SparklineChart(storage.Series(res.frames, "render_ms"), 60)))
	}
	return nil
}

// benchOne renders cfg's pattern headless at size and records every frame.
func benchOne(cfg *config.Config, reg *pattern.Registry, size buffer.Size, logger *log.Logger) (benchResult, error) {
	clock := &benchClock{}
	a, err := app.New(app.Options{
		Config:   cfg,
		Registry: reg,
		Sink:     &engine.CountingSink{},
		Size:     size,
		Clock:    clock,
		Logger:   logger,
	})
	if err != nil {
		return benchResult{}, err
	}
	eng := a.Engine()
	rec := storage.NewRecorder(a.Metrics(), func() map[string]float64 { return eng.Active().Metrics() })
	eng.OnAfterRender(rec.Hook())
	if err := a.Start(); err != nil {
		return benchResult{}, err
	}

	step := time.Second / time.Duration(cfg.FPS)
	start := time.Now()
	for range benchFrames {
		clock.Advance(step)
		if err := eng.Tick(); err != nil {
			logger.Printf("bench: %v", err)
		}
	}
	wall := time.Since(start).Seconds()

	return benchResult{
		meta: storage.RunMetadata{
			Pattern:   a.Pattern(),
			Preset:    a.Preset(),
			Theme:     a.Theme().Name,
			Timestamp: time.Now(),
			Seed:      cfg.Seed,
			FPS:       cfg.FPS,
			Width:     size.Width,
			Height:    size.Height,
			Frames:    len(rec.Frames()),
			Duration:  eng.Time(),
			Wall:      wall,
			Metrics:   a.Metrics().Values(),
		},
		frames: rec.Frames(),
	}, nil
}

// openStore uses the data directory from the config file unless --data is
// given.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPATTERN\tTIME\tSIZE\tFRAMES\tSCENE\tRENDER_MS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.2fs\t%.3f\n",
			run.ID,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Duration,
			run.Metrics["render_ms"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("pattern: %s  theme: %s  size: %dx%d\n", meta.Pattern, meta.Theme, meta.Width, meta.Height)
	fmt.Printf("frames: %d\n\n", len(frames))

	columns := []string{"render_ms", "changes", "churn"}
	if column != "" {
		columns = []string{column}
	}

	for _, col := range columns {
		data := storage.Series(frames, col)
		if len(data) == 0 {
			if column != "" {
				return fmt.Errorf("run %s has no column %q", runID, col)
			}
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" per frame"),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgOut != "" {
			path := svgOut
			if len(columns) > 1 {
				path = strings.TrimSuffix(svgOut, ".svg") + "_" + col + ".svg"
			}
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, 800, 200, "#00ccff")), 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n\n", path)
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	return st.ExportJSON(args[0], os.Stdout)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	return st.ExportCSV(args[0], os.Stdout)
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	size := buffer.Size{Width: width, Height: height}
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("bad size %dx%d", width, height)
	}

	clock := engine.NewManualClock()
	sink := engine.NewRecordingSink(size.Width, size.Height)
	a, err := app.New(app.Options{
		Config:   cfg,
		Registry: patterns.NewRegistry(),
		Sink:     sink,
		Size:     size,
		Clock:    clock,
	})
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		return err
	}
	step := time.Second / time.Duration(cfg.FPS)
	for range max(snapFrames, 1) {
		clock.Advance(step)
		if err := a.Engine().Tick(); err != nil {
			return err
		}
	}

	if svgOut == "" {
		fmt.Print(export.GridToText(sink.Screen))
		return nil
	}
	if err := os.WriteFile(svgOut, []byte(export.GridToSVG(sink.Screen, 8, 16)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %s, %d frames)\n", svgOut, a.Pattern(), a.Theme().Name, a.Engine().Stats().Frames)
	return nil
}
