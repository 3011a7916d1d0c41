package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	profile    string
	presetID   int
	themeName  string
	fps        int
	speed      float64
	seed       int64
	backend    string
	mouse      bool
	statusBar  bool
	playlistIn string
	logFile    string

	// bench and snapshot
	benchFrames int
	snapFrames  int
	sizes       string
	width       int
	height      int
	noSave      bool
	svgOut      string
	column      string
	checkOnly   bool
)

// main registers the commands and runs the default pattern when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "termsaver",
		Short:        "terminal screensaver",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSaver,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "data directory for recorded runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "start from a built-in profile instead of the config file")
	rootCmd.PersistentFlags().IntVar(&presetID, "preset", 0, "pattern preset id")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 30, "target frames per second")
	rootCmd.PersistentFlags().Float64Var(&speed, "speed", 1.0, "animation speed multiplier")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one at startup)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file")
	addScreenFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [pattern]",
		Short: "run a pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSaver,
	}
	addScreenFlags(runCmd)
	runCmd.Flags().StringVar(&playlistIn, "playlist", "", "playlist file (yaml)")

	playlistCmd := &cobra.Command{
		Use:   "playlist [file]",
		Short: "play a playlist of patterns",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlaylist,
	}
	addScreenFlags(playlistCmd)
	playlistCmd.Flags().BoolVar(&checkOnly, "check", false, "validate and print the playlist without running it")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list patterns",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [pattern]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes and profiles",
		Args:  cobra.NoArgs,
		RunE:  listThemes,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [pattern]",
		Short: "render a pattern headless and record frame metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPattern,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per size")
	benchCmd.Flags().StringVar(&sizes, "sizes", "80x24,160x48", "comma separated WIDTHxHEIGHT list")
	benchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record runs")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "plot one column (default: render_ms, changes, churn)")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot to an svg file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a run's frames.csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [pattern]",
		Short: "render frames headless and print the last one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 60, "frames to render before the snapshot")
	snapshotCmd.Flags().IntVar(&width, "width", 80, "width in cells")
	snapshotCmd.Flags().IntVar(&height, "height", 24, "height in cells")
	snapshotCmd.Flags().StringVar(&svgOut, "svg", "", "write an svg file instead of text")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(exportJSONCmd)
	rootCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScreenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&backend, "backend", "tcell", "renderer: tcell or tea")
	cmd.Flags().BoolVar(&mouse, "mouse", true, "enable mouse input")
	cmd.Flags().BoolVar(&statusBar, "status", true, "show the status bar")
}
