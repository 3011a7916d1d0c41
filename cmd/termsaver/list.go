package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/patterns"
	"github.com/san-kum/termsaver/internal/theme"
	"github.com/san-kum/termsaver/internal/viz"
	"github.com/spf13/cobra"
)

func listPatterns(cmd *cobra.Command, args []string) error {
	reg := patterns.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tPRESETS\tDESCRIPTION")
	for _, name := range reg.Names() {
		n := 0
		if p, err := reg.New(name, pattern.Options{Theme: theme.Default}); err == nil {
			n = len(p.Presets())
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, n, reg.Describe(name))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	reg := patterns.NewRegistry()
	names := reg.Names()
	if len(args) > 0 {
		if !reg.Has(args[0]) {
			return fmt.Errorf("%w: %s", pattern.ErrUnknownPattern, args[0])
		}
		names = args[:1]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tID\tNAME\tDESCRIPTION")
	for _, name := range names {
		p, err := reg.New(name, pattern.Options{Theme: theme.Default})
		if err != nil {
			return err
		}
		for _, pr := range p.Presets() {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, pr.ID, pr.Name, pr.Description)
		}
	}
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	fmt.Println(viz.Header.Render("themes"))
	for _, name := range theme.Names() {
		t, _ := theme.Get(name)
		marker := " "
		if name == config.DefaultTheme {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s\n", marker, name, viz.Swatch(t, 24))
	}

	fmt.Println()
	fmt.Println(viz.Header.Render("profiles"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROFILE\tPATTERN\tTHEME\tFPS\tSPEED")
	for _, name := range config.ListProfiles() {
		p := config.GetProfile(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fx\n", name, p.Pattern, p.Theme, p.FPS, p.Speed)
	}
	return w.Flush()
}
