// fl is a terminal explorer for field to indicator mappings: select the
// fields you can measure and see which indicators become computable, or
// pick indicators and see which fields they need.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldlens/fieldlens/internal/datasource"
	"github.com/fieldlens/fieldlens/pkg/analysis"
	"github.com/fieldlens/fieldlens/pkg/config"
	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/export"
	"github.com/fieldlens/fieldlens/pkg/loader"
	"github.com/fieldlens/fieldlens/pkg/metrics"
	"github.com/fieldlens/fieldlens/pkg/model"
	"github.com/fieldlens/fieldlens/pkg/ui"
	"github.com/fieldlens/fieldlens/pkg/version"
	"github.com/fieldlens/fieldlens/pkg/watcher"
)

func main() {
	dataDir := flag.String("data", "", "Directory containing the mapping source (default: FL_DATA_DIR or cwd)")
	mode := flag.String("mode", "", "Startup mode: forward or reverse (default from config)")
	selectFields := flag.String("select", "", "Comma-separated field ids to pre-select")
	stats := flag.Bool("stats", false, "Print mapping statistics and exit")
	exportSVG := flag.String("export-svg", "", "Write an SVG snapshot of the mapping to the given path and exit")
	noWatch := flag.Bool("no-watch", false, "Disable live reload of the mapping source")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: fl [options]")
		fmt.Println("\nA terminal explorer for field to indicator mappings.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("fl %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	dir := *dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		dir = os.Getenv(loader.DataDirEnvVar)
	}
	if dir == "" {
		dir = "."
	}

	rows, source, err := datasource.LoadRows(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mapping data from %s: %v\n", dir, err)
		os.Exit(1)
	}

	stopBuild := metrics.Timer(metrics.IndexBuild)
	idx := engine.BuildIndex(engine.Normalize(rows))
	stopBuild()

	if *stats {
		printStats(idx)
		os.Exit(0)
	}

	session := engine.NewSession(idx)
	applyStartupState(session, cfg, *mode, *selectFields)

	if *exportSVG != "" {
		err := export.SaveSnapshot(export.SnapshotOptions{
			Path:     *exportSVG,
			Title:    "fieldlens mapping",
			Index:    idx,
			Selected: selectedSet(session, idx),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to %s\n", *exportSVG)
		os.Exit(0)
	}

	m := ui.NewModel(session, source.Path, filepath.Base(source.Path)).WithRows(rows)
	if cfg.UI.Theme != "" && cfg.UI.Theme != "auto" {
		m = m.WithTheme(ui.ThemeForName(lipgloss.DefaultRenderer(), cfg.UI.Theme))
	}

	if cfg.WatchEnabled() && !*noWatch && source.Path != "" {
		w := watcher.New(source.Path)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching disabled: %v\n", err)
		} else {
			defer w.Stop()
			m = m.WithWatcher(w)
		}
	}

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running fieldlens: %v\n", err)
		os.Exit(1)
	}
}

func applyStartupState(session *engine.Session, cfg config.Config, modeFlag, selectFlag string) {
	mode := cfg.Mode
	if modeFlag != "" {
		mode = modeFlag
	}
	if mode == "reverse" {
		session.SetMode(engine.ModeReverse)
	}

	spec := engine.DefaultSortSpec()
	if cfg.SortKey == "name" {
		spec.Key = engine.ByName
	}
	switch cfg.SortDirection {
	case "asc":
		spec.Direction = engine.Ascending
	case "desc":
		spec.Direction = engine.Descending
	}
	if spec != engine.DefaultSortSpec() {
		session.SetSort(spec)
	}

	if selectFlag != "" && mode != "reverse" {
		for _, f := range splitList(selectFlag) {
			id := model.FieldID(f)
			if session.Index().HasField(id) {
				session.ToggleField(id)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: unknown field %q in --select\n", f)
			}
		}
	}
}

func selectedSet(session *engine.Session, idx *engine.Index) map[model.FieldID]struct{} {
	out := make(map[model.FieldID]struct{})
	for _, f := range idx.Fields() {
		if session.FieldSelected(f) {
			out[f] = struct{}{}
		}
	}
	return out
}

func printStats(idx *engine.Index) {
	s := analysis.NewAnalyzer(idx).Analyze()
	fmt.Printf("fields:       %d\n", s.FieldCount)
	fmt.Printf("indicators:   %d\n", s.IndicatorCount)
	fmt.Printf("edges:        %d\n", s.EdgeCount)
	fmt.Printf("density:      %.3f\n", s.Density)
	fmt.Printf("max requires: %d\n", s.MaxRequires)
	fmt.Printf("avg requires: %.2f\n", s.MeanRequires)
	if top := s.TopFields(5); len(top) > 0 {
		fmt.Println("top fields by rank:")
		for _, fs := range top {
			fmt.Printf("  %-30s %.4f\n", fs.Field, fs.Score)
		}
	}
	if ts := metrics.AllTimingStats(); len(ts) > 0 {
		fmt.Println("timings:")
		for _, t := range ts {
			fmt.Printf("  %-16s %.2fms\n", t.Name, t.TotalMs)
		}
	}
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
