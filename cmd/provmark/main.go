package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"provmark/internal/adapters/editor"
	"provmark/internal/adapters/tui"
	"provmark/internal/application/commands"
	"provmark/internal/bootstrap"
	"provmark/internal/config"
)

func main() {
	config.LoadEnv()

	var opts bootstrap.Options
	flag.StringVar(&opts.Dataset, "dataset", config.DatasetPath(), "dataset file (.csv or .xlsx)")
	flag.StringVar(&opts.Store, "store", config.StorePath(), "SQLite cache file")
	flag.BoolVar(&opts.NoCache, "no-cache", false, "read the dataset directly")
	flag.BoolVar(&opts.Reimport, "reimport", false, "reimport even when the cache is current")
	flag.StringVar(&opts.VocabPath, "vocab", config.VocabPath(), "vocabulary YAML file")
	logFile := flag.String("log-file", config.LogFile(), "log file")
	logLevel := flag.String("log-level", config.LogLevel(), "log level")
	flag.Parse()

	if opts.Dataset == "" && flag.NArg() > 0 {
		opts.Dataset = flag.Arg(0)
	}
	if opts.Dataset == "" {
		fmt.Fprintln(os.Stderr, "Error: no dataset, pass --dataset or set PROVMARK_DATASET")
		os.Exit(2)
	}

	// The alt screen owns the terminal, so logs go to a file
	logger, closer, err := config.NewFileLogger(*logFile, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ws, err := bootstrap.NewWorkspace(logger, opts.VocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(ws, editor.NewOpener(), func(ctx context.Context) (*commands.LoadDatasetResult, error) {
		return bootstrap.LoadDataset(ctx, ws, opts)
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
