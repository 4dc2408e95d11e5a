package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"provmark/internal/application"
	"provmark/internal/application/commands"
	"provmark/internal/bootstrap"
	"provmark/internal/config"
	"provmark/internal/domain"
)

var (
	opts     bootstrap.Options
	logLevel string

	highRows       []int
	lowRows        []int
	highTransforms []int
	highFeatures   []int

	ws *application.Workspace
)

var rootCmd = &cobra.Command{
	Use:   "provmark-cli",
	Short: "Review augmented text-classification datasets",
	Long: `provmark-cli inspects augmented datasets: rows carry the transforms
applied to them and the linguistic features they exhibit.

Marks are given per invocation with --high, --low, --transform and
--feature; every command then reports on the resulting review state.

Examples:
  provmark-cli ingest -d glue.csv
  provmark-cli rows -d glue.csv --high 3,17 --similar
  provmark-cli categories transform -d glue.csv --high 3
  provmark-cli export rows -d glue.csv --transform 6 -o curated.csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger, err := config.NewLogger(os.Stderr, logLevel)
		if err != nil {
			return err
		}
		ws, err = bootstrap.NewWorkspace(logger, opts.VocabPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		res, err := bootstrap.LoadDataset(ctx, ws, opts)
		if err != nil {
			return err
		}
		logger.Debug(res.Message)

		return applyMarks(ctx)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.LoadEnv()

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.Dataset, "dataset", "d", config.DatasetPath(), "dataset file (.csv or .xlsx)")
	pf.StringVar(&opts.Store, "store", config.StorePath(), "SQLite cache file (default derived from the dataset path)")
	pf.BoolVar(&opts.NoCache, "no-cache", false, "read the dataset directly, skipping the SQLite cache")
	pf.StringVar(&opts.VocabPath, "vocab", config.VocabPath(), "YAML file naming transforms, features and labels")
	pf.StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")

	pf.IntSliceVar(&highRows, "high", nil, "rows to mark high quality")
	pf.IntSliceVar(&lowRows, "low", nil, "rows to mark low quality")
	pf.IntSliceVar(&highTransforms, "transform", nil, "transforms to mark high quality (marks their rows too)")
	pf.IntSliceVar(&highFeatures, "feature", nil, "features to mark high quality (marks their rows too)")
}

// applyMarks replays the mark flags in a fixed order: rows, then category
// cascades, then low marks
func applyMarks(ctx context.Context) error {
	for _, idx := range highRows {
		if _, err := commands.NewToggleHighQualityCommand(ws, idx, true).Execute(ctx); err != nil {
			return fmt.Errorf("--high %d: %w", idx, err)
		}
	}
	for _, t := range highTransforms {
		cmd := commands.NewToggleCategoryCommand(ws, domain.NamespaceTransform, domain.QualityHigh, t, true)
		if _, err := cmd.Execute(ctx); err != nil {
			return fmt.Errorf("--transform %d: %w", t, err)
		}
	}
	for _, f := range highFeatures {
		cmd := commands.NewToggleCategoryCommand(ws, domain.NamespaceFeature, domain.QualityHigh, f, true)
		if _, err := cmd.Execute(ctx); err != nil {
			return fmt.Errorf("--feature %d: %w", f, err)
		}
	}
	for _, idx := range lowRows {
		if _, err := commands.NewToggleLowQualityCommand(ws, idx, true).Execute(ctx); err != nil {
			return fmt.Errorf("--low %d: %w", idx, err)
		}
	}
	return nil
}

// GetWorkspace returns the initialized workspace
func GetWorkspace() *application.Workspace {
	return ws
}
