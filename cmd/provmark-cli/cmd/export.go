package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"provmark/internal/application"
	"provmark/internal/application/commands"
)

var exportCmd = &cobra.Command{
	Use:   "export <rows|transforms|features>",
	Short: "Export high-quality rows or categories as CSV",
	Long: `Write the high-quality rows (idx,text,label) or the high-quality
transforms or features as CSV, to stdout or to --output.

Examples:
  provmark-cli export rows -d glue.csv --high 1,2 -o data_inspector.csv
  provmark-cli export transforms -d glue.csv --transform 0,6`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"rows", "transforms", "features"},
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		var out io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			out = f
		}

		var (
			res *commands.ExportResult
			err error
		)
		if args[0] == "rows" {
			res, err = commands.NewExportRowsCommand(GetWorkspace(), out).Execute(cmd.Context())
		} else {
			ns, nsErr := application.ValidateNamespace("namespace", strings.TrimSuffix(args[0], "s"))
			if nsErr != nil {
				return nsErr
			}
			res, err = commands.NewExportCategoriesCommand(GetWorkspace(), ns, out).Execute(cmd.Context())
		}
		if err != nil {
			return err
		}

		if output != "" {
			fmt.Fprintf(os.Stderr, "%s to %s\n", res.Message, output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
