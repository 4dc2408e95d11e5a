package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"provmark/internal/application"
	"provmark/internal/application/commands"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories <transform|feature>",
	Short: "List the categories shared by high-quality rows",
	Long: `List the transforms or features exhibited by the high-quality rows,
with their marks, row counts and a preview of their rows.

Examples:
  provmark-cli categories transform -d glue.csv --high 3,8
  provmark-cli categories feature -d glue.csv --high 3 --preview 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := application.ValidateNamespace("namespace", strings.TrimSuffix(args[0], "s"))
		if err != nil {
			return err
		}
		preview, _ := cmd.Flags().GetInt("preview")

		c := commands.NewCategoryOverviewCommand(GetWorkspace(), ns)
		c.PreviewSize = preview
		res, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(res.Categories) == 0 {
			fmt.Println("No common categories. Mark rows high quality with --high.")
			return nil
		}
		for _, e := range res.Categories {
			mark := ""
			if e.HighQuality {
				mark += " [high]"
			}
			if e.LowQuality {
				mark += " [low]"
			}
			fmt.Printf("%3d %s%s (%d rows)\n", e.Index, e.Name, mark, e.RowCount)
			for _, p := range e.Preview {
				fmt.Printf("      %5d %-4s %s\n", p.Idx, p.Label, p.Text)
			}
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().Int("preview", commands.DefaultPreviewSize, "example rows per category")
	rootCmd.AddCommand(categoriesCmd)
}
