package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "List dataset rows",
	Long: `List rows with their label, marks and text.

With --similar rows are ranked by how many transforms and features they
share with the high-quality rows. With --selection only high_Q or low_Q
rows are listed.

Examples:
  provmark-cli rows -d glue.csv --limit 20
  provmark-cli rows -d glue.csv --high 4 --similar
  provmark-cli rows -d glue.csv --transform 2 --selection high_Q`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		similar, _ := cmd.Flags().GetBool("similar")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		selection, _ := cmd.Flags().GetString("selection")

		w := GetWorkspace()
		var rows []domain.DataRow
		var scores map[int]int
		if selection == "" || selection == string(domain.SelectionDefault) {
			res, err := commands.NewSortRowsCommand(w, similar).Execute(ctx)
			if err != nil {
				return err
			}
			rows, scores = res.Rows, res.Scores
		} else {
			res, err := commands.NewSelectRowsCommand(w, domain.SelectionType(selection), nil).Execute(ctx)
			if err != nil {
				return err
			}
			rows = res.Rows
		}

		if offset >= len(rows) {
			fmt.Println("No rows.")
			return nil
		}
		rows = rows[offset:]
		if limit > 0 && limit < len(rows) {
			rows = rows[:limit]
		}

		high := w.Quality.HighQualityIndices()
		low := w.Quality.LowQualityIndices()
		for _, r := range rows {
			mark := " "
			switch {
			case high.Has(r.Idx):
				mark = "+"
			case low.Has(r.Idx):
				mark = "-"
			}
			if scores != nil {
				fmt.Printf("%5d %s %-4s %2d  %s\n", r.Idx, mark, r.Label, scores[r.Idx], r.Text)
			} else {
				fmt.Printf("%5d %s %-4s  %s\n", r.Idx, mark, r.Label, r.Text)
			}
		}
		return nil
	},
}

func init() {
	rowsCmd.Flags().Bool("similar", false, "rank rows by overlap with high-quality rows")
	rowsCmd.Flags().Int("limit", 50, "maximum rows to print (0 for all)")
	rowsCmd.Flags().Int("offset", 0, "rows to skip")
	rowsCmd.Flags().String("selection", "", "high_Q or low_Q to list only marked rows")
	rootCmd.AddCommand(rowsCmd)
}
