package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise quality scores of a selection",
	Long: `Print mean, median and standard deviation of the alignment, fluency
and grammaticality scores over a selection: explicit rows (default),
every high_Q row or every low_Q row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selection, _ := cmd.Flags().GetString("selection")
		rows, _ := cmd.Flags().GetIntSlice("rows")

		st, err := commands.NewQualityStatsCommand(GetWorkspace(), domain.SelectionType(selection), rows).
			Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d rows\n", st.Selection.Label(), st.Rows)
		for _, line := range []struct {
			name string
			s    domain.ScoreSummary
		}{
			{"alignment", st.Alignment},
			{"fluency", st.Fluency},
			{"grammaticality", st.Grammaticality},
		} {
			fmt.Printf("%-15s mean %.2f  median %.2f  sd %.2f\n", line.name, line.s.Mean, line.s.Median, line.s.StdDev)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("selection", string(domain.SelectionDefault), "default, high_Q or low_Q")
	statsCmd.Flags().IntSlice("rows", nil, "rows for the default selection")
	rootCmd.AddCommand(statsCmd)
}
