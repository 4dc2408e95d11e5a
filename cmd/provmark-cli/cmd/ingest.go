package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"provmark/internal/bootstrap"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import the dataset into the SQLite cache",
	Long: `Parse the dataset file and store its rows in the SQLite cache so later
commands open it without reparsing. The import is skipped when the cache
already matches the file content, unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("%d rows cached for %s\n", len(GetWorkspace().Rows()), GetWorkspace().Source())
			return nil
		}

		o := opts
		o.Reimport = true
		res, err := bootstrap.LoadDataset(cmd.Context(), GetWorkspace(), o)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		if res.Stats != nil {
			fmt.Printf("read %d, imported %d, skipped %d in %s\n",
				res.Stats.RowsRead, res.Stats.RowsImported, res.Stats.RowsSkipped, res.Stats.Duration)
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().Bool("force", false, "reimport even when the cache is current")
	rootCmd.AddCommand(ingestCmd)
}
