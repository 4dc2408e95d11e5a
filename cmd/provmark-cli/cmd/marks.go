package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"provmark/internal/application/commands"
	"provmark/internal/domain"
)

var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "Show marks, common categories and the inspected count",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := GetWorkspace()

		snap, err := commands.NewSnapshotMarksCommand(w).Execute(ctx)
		if err != nil {
			return err
		}
		inspected, err := commands.NewCountInspectedCommand(w).Execute(ctx)
		if err != nil {
			return err
		}

		names := func(ns domain.Namespace, v []int) string {
			if len(v) == 0 {
				return "-"
			}
			parts := make([]string, len(v))
			for i, n := range v {
				parts[i] = w.Vocab.Name(ns, n)
			}
			return strings.Join(parts, ", ")
		}

		fmt.Printf("high rows:         %s\n", ints(snap.HighRows))
		fmt.Printf("low rows:          %s\n", ints(snap.LowRows))
		fmt.Printf("high transforms:   %s\n", names(domain.NamespaceTransform, snap.HighTransforms))
		fmt.Printf("high features:     %s\n", names(domain.NamespaceFeature, snap.HighFeatures))
		fmt.Printf("common transforms: %s\n", names(domain.NamespaceTransform, snap.CommonTransforms))
		fmt.Printf("common features:   %s\n", names(domain.NamespaceFeature, snap.CommonFeatures))
		fmt.Println(inspected.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marksCmd)
}

func ints(v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
