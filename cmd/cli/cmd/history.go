// Package cmd - history command
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"defect-cost/adapters/history"
	"defect-cost/internal/config"
)

// historyCmd lists archived datasets
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived datasets",
	Long:  `List the archived datasets available for period comparison, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		arch, err := history.New(cfg.History.Directory)
		if err != nil {
			return err
		}
		entries, err := arch.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No archived datasets in %s\n", arch.Dir())
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "ARCHIVED\tNAME\n")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.ArchivedAt.Format("2006-01-02 15:04:05"), e.Name)
		}
		return tw.Flush()
	},
}
