// Package cmd - vocab command
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"defect-cost/core/types"
	"defect-cost/internal/config"
)

// vocabCmd prints the effective role vocabulary
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show the effective role vocabulary",
	Long: `Show the role→department membership lists used by the comparison
engine, either the built-in vocabulary or the configured HCL file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		vocabulary, err := effectiveVocabulary(cfg)
		if err != nil {
			return err
		}

		source := "built-in"
		if cfg.Vocabulary != "" {
			source = cfg.Vocabulary
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Vocabulary source: %s\n\n", source)
		for _, d := range types.Departments() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", d, strings.Join(vocabulary.Roles(d), ", "))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nRoles missing from both lists fall back to Office.")
		return nil
	},
}
