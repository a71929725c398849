// Package cmd provides the CLI commands for defect-cost.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"defect-cost/adapters/vocab"
	"defect-cost/core/chart"
	"defect-cost/core/roles"
	"defect-cost/core/types"
	"defect-cost/internal/config"
	"defect-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "defect-cost",
	Short: "Analyze nonconformance labor costs by role and department",
	Long: `defect-cost ingests tabular nonconformance records, splits labor cost
across the responsible roles, and aggregates cost and incidence by role
and department. Results render as a two-ring donut chart and as an Excel
report, with optional comparison against the previously archived period.

Examples:
  defect-cost analyze report.xlsx
  defect-cost analyze report.xlsx --report out.xlsx --svg chart.svg
  defect-cost compare report.xlsx
  defect-cost history`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.defect-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// effectiveVocabulary returns the configured vocabulary, or the built-in one
func effectiveVocabulary(cfg *config.Config) (*roles.Vocabulary, error) {
	if cfg.Vocabulary == "" {
		return roles.Default(), nil
	}
	return vocab.Load(cfg.Vocabulary)
}

// departmentColors maps the configured colors into the chart palette
func departmentColors(cfg *config.Config) map[types.Department]string {
	colors := chart.DefaultColors()
	if cfg.Chart.ProductionColor != "" {
		colors[types.DepartmentProduction] = cfg.Chart.ProductionColor
	}
	if cfg.Chart.OfficeColor != "" {
		colors[types.DepartmentOffice] = cfg.Chart.OfficeColor
	}
	return colors
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("defect-cost version 0.1.0")
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Save(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", args[0])
		return nil
	},
}
