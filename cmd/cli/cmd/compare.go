// Package cmd - compare command
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"defect-cost/adapters/dataset"
	"defect-cost/adapters/history"
	"defect-cost/adapters/render"
	"defect-cost/adapters/report"
	"defect-cost/core/aggregate"
	"defect-cost/core/chart"
	comparison "defect-cost/core/compare"
	"defect-cost/core/output"
	"defect-cost/internal/config"
	"defect-cost/internal/errors"
	"defect-cost/internal/logging"
)

var (
	compareFormat   string
	compareReport   string
	compareSVG      string
	compareHTML     string
	comparePrevious string
	compareArchive  bool
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <dataset>",
	Short: "Compare a dataset against the previous period",
	Long: `Load a nonconformance dataset and diff its role statistics against the
previously archived period (or an explicit file given with --previous).
When no previous dataset exists, the comparison is skipped and only the
current period is reported.

Examples:
  defect-cost compare report.xlsx
  defect-cost compare report.xlsx --previous last-month.xlsx
  defect-cost compare report.xlsx --report out.xlsx --svg dual.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "", "output format (cli, json)")
	compareCmd.Flags().StringVarP(&compareReport, "report", "r", "", "write an Excel report to this path")
	compareCmd.Flags().StringVar(&compareSVG, "svg", "", "write the side-by-side donut charts as SVG to this path")
	compareCmd.Flags().StringVar(&compareHTML, "html", "", "write interactive HTML charts to this path")
	compareCmd.Flags().StringVarP(&comparePrevious, "previous", "p", "", "previous dataset file (default: newest archive)")
	compareCmd.Flags().BoolVar(&compareArchive, "archive", true, "archive the current dataset afterwards")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	format := outputFormat(cfg, compareFormat)

	vocabulary, err := effectiveVocabulary(cfg)
	if err != nil {
		return err
	}

	loader := dataset.NewLoader(dataset.DefaultColumns(), cfg.Output.Currency)
	current, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	previousPath := comparePrevious
	if previousPath == "" {
		arch, err := history.New(cfg.History.Directory)
		if err != nil {
			return err
		}
		entry, err := arch.Latest("")
		if errors.IsType(err, errors.TypeNotFound) {
			logging.Info("no previous dataset archived; comparison skipped")
			// Still archive the current dataset so the next compare has a
			// previous period to work with.
			if compareArchive {
				if err := archiveDataset(cfg, current.Path); err != nil {
					return err
				}
			}
			return analyzeOnly(cmd, cfg, format, current)
		}
		if err != nil {
			return err
		}
		previousPath = entry.Path
	}
	logging.Info("comparing against previous period", zap.String("previous", previousPath))

	previous, err := loader.Load(previousPath)
	if err != nil {
		return err
	}

	agg := aggregate.New(cfg.Output.Currency)
	currentResult, err := agg.Ingest(current.Records)
	if err != nil {
		return err
	}
	previousResult, err := agg.Ingest(previous.Records)
	if err != nil {
		return err
	}

	rows, err := comparison.NewEngine(vocabulary).Compare(currentResult, previousResult)
	if err != nil {
		return err
	}
	if err := output.RenderComparison(cmd.OutOrStdout(), format, rows); err != nil {
		return err
	}

	var chartSVG []byte
	if compareSVG != "" || compareReport != "" {
		chartSVG, err = dualChartSVG(cfg, currentResult, previousResult)
		if err != nil {
			return err
		}
	}
	if compareSVG != "" {
		if err := os.WriteFile(compareSVG, chartSVG, 0o644); err != nil {
			return err
		}
		logging.Info("chart written", zap.String("path", compareSVG))
	}
	if compareHTML != "" {
		f, err := os.Create(compareHTML)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WriteComparisonHTML(f, currentResult, previousResult,
			departmentColors(cfg), "Current period", "Previous period"); err != nil {
			return err
		}
		logging.Info("html chart written", zap.String("path", compareHTML))
	}
	if compareReport != "" {
		if err := report.Write(compareReport, current, currentResult, rows, chartSVG); err != nil {
			return err
		}
		logging.Info("report written", zap.String("path", compareReport))
	}

	if compareArchive {
		if err := archiveDataset(cfg, current.Path); err != nil {
			return err
		}
	}
	return nil
}

// archiveDataset copies the dataset into the history archive and prunes old
// copies per the configured retention.
func archiveDataset(cfg *config.Config, path string) error {
	arch, err := history.New(cfg.History.Directory)
	if err != nil {
		return err
	}
	if _, err := arch.Save(path); err != nil {
		return err
	}
	return arch.Prune(cfg.History.Keep)
}

// analyzeOnly reports just the current period when no previous exists
func analyzeOnly(cmd *cobra.Command, cfg *config.Config, format output.Format, ds *dataset.Dataset) error {
	result, err := aggregate.New(cfg.Output.Currency).Ingest(ds.Records)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "No previous dataset; showing current period only.")
	return output.RenderAggregate(cmd.OutOrStdout(), format, result)
}

func dualChartSVG(cfg *config.Config, currentResult, previousResult *aggregate.Result) ([]byte, error) {
	currentEntries, err := currentResult.ChartEntries()
	if err != nil {
		return nil, err
	}
	previousEntries, err := previousResult.ChartEntries()
	if err != nil {
		return nil, err
	}

	engine := chart.NewEngine(departmentColors(cfg))
	currentLayout, previousLayout := engine.Dual(currentEntries, previousEntries)

	var buf bytes.Buffer
	if err := render.WriteDualSVG(&buf, currentLayout, previousLayout, "Current period", "Previous period"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
