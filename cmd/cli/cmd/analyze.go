// Package cmd - analyze command
package cmd

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"defect-cost/adapters/dataset"
	"defect-cost/adapters/render"
	"defect-cost/adapters/report"
	"defect-cost/core/aggregate"
	"defect-cost/core/chart"
	"defect-cost/core/output"
	"defect-cost/internal/config"
	"defect-cost/internal/logging"
)

var (
	analyzeFormat  string
	analyzeReport  string
	analyzeSVG     string
	analyzeHTML    string
	analyzeTitle   string
	analyzeArchive bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset>",
	Short: "Aggregate labor cost by role and department",
	Long: `Load a nonconformance dataset (.xlsx or .csv), split each record's labor
cost across its responsible roles, and print the role and department
summaries. The dataset is archived for later period comparison.

Examples:
  defect-cost analyze report.xlsx
  defect-cost analyze report.xlsx --report out.xlsx --svg chart.svg --html chart.html
  defect-cost analyze report.csv --format json --archive=false`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "output format (cli, json)")
	analyzeCmd.Flags().StringVarP(&analyzeReport, "report", "r", "", "write an Excel report to this path")
	analyzeCmd.Flags().StringVar(&analyzeSVG, "svg", "", "write the donut chart as SVG to this path")
	analyzeCmd.Flags().StringVar(&analyzeHTML, "html", "", "write an interactive HTML chart to this path")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "Nonconformance distribution", "chart title")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", true, "archive the dataset for later comparison")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	format := outputFormat(cfg, analyzeFormat)

	loader := dataset.NewLoader(dataset.DefaultColumns(), cfg.Output.Currency)
	ds, err := loader.Load(args[0])
	if err != nil {
		return err
	}
	logging.Info("dataset loaded", zap.String("path", ds.Path), zap.Int("records", len(ds.Records)))

	result, err := aggregate.New(cfg.Output.Currency).Ingest(ds.Records)
	if err != nil {
		return err
	}

	if err := output.RenderAggregate(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	var chartSVG []byte
	if analyzeSVG != "" || analyzeReport != "" {
		chartSVG, err = singleChartSVG(cfg, result, analyzeTitle)
		if err != nil {
			return err
		}
	}
	if analyzeSVG != "" {
		if err := os.WriteFile(analyzeSVG, chartSVG, 0o644); err != nil {
			return err
		}
		logging.Info("chart written", zap.String("path", analyzeSVG))
	}
	if analyzeHTML != "" {
		if err := writeHTMLChart(cfg, result, analyzeTitle, analyzeHTML); err != nil {
			return err
		}
		logging.Info("html chart written", zap.String("path", analyzeHTML))
	}
	if analyzeReport != "" {
		if err := report.Write(analyzeReport, ds, result, nil, chartSVG); err != nil {
			return err
		}
		logging.Info("report written", zap.String("path", analyzeReport))
	}

	if analyzeArchive {
		if err := archiveDataset(cfg, ds.Path); err != nil {
			return err
		}
	}
	return nil
}

func outputFormat(cfg *config.Config, flag string) output.Format {
	if flag != "" {
		return output.Format(flag)
	}
	return output.Format(cfg.Output.DefaultFormat)
}

func singleChartSVG(cfg *config.Config, result *aggregate.Result, title string) ([]byte, error) {
	entries, err := result.ChartEntries()
	if err != nil {
		return nil, err
	}
	layout, err := chart.NewEngine(departmentColors(cfg)).Single(entries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, layout, title); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHTMLChart(cfg *config.Config, result *aggregate.Result, title, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.WriteHTML(f, result, departmentColors(cfg), title)
}
