// Package dataset loads tabular nonconformance records from Excel and CSV
// files. Column presence is validated here; the core assumes the three
// required columns exist.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"defect-cost/core/determinism"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
	"defect-cost/internal/logging"
)

// Columns names the three required columns of the input table
type Columns struct {
	Cost       string `json:"cost"`
	Production string `json:"production"`
	Office     string `json:"office"`
}

// DefaultColumns matches the workshop's nonconformance report headers
func DefaultColumns() Columns {
	return Columns{
		Cost:       "Трудозатраты (рублей)",
		Production: "Виновник (Производство )",
		Office:     "Виновник (Офис )",
	}
}

// Dataset is one loaded input table. Headers and Rows keep the raw cells
// for the report's raw-data sheet; Records is the parsed view the core
// consumes.
type Dataset struct {
	Path    string
	Headers []string
	Rows    [][]string
	Records []types.Record
}

// Loader reads datasets from disk
type Loader struct {
	columns  Columns
	currency string
}

// NewLoader creates a loader. Zero-value column names fall back to the
// defaults.
func NewLoader(columns Columns, currency string) *Loader {
	def := DefaultColumns()
	if columns.Cost == "" {
		columns.Cost = def.Cost
	}
	if columns.Production == "" {
		columns.Production = def.Production
	}
	if columns.Office == "" {
		columns.Office = def.Office
	}
	return &Loader{columns: columns, currency: currency}
}

// Load reads a dataset, dispatching on file extension (.xlsx, .xls, .csv)
func (l *Loader) Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return l.LoadExcel(path)
	case ".csv":
		return l.LoadCSV(path)
	default:
		return nil, errors.Input("unsupported dataset format: " + filepath.Ext(path))
	}
}

// LoadExcel reads the first sheet of an Excel workbook
func (l *Loader) LoadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Parsing("opening workbook "+path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Input("workbook has no sheets: " + path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Parsing("reading sheet "+sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.Input("sheet has no header row: " + path)
	}
	return l.build(path, rows[0], rows[1:])
}

// LoadCSV reads a CSV file with a header row
func (l *Loader) LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Parsing("opening "+path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	headers, err := r.Read()
	if err != nil {
		return nil, errors.Parsing("reading header of "+path, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing("reading "+path, err)
		}
		rows = append(rows, rec)
	}
	return l.build(path, headers, rows)
}

func (l *Loader) build(path string, headers []string, rows [][]string) (*Dataset, error) {
	idx := indexMap(headers)

	var missing []string
	for _, col := range []string{l.columns.Cost, l.columns.Production, l.columns.Office} {
		if _, ok := idx[normalize(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Input("dataset is missing required columns: " + strings.Join(missing, ", ")).
			WithContext("path", path)
	}

	costIdx := idx[normalize(l.columns.Cost)]
	prodIdx := idx[normalize(l.columns.Production)]
	officeIdx := idx[normalize(l.columns.Office)]
	logging.Debug("dataset columns resolved",
		zap.String("path", path), zap.Int("cost", costIdx), zap.Int("production", prodIdx), zap.Int("office", officeIdx))

	ds := &Dataset{Path: path, Headers: headers}
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		ds.Rows = append(ds.Rows, row)
		rawCost := cell(row, costIdx)
		if strings.TrimSpace(rawCost) == "" {
			logging.Warn("blank labor cost in dataset",
				zap.String("path", path), zap.Int("row", i+2))
		}
		cost, err := parseCost(rawCost)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "row %d: bad cost value %q", i+2, rawCost)
		}
		if cost.IsNegative() {
			// Passed through unvalidated; the aggregation accepts it as-is.
			logging.Warn("negative labor cost in dataset",
				zap.String("path", path), zap.Int("row", i+2), zap.String("cost", cost.String()))
		}
		ds.Records = append(ds.Records, types.Record{
			LaborCost:             determinism.NewMoneyFromDecimal(cost, l.currency),
			ProductionResponsible: cell(row, prodIdx),
			OfficeResponsible:     cell(row, officeIdx),
		})
	}
	return ds, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[normalize(h)] = i
	}
	return m
}

func normalize(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseCost(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
