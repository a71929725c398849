// Package report assembles the persisted spreadsheet: raw data, the
// role/department summary, the optional period comparison, and the chart
// image.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"defect-cost/adapters/dataset"
	"defect-cost/core/aggregate"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

const (
	sheetRaw        = "Raw Data"
	sheetSummary    = "Summary"
	sheetComparison = "Comparison"
	sheetChart      = "Chart"
)

// Write builds the report workbook at path. comparison and chartSVG are
// optional; nil skips their sheets.
func Write(path string, ds *dataset.Dataset, result *aggregate.Result, comparison []types.ComparisonRow, chartSVG []byte) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Internal("creating workbook style", err)
	}

	if err := writeRaw(f, ds, headerStyle); err != nil {
		return err
	}
	if err := writeSummary(f, result, headerStyle); err != nil {
		return err
	}
	if comparison != nil {
		if err := writeComparison(f, comparison, headerStyle); err != nil {
			return err
		}
	}
	if chartSVG != nil {
		if err := writeChart(f, chartSVG, headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Internal("saving report "+path, err)
	}
	return nil
}

func writeRaw(f *excelize.File, ds *dataset.Dataset, headerStyle int) error {
	def := f.GetSheetName(0)
	if err := f.SetSheetName(def, sheetRaw); err != nil {
		return errors.Internal("renaming sheet", err)
	}

	if err := setRow(f, sheetRaw, 1, toAny(ds.Headers)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetRaw, "A1", cellRef(len(ds.Headers), 1), headerStyle); err != nil {
		return errors.Internal("styling header", err)
	}
	for i, row := range ds.Rows {
		if err := setRow(f, sheetRaw, i+2, toAny(row)); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, result *aggregate.Result, headerStyle int) error {
	sorted, err := result.SortedRoleCosts()
	if err != nil {
		return err
	}
	summary, err := result.DepartmentSummary()
	if err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return errors.Internal("creating summary sheet", err)
	}

	row := 1
	if err := setRow(f, sheetSummary, row, []interface{}{"Role summary"}); err != nil {
		return err
	}
	row += 2
	if err := setRow(f, sheetSummary, row, []interface{}{"Department", "Role", "Count", "Labor cost"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), cellRef(4, row), headerStyle); err != nil {
		return errors.Internal("styling summary header", err)
	}
	for _, rc := range sorted {
		row++
		if err := setRow(f, sheetSummary, row, []interface{}{string(rc.Department), rc.Role, rc.Count, rc.Cost.Float64()}); err != nil {
			return err
		}
	}

	row += 2
	if err := setRow(f, sheetSummary, row, []interface{}{"Department summary"}); err != nil {
		return err
	}
	row += 2
	if err := setRow(f, sheetSummary, row, []interface{}{"Department", "Count", "Labor cost"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), cellRef(3, row), headerStyle); err != nil {
		return errors.Internal("styling summary header", err)
	}
	for _, d := range summary {
		row++
		if err := setRow(f, sheetSummary, row, []interface{}{string(d.Department), d.Count, d.Cost.Float64()}); err != nil {
			return err
		}
	}
	return nil
}

func writeComparison(f *excelize.File, rows []types.ComparisonRow, headerStyle int) error {
	if _, err := f.NewSheet(sheetComparison); err != nil {
		return errors.Internal("creating comparison sheet", err)
	}

	headers := []interface{}{
		"Department", "Role",
		"Current count", "Previous count", "Count delta",
		"Current cost", "Previous cost", "Cost delta",
	}
	if err := setRow(f, sheetComparison, 1, headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetComparison, "A1", cellRef(len(headers), 1), headerStyle); err != nil {
		return errors.Internal("styling comparison header", err)
	}
	for i, r := range rows {
		values := []interface{}{
			string(r.Department), r.Role,
			r.CurrentCount, r.PreviousCount, r.CountDelta,
			r.CurrentCost.Float64(), r.PreviousCost.Float64(), r.CostDelta.Float64(),
		}
		if err := setRow(f, sheetComparison, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeChart(f *excelize.File, chartSVG []byte, headerStyle int) error {
	if _, err := f.NewSheet(sheetChart); err != nil {
		return errors.Internal("creating chart sheet", err)
	}
	if err := setRow(f, sheetChart, 1, []interface{}{"Nonconformance distribution"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetChart, "A1", "A1", headerStyle); err != nil {
		return errors.Internal("styling chart header", err)
	}
	if err := f.AddPictureFromBytes(sheetChart, "A3", &excelize.Picture{
		Extension: ".svg",
		File:      chartSVG,
	}); err != nil {
		return errors.Internal("embedding chart image", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
		return errors.Internal(fmt.Sprintf("writing %s row %d", sheet, row), err)
	}
	return nil
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
