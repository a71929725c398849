// Package output renders aggregation and comparison results for the
// terminal and for machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"defect-cost/core/aggregate"
	"defect-cost/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// roleRow is the JSON shape of one role table row
type roleRow struct {
	Department string `json:"department"`
	Role       string `json:"role"`
	Count      int    `json:"count"`
	Cost       string `json:"cost"`
}

// departmentRow is the JSON shape of one department summary row
type departmentRow struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
	Cost       string `json:"cost"`
}

// comparisonRow is the JSON shape of one diff row
type comparisonRow struct {
	Department    string `json:"department"`
	Role          string `json:"role"`
	CurrentCount  int    `json:"current_count"`
	PreviousCount int    `json:"previous_count"`
	CountDelta    int    `json:"count_delta"`
	CurrentCost   string `json:"current_cost"`
	PreviousCost  string `json:"previous_cost"`
	CostDelta     string `json:"cost_delta"`
}

// RenderAggregate writes the sorted role table and department summary
func RenderAggregate(w io.Writer, format Format, result *aggregate.Result) error {
	sorted, err := result.SortedRoleCosts()
	if err != nil {
		return err
	}
	summary, err := result.DepartmentSummary()
	if err != nil {
		return err
	}

	if format == FormatJSON {
		payload := struct {
			Records     int             `json:"records"`
			Roles       []roleRow       `json:"roles"`
			Departments []departmentRow `json:"departments"`
		}{Records: result.Records()}
		for _, r := range sorted {
			payload.Roles = append(payload.Roles, roleRow{
				Department: string(r.Department), Role: r.Role, Count: r.Count, Cost: r.Cost.StringRaw(),
			})
		}
		for _, d := range summary {
			payload.Departments = append(payload.Departments, departmentRow{
				Department: string(d.Department), Count: d.Count, Cost: d.Cost.StringRaw(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "DEPARTMENT\tROLE\tCOUNT\tLABOR COST\n")
	for _, r := range sorted {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.Department, displayRole(r.Role), r.Count, r.Cost)
	}
	fmt.Fprintf(tw, "\nDEPARTMENT\tCOUNT\tLABOR COST\n")
	for _, d := range summary {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", d.Department, d.Count, d.Cost)
	}
	return tw.Flush()
}

// RenderComparison writes the period-over-period diff table
func RenderComparison(w io.Writer, format Format, rows []types.ComparisonRow) error {
	if format == FormatJSON {
		payload := make([]comparisonRow, 0, len(rows))
		for _, r := range rows {
			payload = append(payload, comparisonRow{
				Department:    string(r.Department),
				Role:          r.Role,
				CurrentCount:  r.CurrentCount,
				PreviousCount: r.PreviousCount,
				CountDelta:    r.CountDelta,
				CurrentCost:   r.CurrentCost.StringRaw(),
				PreviousCost:  r.PreviousCost.StringRaw(),
				CostDelta:     r.CostDelta.StringRaw(),
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "DEPARTMENT\tROLE\tCOUNT\tPREV COUNT\tΔ COUNT\tCOST\tPREV COST\tΔ COST\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%+d\t%s\t%s\t%s\n",
			r.Department, displayRole(r.Role),
			r.CurrentCount, r.PreviousCount, r.CountDelta,
			r.CurrentCost, r.PreviousCost, r.CostDelta)
	}
	return tw.Flush()
}

// displayRole keeps empty-string role buckets visible in tables
func displayRole(role string) string {
	if role == "" {
		return "(unnamed)"
	}
	return role
}
