package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"defect-cost/core/aggregate"
	"defect-cost/core/determinism"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

func sampleResult(t *testing.T) *aggregate.Result {
	t.Helper()
	cost := func(amount string) determinism.Money {
		m, err := determinism.NewMoney(amount, "RUB")
		if err != nil {
			t.Fatal(err)
		}
		return m
	}
	r, err := aggregate.New("RUB").Ingest([]types.Record{
		{LaborCost: cost("100"), ProductionResponsible: "Резка / Гибка", OfficeResponsible: "Менеджер"},
		{LaborCost: cost("60"), ProductionResponsible: ""},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRenderAggregateCLI(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderAggregate(&buf, FormatCLI, sampleResult(t)); err != nil {
		t.Fatalf("RenderAggregate: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"DEPARTMENT", "ROLE", "Резка", "Гибка", "Менеджер", "50.00 RUB", "100.00 RUB"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAggregateJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderAggregate(&buf, FormatJSON, sampleResult(t)); err != nil {
		t.Fatalf("RenderAggregate: %v", err)
	}

	var payload struct {
		Records int `json:"records"`
		Roles   []struct {
			Department string `json:"department"`
			Role       string `json:"role"`
			Count      int    `json:"count"`
			Cost       string `json:"cost"`
		} `json:"roles"`
		Departments []struct {
			Department string `json:"department"`
			Cost       string `json:"cost"`
		} `json:"departments"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if payload.Records != 2 {
		t.Errorf("records = %d, want 2", payload.Records)
	}
	if len(payload.Roles) != 3 {
		t.Errorf("roles = %d, want 3", len(payload.Roles))
	}
	if len(payload.Departments) != 2 || payload.Departments[0].Department != "Production" {
		t.Errorf("departments = %+v", payload.Departments)
	}
}

func TestRenderAggregateNotAnalyzed(t *testing.T) {
	var buf bytes.Buffer
	err := RenderAggregate(&buf, FormatCLI, nil)
	if !errors.IsType(err, errors.TypeNotAnalyzed) {
		t.Fatalf("expected NOT_ANALYZED, got %v", err)
	}
}

func TestRenderComparisonCLI(t *testing.T) {
	zero := determinism.Zero("RUB")
	fifty, err := determinism.NewMoney("50", "RUB")
	if err != nil {
		t.Fatal(err)
	}
	rows := []types.ComparisonRow{
		{
			Department:   types.DepartmentProduction,
			Role:         "Резка",
			CurrentCount: 1, PreviousCount: 0, CountDelta: 1,
			CurrentCost: fifty, PreviousCost: zero, CostDelta: fifty,
		},
		{
			Department: types.DepartmentOffice,
			Role:       "",
			CurrentCost: zero, PreviousCost: zero, CostDelta: zero,
		},
	}

	var buf bytes.Buffer
	if err := RenderComparison(&buf, FormatCLI, rows); err != nil {
		t.Fatalf("RenderComparison: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Δ COUNT", "Резка", "+1", "(unnamed)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderComparisonJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderComparison(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("RenderComparison: %v", err)
	}
	var payload []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(payload) != 0 {
		t.Errorf("payload = %v, want empty array", payload)
	}
}
