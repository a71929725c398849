package chart

import (
	"math"
	"testing"

	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

const tolerance = 1e-9

func entries(pairs ...types.ChartEntry) []types.ChartEntry {
	return pairs
}

func TestSingleProportionalBoundaries(t *testing.T) {
	engine := NewEngine(nil)
	layout, err := engine.Single(entries(
		types.ChartEntry{Label: "A", Size: 30, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "B", Size: 70, Department: types.DepartmentOffice},
	))
	if err != nil {
		t.Fatalf("Single: %v", err)
	}

	if len(layout.Outer) != 2 {
		t.Fatalf("got %d outer wedges, want 2", len(layout.Outer))
	}
	split := 0.3 * 2 * math.Pi
	checks := []struct {
		idx        int
		start, end float64
	}{
		{0, 0, split},
		{1, split, 2 * math.Pi},
	}
	for _, c := range checks {
		w := layout.Outer[c.idx]
		if math.Abs(w.StartAngle-c.start) > tolerance || math.Abs(w.EndAngle-c.end) > tolerance {
			t.Errorf("wedge %d = [%v, %v], want [%v, %v]", c.idx, w.StartAngle, w.EndAngle, c.start, c.end)
		}
	}
}

func TestSingleWedgesSumToFullCircle(t *testing.T) {
	engine := NewEngine(nil)
	layout, err := engine.Single(entries(
		types.ChartEntry{Label: "A", Size: 1, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "B", Size: 2, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "C", Size: 4, Department: types.DepartmentOffice},
		types.ChartEntry{Label: "D", Size: 0.5, Department: types.DepartmentOffice},
	))
	if err != nil {
		t.Fatalf("Single: %v", err)
	}

	for name, ring := range map[string][]types.WedgeSpec{"outer": layout.Outer, "inner": layout.Inner} {
		var span float64
		prev := 0.0
		for i, w := range ring {
			if math.Abs(w.StartAngle-prev) > tolerance {
				t.Errorf("%s wedge %d starts at %v, previous ended at %v", name, i, w.StartAngle, prev)
			}
			span += w.EndAngle - w.StartAngle
			prev = w.EndAngle
		}
		if math.Abs(span-2*math.Pi) > tolerance {
			t.Errorf("%s ring spans %v, want 2π", name, span)
		}
	}
}

func TestSinglePreservesEntryOrder(t *testing.T) {
	engine := NewEngine(nil)
	layout, err := engine.Single(entries(
		types.ChartEntry{Label: "Сборка", Size: 5, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "Резка", Size: 1, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "Менеджер", Size: 3, Department: types.DepartmentOffice},
	))
	if err != nil {
		t.Fatalf("Single: %v", err)
	}

	want := []string{"Сборка", "Резка", "Менеджер"}
	for i, w := range layout.Outer {
		if w.Label != want[i] {
			t.Errorf("outer wedge %d = %s, want %s", i, w.Label, want[i])
		}
	}
	if len(layout.Inner) != 2 || layout.Inner[0].Label != "Production" || layout.Inner[1].Label != "Office" {
		t.Errorf("inner ring = %+v, want Production then Office", layout.Inner)
	}
}

func TestSingleInnerMatchesOuterGrouping(t *testing.T) {
	engine := NewEngine(nil)
	layout, err := engine.Single(entries(
		types.ChartEntry{Label: "A", Size: 2, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "B", Size: 3, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "C", Size: 5, Department: types.DepartmentOffice},
	))
	if err != nil {
		t.Fatalf("Single: %v", err)
	}

	// The production arc ends where role B ends and role C begins.
	boundary := layout.Outer[1].EndAngle
	if math.Abs(layout.Inner[0].EndAngle-boundary) > tolerance {
		t.Errorf("production arc ends at %v, outer boundary at %v", layout.Inner[0].EndAngle, boundary)
	}
	if math.Abs(layout.Inner[1].StartAngle-boundary) > tolerance {
		t.Errorf("office arc starts at %v, outer boundary at %v", layout.Inner[1].StartAngle, boundary)
	}
}

func TestSingleColorsAndDisplayText(t *testing.T) {
	engine := NewEngine(map[types.Department]string{
		types.DepartmentProduction: "#111111",
		types.DepartmentOffice:     "#222222",
	})
	layout, err := engine.Single(entries(
		types.ChartEntry{Label: "A", Size: 2, Department: types.DepartmentProduction},
		types.ChartEntry{Label: "B", Size: 1.5, Department: types.DepartmentOffice},
	))
	if err != nil {
		t.Fatalf("Single: %v", err)
	}

	if layout.Outer[0].Color != "#111111" || layout.Outer[1].Color != "#222222" {
		t.Errorf("wedge colors = %s, %s", layout.Outer[0].Color, layout.Outer[1].Color)
	}
	if layout.Outer[0].DisplayText != "A (2)" {
		t.Errorf("display text = %q, want %q", layout.Outer[0].DisplayText, "A (2)")
	}
	if layout.Outer[1].DisplayText != "B (1.50)" {
		t.Errorf("display text = %q, want %q", layout.Outer[1].DisplayText, "B (1.50)")
	}
}

func TestSingleEmptyChart(t *testing.T) {
	engine := NewEngine(nil)

	if _, err := engine.Single(nil); !errors.IsType(err, errors.TypeEmptyChart) {
		t.Errorf("nil entries: got %v", err)
	}
	_, err := engine.Single(entries(
		types.ChartEntry{Label: "A", Size: 0, Department: types.DepartmentProduction},
	))
	if !errors.IsType(err, errors.TypeEmptyChart) {
		t.Errorf("zero total: got %v", err)
	}
}

func TestDualEmptyPeriodPlaceholder(t *testing.T) {
	engine := NewEngine(nil)
	current, previous := engine.Dual(entries(
		types.ChartEntry{Label: "A", Size: 1, Department: types.DepartmentProduction},
	), nil)

	if current.Empty {
		t.Error("current layout marked empty")
	}
	if len(current.Outer) != 1 {
		t.Errorf("current outer wedges = %d, want 1", len(current.Outer))
	}
	if !previous.Empty {
		t.Error("previous layout not marked empty")
	}
	if len(previous.Outer) != 0 || len(previous.Inner) != 0 {
		t.Error("empty layout carries wedges")
	}
}
