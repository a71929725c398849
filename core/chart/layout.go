// Package chart computes the wedge geometry for the two-ring donut chart:
// an outer ring of role wedges and an inner ring of department wedges
// spanning the same total arc. The layout is pure geometry; rendering to
// SVG or HTML lives in adapters.
package chart

import (
	"fmt"
	"math"

	lo "github.com/samber/lo"

	"defect-cost/core/determinism"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

// Layout is a computed single-period chart: derived, ephemeral, recomputed
// on every request. Empty marks a period with no data; the renderer shows a
// "no data" marker instead of wedges.
type Layout struct {
	Outer []types.WedgeSpec
	Inner []types.WedgeSpec
	Empty bool
}

// Engine converts chart entries into wedge geometry
type Engine struct {
	colors map[types.Department]string
}

// DefaultColors returns the department color palette
func DefaultColors() map[types.Department]string {
	return map[types.Department]string{
		types.DepartmentProduction: "royalblue",
		types.DepartmentOffice:     "darkorange",
	}
}

// NewEngine creates a layout engine with the given department colors.
// Nil colors fall back to the default palette.
func NewEngine(colors map[types.Department]string) *Engine {
	if colors == nil {
		colors = DefaultColors()
	}
	return &Engine{colors: colors}
}

// Single computes the layout for one period. Wedge widths are proportional
// to size over the grand total; the outer ring follows the entries' own
// order, the inner ring follows department first appearance. Fails with
// EMPTY_CHART when the total size is zero.
func (e *Engine) Single(entries []types.ChartEntry) (*Layout, error) {
	total := lo.SumBy(entries, func(en types.ChartEntry) float64 { return en.Size })
	if total == 0 {
		return nil, errors.EmptyChart()
	}

	layout := &Layout{}

	start := 0.0
	for _, en := range entries {
		end := start + en.Size/total*2*math.Pi
		layout.Outer = append(layout.Outer, types.WedgeSpec{
			Label:       en.Label,
			StartAngle:  start,
			EndAngle:    end,
			Ring:        types.RingOuter,
			Color:       e.colors[en.Department],
			DisplayText: fmt.Sprintf("%s (%s)", en.Label, formatSize(en.Size)),
		})
		start = end
	}

	// Department groupings in first-appearance order, spanning the same
	// total arc as the outer ring.
	deptSizes := determinism.NewOrderedMap[types.Department, float64]()
	for _, en := range entries {
		size, _ := deptSizes.Get(en.Department)
		deptSizes.Set(en.Department, size+en.Size)
	}

	start = 0.0
	deptSizes.Range(func(d types.Department, size float64) bool {
		end := start + size/total*2*math.Pi
		layout.Inner = append(layout.Inner, types.WedgeSpec{
			Label:       string(d),
			StartAngle:  start,
			EndAngle:    end,
			Ring:        types.RingInner,
			Color:       e.colors[d],
			DisplayText: fmt.Sprintf("%s (%s)", d, formatSize(size)),
		})
		start = end
		return true
	})

	return layout, nil
}

// Dual computes two independent layouts for side-by-side rendering.
// A period with no data yields an Empty layout instead of failing.
func (e *Engine) Dual(current, previous []types.ChartEntry) (*Layout, *Layout) {
	return e.oneOfDual(current), e.oneOfDual(previous)
}

func (e *Engine) oneOfDual(entries []types.ChartEntry) *Layout {
	layout, err := e.Single(entries)
	if err != nil {
		return &Layout{Empty: true}
	}
	return layout
}

func formatSize(s float64) string {
	if s == math.Trunc(s) {
		return fmt.Sprintf("%d", int64(s))
	}
	return fmt.Sprintf("%.2f", s)
}
