// Package compare produces the period-over-period diff between two
// aggregation results.
package compare

import (
	"defect-cost/core/aggregate"
	"defect-cost/core/determinism"
	"defect-cost/core/roles"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

// Engine diffs a current result against a previous one. The vocabulary is
// injected because a role may be absent from either period (or recorded
// under inconsistent departments) and still needs one home department for
// its row.
type Engine struct {
	vocab *roles.Vocabulary
}

// NewEngine creates a comparison engine with the given vocabulary
func NewEngine(vocab *roles.Vocabulary) *Engine {
	return &Engine{vocab: vocab}
}

// Compare returns one row per role name appearing in either result, ordered
// by cost delta descending. Counts and costs are looked up under the role's
// vocabulary-assigned department; occurrences recorded under the other
// department read as zero. Missing roles read as zero.
func (e *Engine) Compare(current, previous *aggregate.Result) ([]types.ComparisonRow, error) {
	if current == nil || current.Records() == 0 {
		return nil, errors.NotAnalyzed("comparison (current period)")
	}
	if previous == nil || previous.Records() == 0 {
		return nil, errors.NotAnalyzed("comparison (previous period)")
	}

	currency := current.Currency()

	// Union of role names across both periods and both departments,
	// in discovery order for stable-sort determinism.
	seen := make(map[string]struct{})
	var union []string
	collect := func(key types.RoleKey, _ types.Bucket) bool {
		if _, ok := seen[key.Role]; !ok {
			seen[key.Role] = struct{}{}
			union = append(union, key.Role)
		}
		return true
	}
	current.Range(collect)
	previous.Range(collect)

	rows := make([]types.ComparisonRow, 0, len(union))
	for _, role := range union {
		dept := e.vocab.DepartmentOf(role)
		key := types.RoleKey{Department: dept, Role: role}

		cur := lookup(current, key, currency)
		prev := lookup(previous, key, currency)

		rows = append(rows, types.ComparisonRow{
			Department:    dept,
			Role:          role,
			CurrentCount:  cur.Count,
			PreviousCount: prev.Count,
			CountDelta:    cur.Count - prev.Count,
			CurrentCost:   cur.Cost,
			PreviousCost:  prev.Cost,
			CostDelta:     cur.Cost.Sub(prev.Cost),
		})
	}

	determinism.SortSlice(rows, func(a, b types.ComparisonRow) bool {
		return a.CostDelta.Cmp(b.CostDelta) > 0
	})
	return rows, nil
}

func lookup(r *aggregate.Result, key types.RoleKey, currency string) types.Bucket {
	if b, ok := r.Bucket(key); ok {
		return b
	}
	return types.Bucket{Cost: determinism.Zero(currency)}
}
