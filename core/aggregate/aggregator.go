// Package aggregate turns raw nonconformance records into per-role and
// per-department cost statistics.
//
// A record attributing cost to N roles in a department gives each role an
// equal cost/N share, while incidence counts raw occurrences (+1 per role,
// never fractional). Department totals accumulate the per-role share once
// per role, so a record contributes its full labor cost to each department
// it names, and the department total always equals the sum of its role
// buckets.
package aggregate

import (
	"defect-cost/core/determinism"
	"defect-cost/core/roles"
	"defect-cost/core/types"
	"defect-cost/internal/errors"
)

// Aggregator consumes record sets and produces results. Stateless between
// Ingest calls; each call builds a fresh Result, so a failed ingest leaves
// no partial state behind.
type Aggregator struct {
	splitter roles.Splitter
	currency string
}

// New creates an aggregator. Currency labels the zero values used for
// departments with no records.
func New(currency string) *Aggregator {
	return &Aggregator{currency: currency}
}

// NewStrict creates an aggregator that rejects responsible-party fields
// containing empty role names.
func NewStrict(currency string) *Aggregator {
	return &Aggregator{splitter: roles.Splitter{Strict: true}, currency: currency}
}

// Result is one aggregation outcome. Buckets are exclusively owned and
// insertion-ordered by role discovery; not safe for concurrent mutation.
type Result struct {
	buckets  *determinism.OrderedMap[types.RoleKey, types.Bucket]
	totals   map[types.Department]types.DepartmentTotal
	currency string
	records  int
}

// Ingest aggregates a record set. Fails with EMPTY_DATASET on an empty
// sequence. Negative labor costs pass through unvalidated; the loader is
// responsible for flagging them.
func (a *Aggregator) Ingest(records []types.Record) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.EmptyDataset()
	}

	r := newResult(a.currency)
	for _, rec := range records {
		if err := r.add(a.splitter, types.DepartmentProduction, rec.ProductionResponsible, rec.LaborCost); err != nil {
			return nil, err
		}
		if err := r.add(a.splitter, types.DepartmentOffice, rec.OfficeResponsible, rec.LaborCost); err != nil {
			return nil, err
		}
		r.records++
	}
	return r, nil
}

func newResult(currency string) *Result {
	return &Result{
		buckets: determinism.NewOrderedMap[types.RoleKey, types.Bucket](),
		totals: map[types.Department]types.DepartmentTotal{
			types.DepartmentProduction: {Department: types.DepartmentProduction, Cost: determinism.Zero(currency)},
			types.DepartmentOffice:     {Department: types.DepartmentOffice, Cost: determinism.Zero(currency)},
		},
		currency: currency,
	}
}

func (r *Result) add(splitter roles.Splitter, dept types.Department, rawField string, laborCost determinism.Money) error {
	names, err := splitter.Split(rawField)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	share := laborCost.DivInt(len(names))
	total := r.totals[dept]
	for _, name := range names {
		key := types.RoleKey{Department: dept, Role: name}
		bucket, ok := r.buckets.Get(key)
		if !ok {
			bucket = types.Bucket{Cost: determinism.Zero(r.currency)}
		}
		bucket.Count++
		bucket.Cost = bucket.Cost.Add(share)
		r.buckets.Set(key, bucket)

		// The department accumulates the share once per role, N x (cost/N),
		// matching the role-bucket sum exactly.
		total.Count++
		total.Cost = total.Cost.Add(share)
	}
	r.totals[dept] = total
	return nil
}

// Records returns how many records were aggregated
func (r *Result) Records() int {
	if r == nil {
		return 0
	}
	return r.records
}

// Currency returns the result currency code
func (r *Result) Currency() string {
	return r.currency
}

// Bucket returns the statistics for one role key
func (r *Result) Bucket(key types.RoleKey) (types.Bucket, bool) {
	if r == nil || r.records == 0 {
		return types.Bucket{}, false
	}
	return r.buckets.Get(key)
}

// Range iterates the role buckets in discovery order
func (r *Result) Range(fn func(types.RoleKey, types.Bucket) bool) {
	if r == nil || r.records == 0 {
		return
	}
	r.buckets.Range(fn)
}

// SortedRoleCosts returns the role table ordered by cost descending.
// Ties keep discovery order (stable sort).
func (r *Result) SortedRoleCosts() ([]types.RoleCost, error) {
	if r == nil || r.records == 0 {
		return nil, errors.NotAnalyzed("role table")
	}

	var rows []types.RoleCost
	r.buckets.Range(func(key types.RoleKey, b types.Bucket) bool {
		rows = append(rows, types.RoleCost{
			Department: key.Department,
			Role:       key.Role,
			Count:      b.Count,
			Cost:       b.Cost,
		})
		return true
	})

	determinism.SortSlice(rows, func(a, b types.RoleCost) bool {
		return a.Cost.Cmp(b.Cost) > 0
	})
	return rows, nil
}

// DepartmentSummary returns totals for the two fixed departments, always
// Production then Office, even when one has no entries.
func (r *Result) DepartmentSummary() ([]types.DepartmentTotal, error) {
	if r == nil || r.records == 0 {
		return nil, errors.NotAnalyzed("department summary")
	}

	summary := make([]types.DepartmentTotal, 0, 2)
	for _, d := range types.Departments() {
		summary = append(summary, r.totals[d])
	}
	return summary, nil
}

// ChartEntries returns (label, size, department) triples for the chart
// layout: production roles first, then office roles, each in discovery
// order. Sizes are incidence counts.
func (r *Result) ChartEntries() ([]types.ChartEntry, error) {
	if r == nil || r.records == 0 {
		return nil, errors.NotAnalyzed("chart data")
	}

	var entries []types.ChartEntry
	for _, d := range types.Departments() {
		r.buckets.Range(func(key types.RoleKey, b types.Bucket) bool {
			if key.Department == d {
				entries = append(entries, types.ChartEntry{
					Label:      key.Role,
					Size:       float64(b.Count),
					Department: d,
				})
			}
			return true
		})
	}
	return entries, nil
}

// Merge combines partition results by per-key addition. The aggregation is
// commutative and associative over cost and count, so partitioned ingestion
// followed by Merge equals one sequential ingest.
func Merge(results ...*Result) (*Result, error) {
	var merged *Result
	for _, r := range results {
		if r == nil || r.records == 0 {
			continue
		}
		if merged == nil {
			merged = newResult(r.currency)
		}
		r.buckets.Range(func(key types.RoleKey, b types.Bucket) bool {
			existing, ok := merged.buckets.Get(key)
			if !ok {
				existing = types.Bucket{Cost: determinism.Zero(merged.currency)}
			}
			existing.Count += b.Count
			existing.Cost = existing.Cost.Add(b.Cost)
			merged.buckets.Set(key, existing)
			return true
		})
		for _, d := range types.Departments() {
			total := merged.totals[d]
			total.Count += r.totals[d].Count
			total.Cost = total.Cost.Add(r.totals[d].Cost)
			merged.totals[d] = total
		}
		merged.records += r.records
	}
	if merged == nil {
		return nil, errors.EmptyDataset()
	}
	return merged, nil
}
