// Package types defines the shared domain model for nonconformance
// cost analysis.
package types

import (
	"defect-cost/core/determinism"
)

// Department is one of the two fixed attribution buckets
type Department string

const (
	// DepartmentProduction covers shop-floor roles
	DepartmentProduction Department = "Production"

	// DepartmentOffice covers office roles
	DepartmentOffice Department = "Office"
)

// Departments returns the two departments in their fixed reporting order
func Departments() []Department {
	return []Department{DepartmentProduction, DepartmentOffice}
}

// Record is one nonconformance incident row.
// Either responsible field may be empty; an empty field contributes nothing
// to that department.
type Record struct {
	// LaborCost is the labor cost of the incident
	LaborCost determinism.Money

	// ProductionResponsible is the raw production responsible-party cell,
	// possibly several roles separated by "/"
	ProductionResponsible string

	// OfficeResponsible is the raw office responsible-party cell
	OfficeResponsible string
}

// RoleKey identifies a role bucket within a department
type RoleKey struct {
	Department Department
	Role       string
}

// Bucket holds accumulated statistics for one role
type Bucket struct {
	// Count is raw incidence: +1 per record naming the role, never fractional
	Count int

	// Cost is the accumulated labor cost share
	Cost determinism.Money
}

// DepartmentTotal holds accumulated statistics for one department
type DepartmentTotal struct {
	Department Department
	Count      int
	Cost       determinism.Money
}

// RoleCost is one row of the sorted role table
type RoleCost struct {
	Department Department
	Role       string
	Count      int
	Cost       determinism.Money
}

// ComparisonRow is one row of the period-over-period diff table.
// Created once per comparison, never mutated afterwards.
type ComparisonRow struct {
	Department Department
	Role       string

	CurrentCount  int
	PreviousCount int
	CountDelta    int

	CurrentCost  determinism.Money
	PreviousCost determinism.Money
	CostDelta    determinism.Money
}

// Ring identifies which ring of the donut a wedge belongs to
type Ring string

const (
	// RingOuter is the role ring
	RingOuter Ring = "outer"

	// RingInner is the department ring
	RingInner Ring = "inner"
)

// WedgeSpec is one angular segment of the donut chart. Angles are radians,
// measured counterclockwise from angle 0. Recomputed on every chart request.
type WedgeSpec struct {
	Label       string
	StartAngle  float64
	EndAngle    float64
	Ring        Ring
	Color       string
	DisplayText string
}

// ChartEntry is one (label, size, department) triple fed to the layout engine
type ChartEntry struct {
	Label      string
	Size       float64
	Department Department
}
