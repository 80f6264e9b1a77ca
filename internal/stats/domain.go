// Package stats computes the statistical summary views served by the
// dashboard. Every view is recomputed from the store on each call; nothing
// is cached between requests.
package stats

import "time"

// RoleCount is one role bucket of the user distribution.
type RoleCount struct {
	RolesID  int    `json:"roles_id"`
	Count    int64  `json:"count"`
	RoleName string `json:"roles_name"`
}

// UsersSummary is the role distribution plus the ungrouped total.
type UsersSummary struct {
	TotalUsers  int64       `json:"total_users"`
	UsersByRole []RoleCount `json:"users_by_role"`
}

// StatusCount is one workflow-status bucket of the finding distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// FindingsSummary is the status distribution plus the ungrouped total.
type FindingsSummary struct {
	TotalFindings    int64         `json:"total_findings"`
	FindingsByStatus []StatusCount `json:"findings_by_status"`
}

// DepartmentCount is one department bucket of the research-owner counts.
type DepartmentCount struct {
	Department *string `json:"form_own_department"`
	Count      int64   `json:"count"`
}

// FacultyCount is one faculty bucket of the profile counts.
type FacultyCount struct {
	FacultyID *string `json:"faculty_id"`
	Count     int64   `json:"count"`
}

// YearBudget is the summed plan budget for one calendar year.
type YearBudget struct {
	Year   int     `json:"year"`
	Budget float64 `json:"budget"`
}

// MonthCount is one month bucket of the current-year finding counts.
type MonthCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// YearCount is the all-time finding count for one calendar year.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// RoleGroup is a grouped-count row for one classification code as returned
// by the store, before role names are attached.
type RoleGroup struct {
	RolesID int
	Count   int64
}

// BudgetRow is a grouped-sum row for one distinct plan start date. Both
// fields are nullable in stored data.
type BudgetRow struct {
	StartDate *time.Time
	Total     *float64
}

// TimeCount is a grouped-count row for one distinct temporal value.
type TimeCount struct {
	At    *time.Time
	Count int64
}
