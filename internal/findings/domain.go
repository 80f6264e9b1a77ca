// Package findings manages research-finding forms and their child records.
package findings

import "time"

// Finding is a submitted research-output record. SLAAt is the service-level
// timestamp used as the temporal bucketing key for statistics; it is nullable
// in stored data.
type Finding struct {
	FormNewID  int64      `json:"form_new_id"`
	ReportCode string     `json:"report_code"`
	TitleTH    string     `json:"report_title_th"`
	TitleEN    string     `json:"report_title_en"`
	Status     string     `json:"status"`
	SLAAt      *time.Time `json:"sla_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Owner is a research-owner child record.
type Owner struct {
	OwnID      int64   `json:"form_own_id"`
	FormNewID  int64   `json:"form_new_id"`
	Name       *string `json:"form_own_name,omitempty"`
	Department *string `json:"form_own_department,omitempty"`
}

// Plan is a research-plan child record carrying the budget fields used by
// the yearly budget aggregation.
type Plan struct {
	PlanID     int64      `json:"form_plan_id"`
	FormNewID  int64      `json:"form_plan_form_new_id"`
	UsageValue *float64   `json:"form_plan_usage_value"`
	StartDate  *time.Time `json:"form_plan_start_date"`
}

// Utilization is a utilization child record.
type Utilization struct {
	UtilID    int64   `json:"form_util_id"`
	FormNewID int64   `json:"form_new_id"`
	Detail    *string `json:"form_util_detail,omitempty"`
}

// Extend is an extension child record.
type Extend struct {
	ExtendID  int64   `json:"form_extend_id"`
	FormNewID int64   `json:"form_new_id"`
	Detail    *string `json:"form_extend_detail,omitempty"`
}

// Detail bundles a finding with all of its child records.
type Detail struct {
	Finding      Finding       `json:"finding"`
	Owners       []Owner       `json:"owner"`
	Plans        []Plan        `json:"plan"`
	Utilizations []Utilization `json:"utilization"`
	Extends      []Extend      `json:"extend"`
}

// ExportRow is the flat projection consumed by both export renderers.
type ExportRow struct {
	ReportCode string
	TitleTH    string
	TitleEN    string
	Status     string
}
