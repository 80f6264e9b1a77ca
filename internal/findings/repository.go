package findings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triup-dev/triup-admin/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const findingColumns = `form_new_id, report_code, report_title_th, report_title_en, status, sla_at, created_at`

func scanFinding(row pgx.Row) (Finding, error) {
	var f Finding
	err := row.Scan(&f.FormNewID, &f.ReportCode, &f.TitleTH, &f.TitleEN, &f.Status, &f.SLAAt, &f.CreatedAt)
	return f, err
}

// List returns every finding, most recent first.
func (r *Repository) List(ctx context.Context) ([]Finding, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+findingColumns+` FROM form_new_findings ORDER BY form_new_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Finding
	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Get resolves one finding by id.
func (r *Repository) Get(ctx context.Context, id int64) (Finding, error) {
	f, err := scanFinding(r.pool.QueryRow(ctx, `SELECT `+findingColumns+` FROM form_new_findings WHERE form_new_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Finding{}, fmt.Errorf("finding %d: %w", id, httpx.ErrNotFound)
	}
	return f, err
}

// OwnersByFinding returns the owner child records for a finding.
func (r *Repository) OwnersByFinding(ctx context.Context, id int64) ([]Owner, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_own_id, form_new_id, form_own_name, form_own_department FROM form_research_owner WHERE form_new_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Owner
	for rows.Next() {
		var o Owner
		if err := rows.Scan(&o.OwnID, &o.FormNewID, &o.Name, &o.Department); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// PlansByFinding returns the plan child records for a finding.
func (r *Repository) PlansByFinding(ctx context.Context, id int64) ([]Plan, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_plan_id, form_plan_form_new_id, form_plan_usage_value, form_plan_start_date FROM form_research_plan WHERE form_plan_form_new_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.PlanID, &p.FormNewID, &p.UsageValue, &p.StartDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UtilizationsByFinding returns the utilization child records for a finding.
func (r *Repository) UtilizationsByFinding(ctx context.Context, id int64) ([]Utilization, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_util_id, form_new_id, form_util_detail FROM form_utilization WHERE form_new_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Utilization
	for rows.Next() {
		var u Utilization
		if err := rows.Scan(&u.UtilID, &u.FormNewID, &u.Detail); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ExtendsByFinding returns the extension child records for a finding.
func (r *Repository) ExtendsByFinding(ctx context.Context, id int64) ([]Extend, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_extend_id, form_new_id, form_extend_detail FROM form_extend WHERE form_new_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Extend
	for rows.Next() {
		var e Extend
		if err := rows.Scan(&e.ExtendID, &e.FormNewID, &e.Detail); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExportRows returns the four display fields for every finding in the same
// order the listing uses, so both export formats share one row order.
func (r *Repository) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT report_code, report_title_th, report_title_en, status FROM form_new_findings ORDER BY form_new_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.ReportCode, &row.TitleTH, &row.TitleEN, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
