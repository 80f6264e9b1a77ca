package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository backs the engine with PostgreSQL grouped queries.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CountUsers returns the total number of login records.
func (r *PGRepository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM psu_user_login`).Scan(&total)
	return total, err
}

// UsersByRole returns login counts grouped by classification code.
func (r *PGRepository) UsersByRole(ctx context.Context) ([]RoleGroup, error) {
	rows, err := r.pool.Query(ctx, `SELECT roles_id, COUNT(*) FROM psu_user_login GROUP BY roles_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RoleGroup
	for rows.Next() {
		var group RoleGroup
		if err := rows.Scan(&group.RolesID, &group.Count); err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

// CountFindings returns the total number of finding records.
func (r *PGRepository) CountFindings(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM form_new_findings`).Scan(&total)
	return total, err
}

// FindingsByStatus returns finding counts grouped by workflow status.
func (r *PGRepository) FindingsByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM form_new_findings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StatusCount
	for rows.Next() {
		var count StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, err
		}
		out = append(out, count)
	}
	return out, rows.Err()
}

// OwnersByDepartment returns research-owner counts grouped by department.
func (r *PGRepository) OwnersByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_own_department, COUNT(*) FROM form_research_owner GROUP BY form_own_department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DepartmentCount
	for rows.Next() {
		var count DepartmentCount
		if err := rows.Scan(&count.Department, &count.Count); err != nil {
			return nil, err
		}
		out = append(out, count)
	}
	return out, rows.Err()
}

// ProfilesByFaculty returns profile counts grouped by faculty.
func (r *PGRepository) ProfilesByFaculty(ctx context.Context) ([]FacultyCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT faculty_id, COUNT(*) FROM psu_user_profile GROUP BY faculty_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FacultyCount
	for rows.Next() {
		var count FacultyCount
		if err := rows.Scan(&count.FacultyID, &count.Count); err != nil {
			return nil, err
		}
		out = append(out, count)
	}
	return out, rows.Err()
}

// PlanBudgetsByStartDate returns summed plan budgets grouped by start date.
func (r *PGRepository) PlanBudgetsByStartDate(ctx context.Context) ([]BudgetRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT form_plan_start_date, SUM(form_plan_usage_value) FROM form_research_plan GROUP BY form_plan_start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BudgetRow
	for rows.Next() {
		var row BudgetRow
		if err := rows.Scan(&row.StartDate, &row.Total); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindingTimesWithin returns the temporal values of findings inside the
// inclusive [from, to] window. Null temporal values never match the range
// predicate, so they are excluded here.
func (r *PGRepository) FindingTimesWithin(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `SELECT sla_at FROM form_new_findings WHERE sla_at >= $1 AND sla_at <= $2`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// FindingCountsByTime returns finding counts grouped by distinct temporal
// value, including the null group.
func (r *PGRepository) FindingCountsByTime(ctx context.Context) ([]TimeCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT sla_at, COUNT(*) FROM form_new_findings GROUP BY sla_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TimeCount
	for rows.Next() {
		var count TimeCount
		if err := rows.Scan(&count.At, &count.Count); err != nil {
			return nil, err
		}
		out = append(out, count)
	}
	return out, rows.Err()
}
