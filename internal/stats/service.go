package stats

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/triup-dev/triup-admin/internal/roles"
)

// Repository is the record-store boundary the engine aggregates over.
// Grouped rows arrive pre-counted or pre-summed; temporal bucketing stays in
// the service so the null-field policy lives in domain code.
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	UsersByRole(ctx context.Context) ([]RoleGroup, error)
	CountFindings(ctx context.Context) (int64, error)
	FindingsByStatus(ctx context.Context) ([]StatusCount, error)
	OwnersByDepartment(ctx context.Context) ([]DepartmentCount, error)
	ProfilesByFaculty(ctx context.Context) ([]FacultyCount, error)
	PlanBudgetsByStartDate(ctx context.Context) ([]BudgetRow, error)
	FindingTimesWithin(ctx context.Context, from, to time.Time) ([]time.Time, error)
	FindingCountsByTime(ctx context.Context) ([]TimeCount, error)
}

// Service is the aggregation engine behind the /statistics endpoints.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the engine to a record store.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Users returns the role distribution with resolved role names and the
// ungrouped user total. Only codes present in the data appear; absent codes
// are omitted rather than zero-filled.
func (s *Service) Users(ctx context.Context) (UsersSummary, error) {
	var (
		total  int64
		groups []RoleGroup
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.repo.UsersByRole(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return UsersSummary{}, err
	}

	byRole := make([]RoleCount, 0, len(groups))
	for _, group := range groups {
		byRole = append(byRole, RoleCount{
			RolesID:  group.RolesID,
			Count:    group.Count,
			RoleName: roles.Name(group.RolesID),
		})
	}
	return UsersSummary{TotalUsers: total, UsersByRole: byRole}, nil
}

// Findings returns the workflow-status distribution and the finding total.
func (s *Service) Findings(ctx context.Context) (FindingsSummary, error) {
	var (
		total    int64
		byStatus []StatusCount
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountFindings(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		byStatus, err = s.repo.FindingsByStatus(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return FindingsSummary{}, err
	}
	return FindingsSummary{TotalFindings: total, FindingsByStatus: byStatus}, nil
}

// Departments returns research-owner counts per department.
func (s *Service) Departments(ctx context.Context) ([]DepartmentCount, error) {
	return s.repo.OwnersByDepartment(ctx)
}

// Faculties returns profile counts per faculty.
func (s *Service) Faculties(ctx context.Context) ([]FacultyCount, error) {
	return s.repo.ProfilesByFaculty(ctx)
}

// BudgetByYear sums plan budgets per calendar year of the plan start date.
// A null budget contributes 0 to its year; a row with no start date cannot
// be assigned to a year and is excluded. Years are emitted in ascending
// order.
func (s *Service) BudgetByYear(ctx context.Context) ([]YearBudget, error) {
	rows, err := s.repo.PlanBudgetsByStartDate(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[int]float64)
	for _, row := range rows {
		if row.StartDate == nil {
			continue
		}
		value := 0.0
		if row.Total != nil {
			value = *row.Total
		}
		totals[row.StartDate.Year()] += value
	}
	return sortedYearBudgets(totals), nil
}

// Monthly counts findings per month of the current calendar year. The output
// always holds exactly twelve buckets, months 1 through 12, regardless of
// data sparsity.
func (s *Service) Monthly(ctx context.Context) ([]MonthCount, error) {
	year := s.now().Year()
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	times, err := s.repo.FindingTimesWithin(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var buckets [12]int64
	for _, at := range times {
		buckets[int(at.Month())-1]++
	}
	out := make([]MonthCount, 12)
	for i := range out {
		out[i] = MonthCount{Month: i + 1, Count: buckets[i]}
	}
	return out, nil
}

// Yearly counts findings per calendar year over all time. Rows without a
// temporal value cannot be bucketed and are excluded. Years are emitted in
// ascending order for determinism.
func (s *Service) Yearly(ctx context.Context) ([]YearCount, error) {
	rows, err := s.repo.FindingCountsByTime(ctx)
	if err != nil {
		return nil, err
	}
	totals := make(map[int]int64)
	for _, row := range rows {
		if row.At == nil {
			continue
		}
		totals[row.At.Year()] += row.Count
	}
	return sortedYearCounts(totals), nil
}

func sortedYearBudgets(totals map[int]float64) []YearBudget {
	years := make([]int, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Ints(years)
	out := make([]YearBudget, 0, len(years))
	for _, year := range years {
		out = append(out, YearBudget{Year: year, Budget: totals[year]})
	}
	return out
}

func sortedYearCounts(totals map[int]int64) []YearCount {
	years := make([]int, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Ints(years)
	out := make([]YearCount, 0, len(years))
	for _, year := range years {
		out = append(out, YearCount{Year: year, Count: totals[year]})
	}
	return out
}
