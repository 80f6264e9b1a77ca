package findings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triup-dev/triup-admin/internal/platform/httpx"
)

type stubRepo struct {
	findings []Finding
	owners   []Owner
	plans    []Plan
	utils    []Utilization
	extends  []Extend
	childErr error
}

func (s *stubRepo) List(ctx context.Context) ([]Finding, error) {
	return s.findings, nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (Finding, error) {
	for _, f := range s.findings {
		if f.FormNewID == id {
			return f, nil
		}
	}
	return Finding{}, httpx.ErrNotFound
}

func (s *stubRepo) OwnersByFinding(ctx context.Context, id int64) ([]Owner, error) {
	return s.owners, s.childErr
}

func (s *stubRepo) PlansByFinding(ctx context.Context, id int64) ([]Plan, error) {
	return s.plans, s.childErr
}

func (s *stubRepo) UtilizationsByFinding(ctx context.Context, id int64) ([]Utilization, error) {
	return s.utils, s.childErr
}

func (s *stubRepo) ExtendsByFinding(ctx context.Context, id int64) ([]Extend, error) {
	return s.extends, s.childErr
}

func TestDetailAssemblesChildren(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dept := "Computer Engineering"
	repo := &stubRepo{
		findings: []Finding{{FormNewID: 7, ReportCode: "R-2025-007", Status: "approved", SLAAt: &at}},
		owners:   []Owner{{OwnID: 1, FormNewID: 7, Department: &dept}},
		plans:    []Plan{{PlanID: 2, FormNewID: 7}},
	}
	svc := NewService(repo)

	detail, err := svc.Detail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "R-2025-007", detail.Finding.ReportCode)
	require.Len(t, detail.Owners, 1)
	require.Len(t, detail.Plans, 1)
	assert.Empty(t, detail.Utilizations)
	assert.Empty(t, detail.Extends)
}

func TestDetailUnknownFinding(t *testing.T) {
	svc := NewService(&stubRepo{})
	_, err := svc.Detail(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestDetailChildFailurePropagates(t *testing.T) {
	repo := &stubRepo{
		findings: []Finding{{FormNewID: 7}},
		childErr: errors.New("query failed"),
	}
	svc := NewService(repo)
	_, err := svc.Detail(context.Background(), 7)
	require.Error(t, err)
}
