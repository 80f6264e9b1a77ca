package findings

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RepositoryPort defines data access used by the service.
type RepositoryPort interface {
	List(ctx context.Context) ([]Finding, error)
	Get(ctx context.Context, id int64) (Finding, error)
	OwnersByFinding(ctx context.Context, id int64) ([]Owner, error)
	PlansByFinding(ctx context.Context, id int64) ([]Plan, error)
	UtilizationsByFinding(ctx context.Context, id int64) ([]Utilization, error)
	ExtendsByFinding(ctx context.Context, id int64) ([]Extend, error)
}

// Service handles finding listing and detail assembly.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns every finding, most recent first.
func (s *Service) List(ctx context.Context) ([]Finding, error) {
	return s.repo.List(ctx)
}

// Detail assembles a finding with all of its child records. The children are
// independent of each other and fetched concurrently.
func (s *Service) Detail(ctx context.Context, id int64) (Detail, error) {
	finding, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{Finding: finding}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Owners, err = s.repo.OwnersByFinding(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Plans, err = s.repo.PlansByFinding(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Utilizations, err = s.repo.UtilizationsByFinding(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Extends, err = s.repo.ExtendsByFinding(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}
	return detail, nil
}
