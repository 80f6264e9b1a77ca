package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/triup-dev/triup-admin/internal/platform/httpx"
	"github.com/triup-dev/triup-admin/internal/roles"
)

// RepositoryPort defines data access used by the service.
type RepositoryPort interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	GetAccount(ctx context.Context, uuid string) (Account, error)
	GetProfile(ctx context.Context, username string) (*Profile, error)
	RoleLogs(ctx context.Context, username string) ([]RoleLog, error)
	InTx(ctx context.Context, fn func(TxPort) error) error
}

// Service handles account listing, enrichment and the role-change sequence.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// List returns every account with role name and soft-joined profile attached.
// Profiles match accounts by username equality; the join builds a map keyed
// by the profile's user_id and probes it per account.
func (s *Service) List(ctx context.Context) ([]AccountView, error) {
	var (
		accounts []Account
		profiles []Profile
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.repo.ListAccounts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.repo.ListProfiles(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byUsername := make(map[string]*Profile, len(profiles))
	for i := range profiles {
		byUsername[profiles[i].UserID] = &profiles[i]
	}
	views := make([]AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, AccountView{
			Account:  account,
			RoleName: roles.Name(account.RolesID),
			Profile:  byUsername[account.Username],
		})
	}
	return views, nil
}

// Get resolves a single account by uuid with its role name and profile.
func (s *Service) Get(ctx context.Context, uuid string) (AccountView, error) {
	account, err := s.repo.GetAccount(ctx, uuid)
	if err != nil {
		return AccountView{}, err
	}
	profile, err := s.repo.GetProfile(ctx, account.Username)
	if err != nil {
		return AccountView{}, err
	}
	return AccountView{
		Account:  account,
		RoleName: roles.Name(account.RolesID),
		Profile:  profile,
	}, nil
}

// RoleHistory returns the role-change log for the account behind uuid,
// newest first. A nonexistent account yields an empty history, not an error.
func (s *Service) RoleHistory(ctx context.Context, uuid string) ([]RoleLogView, error) {
	account, err := s.repo.GetAccount(ctx, uuid)
	if errors.Is(err, httpx.ErrNotFound) {
		return []RoleLogView{}, nil
	}
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.RoleLogs(ctx, account.Username)
	if err != nil {
		return nil, err
	}
	views := make([]RoleLogView, 0, len(logs))
	for _, log := range logs {
		views = append(views, RoleLogView{
			RoleLog:     log,
			OldRoleName: logRoleName(log.OldRole),
			NewRoleName: logRoleName(log.NewRole),
		})
	}
	return views, nil
}

// ChangeRole applies a classification-code change. The history entry is
// written before the account is mutated, inside one transaction: a failed
// audit write leaves the account untouched, and the row lock taken by
// LockAccount serialises concurrent changes for the same user.
func (s *Service) ChangeRole(ctx context.Context, accountUUID string, req UpdateRoleRequest) (Account, error) {
	if err := s.validate.Struct(req); err != nil {
		return Account{}, fmt.Errorf("invalid roles_id %d: %w", req.RolesID, httpx.ErrValidation)
	}
	actor := req.ChangedBy
	if actor == "" {
		actor = "unknown"
	}

	var updated Account
	err := s.repo.InTx(ctx, func(tx TxPort) error {
		account, err := tx.LockAccount(ctx, accountUUID)
		if err != nil {
			return err
		}
		entry := RoleLog{
			LogID:     uuid.NewString(),
			Username:  account.Username,
			OldRole:   strconv.Itoa(account.RolesID),
			NewRole:   strconv.Itoa(req.RolesID),
			ChangedBy: actor,
			ChangedAt: s.now(),
		}
		if err := tx.AppendRoleLog(ctx, entry); err != nil {
			return fmt.Errorf("append role log: %w", err)
		}
		updated, err = tx.UpdateRole(ctx, accountUUID, req.RolesID)
		return err
	})
	if err != nil {
		return Account{}, err
	}
	return updated, nil
}

func logRoleName(encoded string) string {
	code, err := strconv.Atoi(encoded)
	if err != nil {
		return "-"
	}
	return roles.LogName(code)
}
