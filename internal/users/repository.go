package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triup-dev/triup-admin/internal/platform/db"
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

// ListAccounts returns every login record ordered by user id.
func (r *Repository) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id, user_pk_uuid, username, roles_id, created_at FROM psu_user_login ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		var account Account
		if err := rows.Scan(&account.UserID, &account.UUID, &account.Username, &account.RolesID, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// ListProfiles returns every profile record.
func (r *Repository) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id, first_name, last_name, faculty_id, department FROM psu_user_profile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var profiles []Profile
	for rows.Next() {
		var profile Profile
		if err := rows.Scan(&profile.UserID, &profile.FirstName, &profile.LastName, &profile.FacultyID, &profile.Department); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// GetAccount resolves an account by its uuid key.
func (r *Repository) GetAccount(ctx context.Context, uuid string) (Account, error) {
	var account Account
	err := r.pool.QueryRow(ctx, `SELECT user_id, user_pk_uuid, username, roles_id, created_at FROM psu_user_login WHERE user_pk_uuid = $1`, uuid).
		Scan(&account.UserID, &account.UUID, &account.Username, &account.RolesID, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, fmt.Errorf("user %s: %w", uuid, httpx.ErrNotFound)
	}
	return account, err
}

// GetProfile returns the profile soft-joined to a username, or nil when the
// account has none.
func (r *Repository) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	err := r.pool.QueryRow(ctx, `SELECT user_id, first_name, last_name, faculty_id, department FROM psu_user_profile WHERE user_id = $1`, username).
		Scan(&profile.UserID, &profile.FirstName, &profile.LastName, &profile.FacultyID, &profile.Department)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// RoleLogs returns the role-change history for a username, newest first.
func (r *Repository) RoleLogs(ctx context.Context, username string) ([]RoleLog, error) {
	rows, err := r.pool.Query(ctx, `SELECT log_id, user_id, old_role, new_role, changed_by, changed_at FROM psu_user_role_log WHERE user_id = $1 ORDER BY changed_at DESC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var logs []RoleLog
	for rows.Next() {
		var log RoleLog
		if err := rows.Scan(&log.LogID, &log.Username, &log.OldRole, &log.NewRole, &log.ChangedBy, &log.ChangedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// TxPort is the transactional slice of the store used by the role-change
// sequence. LockAccount must hold the account row until the transaction ends
// so concurrent changes for the same user serialise.
type TxPort interface {
	LockAccount(ctx context.Context, uuid string) (Account, error)
	AppendRoleLog(ctx context.Context, entry RoleLog) error
	UpdateRole(ctx context.Context, uuid string, code int) (Account, error)
}

// InTx runs fn inside one transaction; fn's writes are rolled back on error.
func (r *Repository) InTx(ctx context.Context, fn func(TxPort) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

type txRepo struct {
	tx pgx.Tx
}

func (t *txRepo) LockAccount(ctx context.Context, uuid string) (Account, error) {
	var account Account
	err := t.tx.QueryRow(ctx, `SELECT user_id, user_pk_uuid, username, roles_id, created_at FROM psu_user_login WHERE user_pk_uuid = $1 FOR UPDATE`, uuid).
		Scan(&account.UserID, &account.UUID, &account.Username, &account.RolesID, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, fmt.Errorf("user %s: %w", uuid, httpx.ErrNotFound)
	}
	return account, err
}

func (t *txRepo) AppendRoleLog(ctx context.Context, entry RoleLog) error {
	_, err := t.tx.Exec(ctx, `INSERT INTO psu_user_role_log (log_id, user_id, old_role, new_role, changed_by, changed_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.LogID, entry.Username, entry.OldRole, entry.NewRole, entry.ChangedBy, entry.ChangedAt)
	return err
}

func (t *txRepo) UpdateRole(ctx context.Context, uuid string, code int) (Account, error) {
	var account Account
	err := t.tx.QueryRow(ctx, `UPDATE psu_user_login SET roles_id = $2 WHERE user_pk_uuid = $1 RETURNING user_id, user_pk_uuid, username, roles_id, created_at`, uuid, code).
		Scan(&account.UserID, &account.UUID, &account.Username, &account.RolesID, &account.CreatedAt)
	return account, err
}
