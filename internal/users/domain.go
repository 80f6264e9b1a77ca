// Package users manages accounts, profiles and the role-change history.
package users

import "time"

// Account is a login record. RolesID is the classification code; unknown
// codes may appear in stored data and are tolerated on read.
type Account struct {
	UserID    int64     `json:"user_id"`
	UUID      string    `json:"user_pk_uuid"`
	Username  string    `json:"username"`
	RolesID   int       `json:"roles_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile carries the descriptive fields attached to an account. It is
// joined to Account by username equality, not a foreign key.
type Profile struct {
	UserID     string  `json:"user_id"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	FacultyID  *string `json:"faculty_id,omitempty"`
	Department *string `json:"department,omitempty"`
}

// RoleLog is an immutable record of one classification-code change.
// Old and new codes are stored string-encoded.
type RoleLog struct {
	LogID     string    `json:"log_id"`
	Username  string    `json:"user_id"`
	OldRole   string    `json:"old_role"`
	NewRole   string    `json:"new_role"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// AccountView is an account decorated with its resolved role name and
// soft-joined profile for API responses.
type AccountView struct {
	Account
	RoleName string   `json:"role_name"`
	Profile  *Profile `json:"profile"`
}

// RoleLogView is a role log entry decorated with display names.
type RoleLogView struct {
	RoleLog
	OldRoleName string `json:"old_role_name"`
	NewRoleName string `json:"new_role_name"`
}
