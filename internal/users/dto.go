package users

// UpdateRoleRequest is the body of PUT /admin/users/{uuid}/role.
type UpdateRoleRequest struct {
	RolesID   int    `json:"roles_id" validate:"required,oneof=1000 2000 3000 4000 5000 6000"`
	ChangedBy string `json:"changed_by" validate:"omitempty,max=100"`
}
