package dto

// VerifyUserRequest carries the admin's decision on a pending account.
// "reject" permanently removes the account.
type VerifyUserRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,is-user-role"`
}

type UserListQuery struct {
	Role       string `form:"role" json:"role" validate:"omitempty,is-user-role"`
	IsVerified *bool  `form:"isVerified" json:"isVerified"`
	Search     string `form:"search" json:"search"`
}

type UserListResponse struct {
	Users      []UserDTO   `json:"users"`
	Pagination *Pagination `json:"pagination"`
}
