package auth

import (
	"parking-management/constants"
	"parking-management/types"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
	Role     string `json:"role" validate:"omitempty,max=20"`
}

// Validate checks the payload and resolves the requested role against the
// closed role enumeration. Returns an empty string when the request is valid.
func (r RegisterRequest) Validate() string {
	if msg := types.ValidateStruct(r); msg != "" {
		return msg
	}
	if _, err := constants.ParseRole(r.Role); err != nil {
		return err.Error()
	}
	return ""
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() string {
	return types.ValidateStruct(r)
}

// CurrentUser is the request-scoped identity resolved from a bearer token.
// Controllers pass it into services for every role and ownership check.
type CurrentUser struct {
	ID       uint
	Uuid     string
	Username string
	Role     constants.Role
}

// IsAdmin reports whether the current actor carries the admin role.
func (cu CurrentUser) IsAdmin() bool {
	return cu.Role == constants.RoleAdmin
}
