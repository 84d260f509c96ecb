package constants

import "fmt"

// Role is the closed set of account roles. Authorization decisions must
// match on it exhaustively; an unknown role string never grants access.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a free-text role string into the closed enumeration.
// An empty string defaults to RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser, "":
		return RoleUser, nil
	default:
		return "", fmt.Errorf("role must be either 'admin' or 'user', got %q", s)
	}
}

// AllRoles returns all valid roles.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleUser}
}
