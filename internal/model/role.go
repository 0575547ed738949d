package model

// Role is the closed set of account roles.  Authorization decisions are
// made against these typed values rather than free-form strings so a
// misspelled role can never slip through a route guard.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleNormalUser Role = "normal_user"
	RoleStoreOwner Role = "store_owner"
)

// ParseRole maps a raw string (JWT claim, request body) onto a Role.
// Anything outside the three known values is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleNormalUser, RoleStoreOwner:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }
