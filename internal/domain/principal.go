package domain

// Role of an authenticated caller
type Role string

const (
	RoleUser     Role = "user"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a token claim to a role. Unknown or empty values become RoleUser.
func ParseRole(raw string) Role {
	switch r := Role(raw); r {
	case RoleBusiness, RoleAdmin:
		return r
	default:
		return RoleUser
	}
}

// Principal is the authenticated caller of an operation
type Principal struct {
	ID   int64
	Role Role
}

// IsAdmin returns true for platform administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
