package domain

// Role is the authorization role carried in a caller's token.
type Role string

const (
	// RoleOperator runs a terminal: opens, counts and closes shifts.
	RoleOperator Role = "OPERATOR"
	// RoleManager additionally reviews cash audits.
	RoleManager Role = "MANAGER"
)

func (r Role) IsValid() bool {
	return r == RoleOperator || r == RoleManager
}
