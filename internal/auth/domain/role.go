package domain

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAcademic  Role = "academic"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleAcademic, RoleProfessor, RoleStudent}

// ParseRole maps a stored role value onto the enumeration. Unknown values
// are rejected at the boundary instead of falling back to a default role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleAcademic, RoleProfessor, RoleStudent:
		return r, nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

// Landing returns the dashboard path a freshly authenticated session of this
// role is redirected to.
func (r Role) Landing() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleAcademic:
		return "/academic"
	case RoleProfessor:
		return "/professor"
	case RoleStudent:
		return "/student"
	}

	// Unreachable for roles produced by ParseRole.
	return "/login"
}

func (r Role) String() string {
	return string(r)
}
