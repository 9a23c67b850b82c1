package types

import "fmt"

// Role represents a position in the reporting hierarchy
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleTeamLeader Role = "team-leader"
	RoleHeadAdmin  Role = "head-admin"
	RoleSuperAdmin Role = "super-admin"
)

// AllRoles returns all valid roles ordered from lowest to highest rank
func AllRoles() []Role {
	return []Role{
		RoleEmployee,
		RoleTeamLeader,
		RoleHeadAdmin,
		RoleSuperAdmin,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee,
		RoleTeamLeader,
		RoleHeadAdmin,
		RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Level returns the rank of the role, lowest role is 1. Invalid roles are 0.
func (r Role) Level() int {
	switch r {
	case RoleEmployee:
		return 1
	case RoleTeamLeader:
		return 2
	case RoleHeadAdmin:
		return 3
	case RoleSuperAdmin:
		return 4
	default:
		return 0
	}
}

// Above reports whether the role outranks other.
func (r Role) Above(other Role) bool {
	return r.Level() > other.Level()
}

// Superior returns the immediate superior role. The top role has none.
func (r Role) Superior() (Role, bool) {
	switch r {
	case RoleEmployee:
		return RoleTeamLeader, true
	case RoleTeamLeader:
		return RoleHeadAdmin, true
	case RoleHeadAdmin:
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
