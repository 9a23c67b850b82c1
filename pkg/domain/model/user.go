package model

import (
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// User is a directory entry: an employee, team leader, head admin or the
// super admin. ReportsTo links the reporting hierarchy upward.
type User struct {
	ID        types.UserID `toml:"id"`
	Name      string       `toml:"name"`
	Email     string       `toml:"email"`
	Role      types.Role   `toml:"role"`
	ReportsTo types.UserID `toml:"reports_to"`
}

// Validate checks if the User entry is valid
func (u *User) Validate() error {
	if err := u.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if u.Name == "" {
		return goerr.New("user name is required", goerr.V("id", u.ID))
	}
	if !u.Role.IsValid() {
		return goerr.New("invalid user role", goerr.V("id", u.ID), goerr.V("role", u.Role))
	}
	return nil
}

// Snapshot captures the user for embedding into an assignment chain entry.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		UserID: u.ID,
		Role:   u.Role,
		Name:   u.Name,
	}
}
