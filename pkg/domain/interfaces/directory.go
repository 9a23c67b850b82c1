package interfaces

import (
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
)

// Directory resolves actor identity and the reporting hierarchy. Permission
// decisions always use the role resolved here; a role string arriving with a
// request is never authoritative.
type Directory interface {
	// Lookup returns the current directory entry for a user
	Lookup(id types.UserID) (*model.User, error)

	// IsSubordinate reports whether user sits below manager in the
	// reporting hierarchy (directly or transitively).
	IsSubordinate(manager, user types.UserID) bool
}
