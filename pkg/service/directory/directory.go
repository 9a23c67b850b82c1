// Package directory resolves users and the reporting hierarchy from a static
// roster. The roster is small and changes through redeploys, so it lives in
// memory behind the interfaces.Directory contract.
package directory

import (
	"github.com/acreflow/leadflow/pkg/domain/interfaces"
	"github.com/acreflow/leadflow/pkg/domain/model"
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// maxReportingDepth bounds the reports_to walk so a cyclic roster cannot
// spin forever. Validation rejects cycles up front; this is the runtime cap.
const maxReportingDepth = 16

// ErrUserNotFound indicates the user is not in the roster
var ErrUserNotFound = goerr.New("user not found in directory")

type Service struct {
	users map[types.UserID]*model.User
}

var _ interfaces.Directory = &Service{}

// New builds a directory from a validated roster.
func New(users []model.User) (*Service, error) {
	svc := &Service{
		users: make(map[types.UserID]*model.User, len(users)),
	}

	for i := range users {
		u := users[i]
		if err := u.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid directory user")
		}
		if _, exists := svc.users[u.ID]; exists {
			return nil, goerr.New("duplicate user ID in directory", goerr.V("id", u.ID))
		}
		svc.users[u.ID] = &u
	}

	// reports_to must point at a known user and must not form a cycle
	for _, u := range svc.users {
		if u.ReportsTo == "" {
			continue
		}
		if _, exists := svc.users[u.ReportsTo]; !exists {
			return nil, goerr.New("reports_to references unknown user",
				goerr.V("id", u.ID), goerr.V("reports_to", u.ReportsTo))
		}
		if svc.hasCycle(u.ID) {
			return nil, goerr.New("reporting chain contains a cycle", goerr.V("id", u.ID))
		}
	}

	return svc, nil
}

func (s *Service) hasCycle(start types.UserID) bool {
	cur := s.users[start]
	for depth := 0; cur != nil && cur.ReportsTo != ""; depth++ {
		if cur.ReportsTo == start || depth >= maxReportingDepth {
			return true
		}
		cur = s.users[cur.ReportsTo]
	}
	return false
}

// Lookup returns the current directory entry for a user
func (s *Service) Lookup(id types.UserID) (*model.User, error) {
	user, exists := s.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrUserNotFound, "unknown user", goerr.V("id", id))
	}
	copied := *user
	return &copied, nil
}

// IsSubordinate reports whether user sits below manager in the reporting
// hierarchy, walking reports_to upward from user.
func (s *Service) IsSubordinate(manager, user types.UserID) bool {
	if manager == "" || user == "" || manager == user {
		return false
	}

	cur, exists := s.users[user]
	for depth := 0; exists && depth < maxReportingDepth; depth++ {
		if cur.ReportsTo == manager {
			return true
		}
		if cur.ReportsTo == "" {
			return false
		}
		cur, exists = s.users[cur.ReportsTo]
	}
	return false
}
