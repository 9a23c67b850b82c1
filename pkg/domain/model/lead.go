package model

import (
	"encoding/json"
	"time"

	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Lead represents a prospective customer tracked through the sales workflow.
// The assignment chain and follow-up histories are append-only; only the
// trailing chain entry may change state. Revision is a monotonic counter used
// for optimistic concurrency control at the repository layer.
type Lead struct {
	ID       types.LeadID     `firestore:"id" json:"id"`
	Name     string           `firestore:"name" json:"name"`
	Email    string           `firestore:"email" json:"email"`
	Phone    string           `firestore:"phone,omitempty" json:"phone,omitempty"`
	Location string           `firestore:"location,omitempty" json:"location,omitempty"`
	Property string           `firestore:"property,omitempty" json:"property,omitempty"`
	Budget   string           `firestore:"budget,omitempty" json:"budget,omitempty"`
	Status   types.LeadStatus `firestore:"status" json:"status"`

	WorkProgress types.WorkProgress `firestore:"workProgress" json:"workProgress"`

	CreatedBy types.UserID `firestore:"createdBy" json:"createdBy"`
	CreatedAt time.Time    `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `firestore:"updatedAt" json:"updatedAt"`

	AssignmentChain []AssignmentEntry `firestore:"assignmentChain" json:"assignmentChain"`
	FollowUps       []FollowUp        `firestore:"followUps" json:"followUps"`

	Revision int64 `firestore:"revision" json:"-"`
}

// Validate checks the required contact fields
func (l *Lead) Validate() error {
	if l.Name == "" {
		return goerr.New("lead name is required")
	}
	if l.Email == "" {
		return goerr.New("lead email is required")
	}
	if l.Status != "" && !l.Status.IsValid() {
		return goerr.New("invalid lead status", goerr.V("status", l.Status))
	}
	return nil
}

// Tail returns the most recent assignment chain entry, the only one eligible
// for a status transition. Returns nil for an empty chain.
func (l *Lead) Tail() *AssignmentEntry {
	if len(l.AssignmentChain) == 0 {
		return nil
	}
	return &l.AssignmentChain[len(l.AssignmentChain)-1]
}

// AssignedTo returns the user ID of the current holder, derived from the
// chain tail. The legacy store kept this as a separately written field; it is
// computed here so the two can never diverge.
func (l *Lead) AssignedTo() types.UserID {
	tail := l.Tail()
	if tail == nil {
		return ""
	}
	return tail.Assignee.UserID
}

// AssignedBy returns the user ID of the actor who made the latest assignment.
func (l *Lead) AssignedBy() types.UserID {
	tail := l.Tail()
	if tail == nil {
		return ""
	}
	return tail.AssignedBy
}

// IsOpen reports whether the lead currently has a holder.
func (l *Lead) IsOpen() bool {
	tail := l.Tail()
	return tail != nil && tail.Status.IsOpen()
}

// HeldBy reports whether userID owns the open tail entry.
func (l *Lead) HeldBy(userID types.UserID) bool {
	tail := l.Tail()
	return tail != nil && tail.Status.IsOpen() && tail.Assignee.UserID == userID
}

// MarshalJSON adds the denormalized assignedTo/assignedBy fields that API
// clients expect, derived from the chain tail at encode time.
func (l *Lead) MarshalJSON() ([]byte, error) {
	type alias Lead
	return json.Marshal(struct {
		*alias
		AssignedTo types.UserID `json:"assignedTo"`
		AssignedBy types.UserID `json:"assignedBy"`
	}{
		alias:      (*alias)(l),
		AssignedTo: l.AssignedTo(),
		AssignedBy: l.AssignedBy(),
	})
}

// Clone returns a deep copy of the lead
func (l *Lead) Clone() *Lead {
	copied := *l
	copied.AssignmentChain = make([]AssignmentEntry, len(l.AssignmentChain))
	copy(copied.AssignmentChain, l.AssignmentChain)
	copied.FollowUps = make([]FollowUp, len(l.FollowUps))
	copy(copied.FollowUps, l.FollowUps)
	return &copied
}
