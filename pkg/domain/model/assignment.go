package model

import (
	"time"

	"github.com/acreflow/leadflow/pkg/domain/types"
)

// UserSnapshot is an immutable record of who a user was at the moment an
// assignment was made. It is deliberately not a live reference: renaming or
// re-roling a directory user must not rewrite history.
type UserSnapshot struct {
	UserID types.UserID `firestore:"userId" json:"userId"`
	Role   types.Role   `firestore:"role" json:"role"`
	Name   string       `firestore:"name" json:"name"`
}

// AssignmentEntry is one link in a lead's assignment chain. AssignedAt is set
// once at append time. CompletedAt is set only when the entry leaves the open
// state. Notes may be written only while the entry is the chain tail.
type AssignmentEntry struct {
	Assignee   UserSnapshot           `firestore:"assignee" json:"assignee"`
	AssignedBy types.UserID           `firestore:"assignedBy" json:"assignedBy"`
	AssignedAt time.Time              `firestore:"assignedAt" json:"assignedAt"`
	Status     types.AssignmentStatus `firestore:"status" json:"status"`
	CompletedAt *time.Time            `firestore:"completedAt,omitempty" json:"completedAt,omitempty"`
	Notes      string                 `firestore:"notes,omitempty" json:"notes,omitempty"`
}

// NewAssignmentEntry opens a chain entry for assignee, recorded as made by
// assignedBy at now.
func NewAssignmentEntry(assignee UserSnapshot, assignedBy types.UserID, now time.Time) AssignmentEntry {
	return AssignmentEntry{
		Assignee:   assignee,
		AssignedBy: assignedBy,
		AssignedAt: now,
		Status:     types.AssignmentAssigned,
	}
}

// Close sets the entry to a terminal status at now, with optional notes.
func (e *AssignmentEntry) Close(status types.AssignmentStatus, notes string, now time.Time) {
	e.Status = status
	completedAt := now
	e.CompletedAt = &completedAt
	if notes != "" {
		e.Notes = notes
	}
}
