package types

import "fmt"

// AssignmentStatus represents the state of a single assignment chain entry.
// assigned is the only initial state; forwarded, completed and rejected are
// terminal for the entry that carries them.
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentForwarded AssignmentStatus = "forwarded"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentRejected  AssignmentStatus = "rejected"
)

// AllAssignmentStatuses returns all valid assignment statuses
func AllAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentAssigned,
		AssignmentForwarded,
		AssignmentCompleted,
		AssignmentRejected,
	}
}

// IsValid checks if the assignment status is valid
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentAssigned,
		AssignmentForwarded,
		AssignmentCompleted,
		AssignmentRejected:
		return true
	default:
		return false
	}
}

// IsOpen reports whether a tail entry in this state still holds
// responsibility for the lead and is eligible for a transition.
func (s AssignmentStatus) IsOpen() bool {
	return s == AssignmentAssigned || s == AssignmentForwarded
}

// IsResolved reports whether the entry ended its chain segment, leaving the
// lead unowned until a fresh assignment.
func (s AssignmentStatus) IsResolved() bool {
	return s == AssignmentCompleted || s == AssignmentRejected
}

// String returns the string representation of the assignment status
func (s AssignmentStatus) String() string {
	return string(s)
}

// ParseAssignmentStatus parses a string into an AssignmentStatus
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return status, nil
}
