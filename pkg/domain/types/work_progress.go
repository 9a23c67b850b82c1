package types

import "fmt"

// WorkProgress reflects whether the current assignee has started or finished
// work on a lead. Progress is advisory: the authoritative completion record
// is the assignment chain entry status.
type WorkProgress string

const (
	WorkProgressPending    WorkProgress = "pending"
	WorkProgressInProgress WorkProgress = "inprogress"
	WorkProgressDone       WorkProgress = "done"
)

// AllWorkProgresses returns all valid work progress values
func AllWorkProgresses() []WorkProgress {
	return []WorkProgress{
		WorkProgressPending,
		WorkProgressInProgress,
		WorkProgressDone,
	}
}

// IsValid checks if the work progress value is valid
func (p WorkProgress) IsValid() bool {
	switch p {
	case WorkProgressPending,
		WorkProgressInProgress,
		WorkProgressDone:
		return true
	default:
		return false
	}
}

// Normalize returns the progress, treating empty as WorkProgressPending.
func (p WorkProgress) Normalize() WorkProgress {
	if p == "" {
		return WorkProgressPending
	}
	return p
}

// String returns the string representation of the work progress
func (p WorkProgress) String() string {
	return string(p)
}

// ParseWorkProgress parses a string into a WorkProgress
func ParseWorkProgress(s string) (WorkProgress, error) {
	progress := WorkProgress(s)
	if !progress.IsValid() {
		return "", fmt.Errorf("invalid work progress: %s", s)
	}
	return progress, nil
}
