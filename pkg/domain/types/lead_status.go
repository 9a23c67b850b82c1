package types

import "fmt"

// LeadStatus represents the sales temperature of a lead. It is independent
// of where the lead sits in the assignment workflow.
type LeadStatus string

// The literal values are part of the persisted wire contract shared with the
// UI and must not be renamed without a data migration.
const (
	LeadStatusCold LeadStatus = "Cold"
	LeadStatusWarm LeadStatus = "Warm"
	LeadStatusHot  LeadStatus = "Hot"
)

// AllLeadStatuses returns all valid lead statuses
func AllLeadStatuses() []LeadStatus {
	return []LeadStatus{
		LeadStatusCold,
		LeadStatusWarm,
		LeadStatusHot,
	}
}

// IsValid checks if the lead status is valid
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusCold,
		LeadStatusWarm,
		LeadStatusHot:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as LeadStatusCold.
func (s LeadStatus) Normalize() LeadStatus {
	if s == "" {
		return LeadStatusCold
	}
	return s
}

// String returns the string representation of the lead status
func (s LeadStatus) String() string {
	return string(s)
}

// ParseLeadStatus parses a string into a LeadStatus
func ParseLeadStatus(s string) (LeadStatus, error) {
	status := LeadStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid lead status: %s", s)
	}
	return status, nil
}
