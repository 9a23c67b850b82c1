package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// LeadID is an opaque identifier for a lead record
type LeadID string

// NewLeadID generates a new random LeadID
func NewLeadID() LeadID {
	return LeadID(uuid.NewString())
}

// Validate checks if the LeadID is valid
func (id LeadID) Validate() error {
	if id == "" {
		return goerr.New("lead ID cannot be empty")
	}
	return nil
}

// String returns the string representation of LeadID
func (id LeadID) String() string {
	return string(id)
}

// UserID is an identifier for a directory user
type UserID string

// Validate checks if the UserID is valid
func (id UserID) Validate() error {
	if id == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (id UserID) String() string {
	return string(id)
}
