package model

import (
	"github.com/acreflow/leadflow/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// FollowUp is one comment in a lead's follow-up ledger. Entries are never
// deleted; hiding only flips IsVisible. Timestamp is a caller-facing string
// for wire compatibility with the legacy store.
type FollowUp struct {
	Comment   string       `firestore:"comment" json:"comment"`
	Author    string       `firestore:"author" json:"author"`
	AuthorID  types.UserID `firestore:"authorId" json:"authorId"`
	Role      types.Role   `firestore:"role" json:"role"`
	Timestamp string       `firestore:"timestamp" json:"timestamp"`
	IsVisible bool         `firestore:"isVisible" json:"isVisible"`
}

// Validate checks the required follow-up fields
func (f *FollowUp) Validate() error {
	if f.Comment == "" {
		return goerr.New("follow-up comment is required")
	}
	if !f.Role.IsValid() {
		return goerr.New("invalid follow-up role", goerr.V("role", f.Role))
	}
	return nil
}
