package interfaces

import "errors"

// Errors shared by all repository backends
var (
	// ErrLeadNotFound indicates the requested lead does not exist
	ErrLeadNotFound = errors.New("lead not found")

	// ErrRevisionConflict indicates a conditional update lost a concurrent
	// write race: the stored revision no longer matches the expected one.
	ErrRevisionConflict = errors.New("lead revision conflict")
)
