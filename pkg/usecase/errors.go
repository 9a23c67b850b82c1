package usecase

import "errors"

// Sentinel errors for the use case layer. Every failure is scoped to a
// single request; nothing here is fatal to the process.
var (
	// ErrForbidden indicates the authorization gate denied the action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates a chain-state precondition was
	// violated, including a lost compare-and-swap race. Not retryable
	// without re-reading the lead.
	ErrInvalidTransition = errors.New("invalid chain transition")

	// ErrNotCurrentOwner indicates the actor does not hold the open tail
	// entry of the assignment chain.
	ErrNotCurrentOwner = errors.New("actor is not the current owner")

	// ErrValidation indicates a missing or malformed required field
	ErrValidation = errors.New("validation failed")

	// ErrLeadNotFound indicates the requested lead does not exist
	ErrLeadNotFound = errors.New("lead not found")

	// ErrUserNotFound indicates an actor or target is not in the directory
	ErrUserNotFound = errors.New("user not found")
)

// Context keys for error values
const (
	LeadIDKey     = "lead_id"
	ActionKey     = "action"
	ActorKey      = "actor"
	TailStatusKey = "tail_status"
)
