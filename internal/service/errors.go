package service

import "errors"

// Sentinel errors shared by the request services. Handlers map these to HTTP
// status codes with errors.Is; anything else surfaces as a 500.
var (
	// ErrValidation covers missing or malformed required fields caught
	// before any write (e.g. a blank rejection reason).
	ErrValidation = errors.New("validation failed")

	// ErrForbidden is returned when the actor lacks the role or ownership
	// required for the attempted mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState is returned when a transition is attempted on a
	// record whose status does not permit it (including lost races on the
	// conditional status update).
	ErrInvalidState = errors.New("invalid state transition")

	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("not found")
)
