package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a step status transition is not allowed
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidStatus is returned when a status is not a known step status
	ErrInvalidStatus = errors.New("invalid status")

	// ErrValidation is returned when required input is missing or malformed
	ErrValidation = errors.New("validation failed")

	// ErrGuardFailed is returned when a guard condition rejects a transition
	ErrGuardFailed = errors.New("guard condition failed")
)
