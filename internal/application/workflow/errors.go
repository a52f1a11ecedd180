package workflow

import "errors"

var (
	// ErrNotFound indicates the referenced workflow, step, exception or
	// document does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrTemplateNotFound indicates the requested template ID is not registered
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateWorkflow indicates the employee already has an active workflow
	ErrDuplicateWorkflow = errors.New("employee already has an active workflow")

	// ErrPersistence wraps storage failures. The enclosing transaction has
	// been rolled back and the operation can be retried.
	ErrPersistence = errors.New("persistence failure")
)
