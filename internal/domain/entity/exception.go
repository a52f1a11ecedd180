package entity

import "time"

// ExceptionRecord is a flagged problem tied to a workflow, optionally to a
// specific step. Raised by the engine when a step is blocked or fails, or by
// an operator. Resolution is always explicit: it requires an actor and is
// never performed silently.
type ExceptionRecord struct {
	ID               int64            `json:"id"`
	WorkflowID       int64            `json:"workflow_id"`
	StepID           *int64           `json:"step_id,omitempty"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Severity         Severity         `json:"severity"`
	ResolutionStatus ResolutionStatus `json:"resolution_status"`
	ResolvedBy       string           `json:"resolved_by,omitempty"`
	ResolutionNote   string           `json:"resolution_note,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	ResolvedAt       *time.Time       `json:"resolved_at,omitempty"`
}

// IsOpen reports whether the exception still needs attention.
func (e *ExceptionRecord) IsOpen() bool {
	return e.ResolutionStatus == ResolutionOpen
}
