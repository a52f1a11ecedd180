package entity

import "time"

// StepRecord is one unit of onboarding work. Steps are provisioned from a
// template when the workflow is created, mutated only through state machine
// transitions, and never deleted; a step that stops being relevant is
// Skipped so the history survives.
type StepRecord struct {
	ID         int64 `json:"id"`
	WorkflowID int64 `json:"workflow_id"`
	Stage      Stage `json:"stage"`
	// Position preserves insertion order, the intended execution order
	// within the stage.
	Position    int    `json:"position"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// IntegrationType tags steps that touch an external system, e.g.
	// payroll-provisioning or e-sign.
	IntegrationType string     `json:"integration_type,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Status          StepStatus `json:"status"`
	// SkipReason is required exactly when Status is Skipped.
	SkipReason string `json:"skip_reason,omitempty"`
	// FailureCause records why the step is Blocked or Failed; cleared when
	// the step is re-queued.
	FailureCause string     `json:"failure_cause,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the step has a due date in the past and has not
// reached a terminal status. Overdue is a derived display fact, never a
// stored status.
func (s *StepRecord) IsOverdue(now time.Time) bool {
	if s.DueDate == nil || s.Status.IsTerminal() {
		return false
	}
	return s.DueDate.Before(now)
}
