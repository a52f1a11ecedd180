package entity

import "time"

// WorkflowInstance represents one employee's onboarding run. It owns an
// ordered collection of StepRecords plus the exception and document ledgers
// attached to them.
type WorkflowInstance struct {
	ID         int64          `json:"id"`
	EmployeeID string         `json:"employee_id"`
	TemplateID string         `json:"template_id"`
	Status     WorkflowStatus `json:"status"`
	// CurrentStage never regresses; it advances only when every step in the
	// current stage is Completed or Skipped.
	CurrentStage Stage `json:"current_stage"`
	// ProgressPercentage is derived, not authoritative; readers recompute it
	// from the step collection.
	ProgressPercentage int        `json:"progress_percentage"`
	ExpectedDays       int        `json:"expected_days"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsActive reports whether the workflow still accepts commands that move
// steps forward.
func (w *WorkflowInstance) IsActive() bool {
	return w.Status == WorkflowActive
}
