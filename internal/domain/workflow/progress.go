package workflow

import (
	"math"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// Progress is the derived, workflow-level view of a step collection. It is
// recomputed from current records on every read and never stored as the
// source of truth.
type Progress struct {
	WorkflowID         int64        `json:"workflow_id"`
	CurrentStage       entity.Stage `json:"current_stage"`
	TotalSteps         int          `json:"total_steps"`
	CompletedSteps     int          `json:"completed_steps"`
	SkippedSteps       int          `json:"skipped_steps"`
	InProgressSteps    int          `json:"in_progress_steps"`
	PendingSteps       int          `json:"pending_steps"`
	BlockedSteps       int          `json:"blocked_steps"`
	FailedSteps        int          `json:"failed_steps"`
	OverdueSteps       int          `json:"overdue_steps"`
	ProgressPercentage int          `json:"progress_percentage"`
	DaysElapsed        int          `json:"days_elapsed"`
	ExpectedDays       int          `json:"expected_days"`
	OnTrack            bool         `json:"on_track"`
	OpenExceptions     int          `json:"open_exceptions"`
}

// CalculateProgress derives the full progress snapshot for a workflow.
// Pure: no I/O, no mutation, deterministic for a given now.
func CalculateProgress(w *entity.WorkflowInstance, steps []*entity.StepRecord, exceptions []*entity.ExceptionRecord, now time.Time) *Progress {
	p := &Progress{
		WorkflowID:   w.ID,
		CurrentStage: w.CurrentStage,
		TotalSteps:   len(steps),
		ExpectedDays: w.ExpectedDays,
	}

	for _, step := range steps {
		switch step.Status {
		case entity.StepCompleted:
			p.CompletedSteps++
		case entity.StepSkipped:
			p.SkippedSteps++
		case entity.StepInProgress:
			p.InProgressSteps++
		case entity.StepPending:
			p.PendingSteps++
		case entity.StepBlocked:
			p.BlockedSteps++
		case entity.StepFailed:
			p.FailedSteps++
		}
		if step.IsOverdue(now) {
			p.OverdueSteps++
		}
	}

	p.ProgressPercentage = Percentage(steps)
	p.DaysElapsed = DaysElapsed(w.StartedAt, now)
	p.OnTrack = IsOnTrack(p.ProgressPercentage, p.DaysElapsed, w.ExpectedDays)
	p.OpenExceptions = CountOpenExceptions(exceptions)

	return p
}

// Percentage returns round(100 * terminal / total). Completed and Skipped
// both count as done; Blocked and Failed do not. A workflow with no steps
// reports 0, not NaN.
func Percentage(steps []*entity.StepRecord) int {
	if len(steps) == 0 {
		return 0
	}

	done := 0
	for _, step := range steps {
		if step.Status.IsTerminal() {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(steps))))
}

// StageComplete reports whether every step belonging to the stage is
// Completed or Skipped. A stage with no steps is vacuously complete;
// AdvanceStage deals with empty stages explicitly.
func StageComplete(steps []*entity.StepRecord, stage entity.Stage) bool {
	for _, step := range steps {
		if step.Stage == stage && !step.Status.IsTerminal() {
			return false
		}
	}
	return true
}

// AdvanceStage returns the stage the workflow should sit at given its step
// collection: while the current stage is complete and a later stage with at
// least one step exists, move to that stage. This is the only path by which
// the current stage changes, and it never moves backwards.
func AdvanceStage(current entity.Stage, steps []*entity.StepRecord) entity.Stage {
	grouped := GroupByStage(steps)

	stage := current
	for allTerminal(grouped[stage]) {
		next, ok := nextStageWithSteps(stage, grouped)
		if !ok {
			break
		}
		stage = next
	}

	return stage
}

// GroupByStage projects the step list into per-stage slices, preserving the
// per-stage insertion order of the input.
func GroupByStage(steps []*entity.StepRecord) map[entity.Stage][]*entity.StepRecord {
	grouped := make(map[entity.Stage][]*entity.StepRecord)
	for _, step := range steps {
		grouped[step.Stage] = append(grouped[step.Stage], step)
	}
	return grouped
}

// DaysElapsed returns whole days between the workflow start and now, never
// negative.
func DaysElapsed(startedAt, now time.Time) int {
	if !now.After(startedAt) {
		return 0
	}
	return int(now.Sub(startedAt).Hours() / 24)
}

// ExpectedProgress is the proportional pace target: the percentage a
// workflow should have reached after daysElapsed of its expected duration,
// capped at 100. A non-positive expected duration demands full completion.
func ExpectedProgress(daysElapsed, expectedDays int) int {
	if expectedDays <= 0 {
		return 100
	}

	pct := int(math.Round(100 * float64(daysElapsed) / float64(expectedDays)))
	if pct > 100 {
		return 100
	}
	return pct
}

// IsOnTrack applies the schedule policy: within the expected duration, or
// keeping up with the proportional pace. A workflow past its deadline but
// already at 100% is still on track.
func IsOnTrack(progressPct, daysElapsed, expectedDays int) bool {
	if daysElapsed <= expectedDays {
		return true
	}
	return progressPct >= ExpectedProgress(daysElapsed, expectedDays)
}

// CountOpenExceptions counts exceptions still awaiting resolution.
func CountOpenExceptions(exceptions []*entity.ExceptionRecord) int {
	open := 0
	for _, ex := range exceptions {
		if ex.IsOpen() {
			open++
		}
	}
	return open
}

// CountOverdue counts steps past their due date that are not yet terminal.
func CountOverdue(steps []*entity.StepRecord, now time.Time) int {
	overdue := 0
	for _, step := range steps {
		if step.IsOverdue(now) {
			overdue++
		}
	}
	return overdue
}

// AllStepsTerminal reports whether every step is Completed or Skipped, the
// condition under which a workflow itself completes. False for an empty
// collection; a workflow with no steps never completes on its own.
func AllStepsTerminal(steps []*entity.StepRecord) bool {
	if len(steps) == 0 {
		return false
	}
	return allTerminal(steps)
}

func allTerminal(steps []*entity.StepRecord) bool {
	for _, step := range steps {
		if !step.Status.IsTerminal() {
			return false
		}
	}
	return true
}

func nextStageWithSteps(after entity.Stage, grouped map[entity.Stage][]*entity.StepRecord) (entity.Stage, bool) {
	stage := after
	for {
		next, ok := stage.Next()
		if !ok {
			return "", false
		}
		if len(grouped[next]) > 0 {
			return next, true
		}
		stage = next
	}
}
