package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// StateMachine tracks a step's current status and validates transitions
type StateMachine interface {
	// Status returns the current status
	Status() entity.StepStatus

	// CanFire returns true if the trigger is permitted in the current status
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, moving to the new status if allowed
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers that can be fired in the current status
	PermittedTriggers() []Trigger
}

// stepTable holds the single authoritative transition table for step
// statuses. Assembled once; Build hands out independent machine instances.
var stepTable = buildStepTable()

func buildStepTable() StateMachineBuilder {
	builder := NewBuilder()

	builder.Configure(entity.StepPending).
		Permit(TriggerStart, entity.StepInProgress).
		Permit(TriggerSkip, entity.StepSkipped).
		Permit(TriggerBlock, entity.StepBlocked).
		Permit(TriggerFail, entity.StepFailed)

	builder.Configure(entity.StepInProgress).
		Permit(TriggerComplete, entity.StepCompleted).
		Permit(TriggerSkip, entity.StepSkipped).
		Permit(TriggerBlock, entity.StepBlocked).
		Permit(TriggerFail, entity.StepFailed)

	builder.Configure(entity.StepBlocked).
		Permit(TriggerRequeue, entity.StepPending)

	builder.Configure(entity.StepFailed).
		Permit(TriggerRequeue, entity.StepPending)

	// Completed and Skipped are terminal, no outgoing transitions

	return builder
}

// NewStepMachine creates a state machine positioned at the given status.
func NewStepMachine(initial entity.StepStatus) StateMachine {
	return stepTable.Build(initial)
}

// CanTransition reports whether the trigger is legal from the given status.
func CanTransition(from entity.StepStatus, trigger Trigger) bool {
	if !from.IsValid() {
		return false
	}
	return NewStepMachine(from).CanFire(trigger)
}

// Start moves a Pending step to InProgress and stamps StartedAt. Completion
// later requires this start, so every finished step carries an auditable
// start timestamp.
func Start(ctx context.Context, step *entity.StepRecord, now time.Time) error {
	if err := fire(ctx, step, TriggerStart); err != nil {
		return err
	}
	step.StartedAt = &now
	return nil
}

// Complete moves an InProgress step to Completed and stamps CompletedAt.
// A step cannot be completed without having been started.
func Complete(ctx context.Context, step *entity.StepRecord, now time.Time) error {
	if err := fire(ctx, step, TriggerComplete); err != nil {
		return err
	}
	step.CompletedAt = &now
	return nil
}

// Skip moves a Pending or InProgress step to Skipped. The reason is
// mandatory: it fails with ErrValidation on blank/whitespace input before
// the transition is even attempted, whatever the step's status.
func Skip(ctx context.Context, step *entity.StepRecord, reason string, now time.Time) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return fmt.Errorf("%w: skip reason is required", ErrValidation)
	}
	if err := fire(ctx, step, TriggerSkip); err != nil {
		return err
	}
	step.SkipReason = trimmed
	step.CompletedAt = &now
	return nil
}

// MarkBlocked moves a Pending or InProgress step to Blocked, recording the
// cause. System-triggered, e.g. when a prerequisite is incomplete.
func MarkBlocked(ctx context.Context, step *entity.StepRecord, cause string) error {
	if err := fire(ctx, step, TriggerBlock); err != nil {
		return err
	}
	step.FailureCause = strings.TrimSpace(cause)
	return nil
}

// MarkFailed moves a Pending or InProgress step to Failed, recording the
// cause. Used when an automated integration action errored.
func MarkFailed(ctx context.Context, step *entity.StepRecord, cause string) error {
	if err := fire(ctx, step, TriggerFail); err != nil {
		return err
	}
	step.FailureCause = strings.TrimSpace(cause)
	return nil
}

// Requeue returns a Blocked or Failed step to Pending after remediation.
// The recorded cause and start timestamp are cleared so the step runs its
// lifecycle from scratch.
func Requeue(ctx context.Context, step *entity.StepRecord) error {
	if err := fire(ctx, step, TriggerRequeue); err != nil {
		return err
	}
	step.FailureCause = ""
	step.StartedAt = nil
	return nil
}

// fire validates the trigger against the step table and applies the
// resulting status to the step. The step is mutated in memory only;
// persisting the change is the caller's job.
func fire(ctx context.Context, step *entity.StepRecord, trigger Trigger) error {
	if !step.Status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, step.Status)
	}

	machine := NewStepMachine(step.Status)
	if err := machine.Fire(ctx, trigger); err != nil {
		return err
	}

	step.Status = machine.Status()
	return nil
}
