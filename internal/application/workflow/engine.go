package workflow

import (
	"context"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	domainwf "github.com/cocomgroup/hrms-onboarding/internal/domain/workflow"
)

// Engine orchestrates onboarding workflows. All mutations for one
// workflow are serialized and applied transactionally.
type Engine interface {
	// CreateWorkflow provisions a workflow from a template for an employee
	CreateWorkflow(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*WorkflowDetail, error)

	// GetWorkflow returns the workflow with its steps grouped by stage
	GetWorkflow(ctx context.Context, workflowID int64) (*WorkflowDetail, error)

	// ListWorkflows returns workflows matching the filter
	ListWorkflows(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error)

	// GetProgress recomputes the progress snapshot from stored steps
	GetProgress(ctx context.Context, workflowID int64) (*domainwf.Progress, error)

	// StartStep moves a pending step into execution
	StartStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error)

	// CompleteStep finishes an in-progress step
	CompleteStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error)

	// SkipStep marks a step not applicable, the reason is mandatory
	SkipStep(ctx context.Context, workflowID, stepID int64, reason string) (*StepResult, error)

	// MarkStepBlocked parks a step on an external obstacle and raises an exception
	MarkStepBlocked(ctx context.Context, workflowID, stepID int64, cause string) (*StepResult, error)

	// MarkStepFailed records a step failure and raises an exception
	MarkStepFailed(ctx context.Context, workflowID, stepID int64, cause string) (*StepResult, error)

	// RequeueStep returns a blocked or failed step to the pending pool
	RequeueStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error)

	// RaiseException records a manual exception against the workflow
	RaiseException(ctx context.Context, workflowID int64, in RaiseExceptionInput) (*entity.ExceptionRecord, error)

	// ResolveException closes an open exception with actor and note
	ResolveException(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error)

	// ListExceptions returns all exceptions of a workflow, open first
	ListExceptions(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error)

	// GenerateSummaryDocument renders and stores the onboarding summary
	// workbook. Generation is idempotent per workflow.
	GenerateSummaryDocument(ctx context.Context, workflowID int64) (*entity.DocumentRecord, error)

	// SignDocument marks a generated document as signed
	SignDocument(ctx context.Context, workflowID, documentID int64) (*entity.DocumentRecord, error)

	// ListDocuments returns all documents recorded for a workflow
	ListDocuments(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error)

	// Templates returns the registered onboarding templates
	Templates() []*port.WorkflowTemplate
}

// RaiseExceptionInput carries the fields of a manual exception
type RaiseExceptionInput struct {
	StepID      *int64
	Title       string
	Description string
	Severity    entity.Severity
}
