package port

import (
	"context"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// WorkflowFilter narrows List queries over workflow instances
type WorkflowFilter struct {
	EmployeeID string
	Status     entity.WorkflowStatus
	Limit      int
	Offset     int
}

// WorkflowRepository defines persistence operations for WorkflowInstance
type WorkflowRepository interface {
	// Create inserts a new workflow and assigns its ID
	Create(ctx context.Context, w *entity.WorkflowInstance) error

	// GetByID retrieves a workflow by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*entity.WorkflowInstance, error)

	// GetActiveByEmployee retrieves the employee's active workflow, nil if none
	GetActiveByEmployee(ctx context.Context, employeeID string) (*entity.WorkflowInstance, error)

	// Update persists status, stage, progress and completion changes
	Update(ctx context.Context, w *entity.WorkflowInstance) error

	// List retrieves workflows matching the filter, newest first
	List(ctx context.Context, filter WorkflowFilter) ([]*entity.WorkflowInstance, error)
}

// StepRepository defines persistence operations for StepRecord
type StepRepository interface {
	// CreateBatch inserts provisioned steps and assigns their IDs
	CreateBatch(ctx context.Context, steps []*entity.StepRecord) error

	// GetByID retrieves a step by its ID, nil if absent
	GetByID(ctx context.Context, id int64) (*entity.StepRecord, error)

	// GetByWorkflowID retrieves all steps for a workflow ordered by stage then position
	GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.StepRecord, error)

	// Update persists status, timestamps, reason and cause changes
	Update(ctx context.Context, step *entity.StepRecord) error
}

// ExceptionRepository defines persistence operations for ExceptionRecord
type ExceptionRepository interface {
	Create(ctx context.Context, ex *entity.ExceptionRecord) error
	GetByID(ctx context.Context, id int64) (*entity.ExceptionRecord, error)
	GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error)
	Update(ctx context.Context, ex *entity.ExceptionRecord) error
}

// DocumentRepository defines persistence operations for DocumentRecord
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.DocumentRecord) error
	GetByID(ctx context.Context, id int64) (*entity.DocumentRecord, error)
	GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error)

	// GetByType retrieves the workflow's document of the given type, nil if absent
	GetByType(ctx context.Context, workflowID int64, docType string) (*entity.DocumentRecord, error)

	Update(ctx context.Context, doc *entity.DocumentRecord) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
