package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// StepRepository implements port.StepRepository
type StepRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewStepRepository creates a new step repository
func NewStepRepository(db *sqlite.DB, logger *zap.Logger) port.StepRepository {
	return &StepRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts the provisioned steps of a workflow. Meant to run
// inside the workflow creation transaction so provisioning is atomic.
func (r *StepRepository) CreateBatch(ctx context.Context, steps []*entity.StepRecord) error {
	query := `
		INSERT INTO onboarding_steps (
			workflow_id, stage, position, name, description,
			integration_type, due_date, status, skip_reason, failure_cause,
			started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	ex := r.db.Executor(ctx)
	for _, step := range steps {
		result, err := ex.ExecContext(ctx, query,
			step.WorkflowID,
			step.Stage,
			step.Position,
			step.Name,
			step.Description,
			step.IntegrationType,
			step.DueDate,
			step.Status,
			step.SkipReason,
			step.FailureCause,
			step.StartedAt,
			step.CompletedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create step", zap.Int64("workflow_id", step.WorkflowID), zap.Error(err))
			return fmt.Errorf("failed to create step: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		step.ID = id
	}

	return nil
}

// GetByID retrieves a step by ID
func (r *StepRepository) GetByID(ctx context.Context, id int64) (*entity.StepRecord, error) {
	query := `
		SELECT id, workflow_id, stage, position, name, description,
			integration_type, due_date, status, skip_reason, failure_cause,
			started_at, completed_at, created_at, updated_at
		FROM onboarding_steps
		WHERE id = ?
	`

	step, err := scanStep(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get step by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get step: %w", err)
	}

	return step, nil
}

// GetByWorkflowID retrieves all steps of a workflow ordered by stage then position
func (r *StepRepository) GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.StepRecord, error) {
	query := `
		SELECT id, workflow_id, stage, position, name, description,
			integration_type, due_date, status, skip_reason, failure_cause,
			started_at, completed_at, created_at, updated_at
		FROM onboarding_steps
		WHERE workflow_id = ?
		ORDER BY CASE stage
			WHEN 'pre-boarding' THEN 0
			WHEN 'day-1' THEN 1
			WHEN 'week-1' THEN 2
			WHEN 'month-1' THEN 3
			ELSE 4
		END, position, id
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, workflowID)
	if err != nil {
		r.logger.Error("Failed to list steps", zap.Int64("workflow_id", workflowID), zap.Error(err))
		return nil, fmt.Errorf("failed to list steps: %w", err)
	}
	defer rows.Close()

	var steps []*entity.StepRecord
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// Update persists the mutable step fields
func (r *StepRepository) Update(ctx context.Context, step *entity.StepRecord) error {
	query := `
		UPDATE onboarding_steps
		SET status = ?, skip_reason = ?, failure_cause = ?,
			started_at = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		step.Status,
		step.SkipReason,
		step.FailureCause,
		step.StartedAt,
		step.CompletedAt,
		step.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update step", zap.Int64("id", step.ID), zap.Error(err))
		return fmt.Errorf("failed to update step: %w", err)
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStep(row rowScanner) (*entity.StepRecord, error) {
	var step entity.StepRecord
	var dueDate, startedAt, completedAt sql.NullTime

	err := row.Scan(
		&step.ID,
		&step.WorkflowID,
		&step.Stage,
		&step.Position,
		&step.Name,
		&step.Description,
		&step.IntegrationType,
		&dueDate,
		&step.Status,
		&step.SkipReason,
		&step.FailureCause,
		&startedAt,
		&completedAt,
		&step.CreatedAt,
		&step.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		step.DueDate = &dueDate.Time
	}
	if startedAt.Valid {
		step.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		step.CompletedAt = &completedAt.Time
	}

	return &step, nil
}

// Verify interface compliance
var _ port.StepRepository = (*StepRepository)(nil)
