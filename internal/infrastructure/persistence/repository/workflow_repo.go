package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/cocomgroup/hrms-onboarding/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// WorkflowRepository implements port.WorkflowRepository
type WorkflowRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewWorkflowRepository creates a new workflow repository
func NewWorkflowRepository(db *sqlite.DB, logger *zap.Logger) port.WorkflowRepository {
	return &WorkflowRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new workflow instance
func (r *WorkflowRepository) Create(ctx context.Context, w *entity.WorkflowInstance) error {
	query := `
		INSERT INTO onboarding_workflows (
			employee_id, template_id, status, current_stage,
			progress_percentage, expected_days, started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		w.EmployeeID,
		w.TemplateID,
		w.Status,
		w.CurrentStage,
		w.ProgressPercentage,
		w.ExpectedDays,
		w.StartedAt,
		w.CompletedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create workflow", zap.Error(err))
		return fmt.Errorf("failed to create workflow: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	w.ID = id
	return nil
}

// GetByID retrieves a workflow instance by ID
func (r *WorkflowRepository) GetByID(ctx context.Context, id int64) (*entity.WorkflowInstance, error) {
	query := `
		SELECT id, employee_id, template_id, status, current_stage,
			progress_percentage, expected_days, started_at, completed_at,
			created_at, updated_at
		FROM onboarding_workflows
		WHERE id = ?
	`

	var w entity.WorkflowInstance
	var completedAt sql.NullTime

	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&w.ID,
		&w.EmployeeID,
		&w.TemplateID,
		&w.Status,
		&w.CurrentStage,
		&w.ProgressPercentage,
		&w.ExpectedDays,
		&w.StartedAt,
		&completedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get workflow by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	if completedAt.Valid {
		w.CompletedAt = &completedAt.Time
	}

	return &w, nil
}

// GetActiveByEmployee retrieves the employee's active workflow, if any
func (r *WorkflowRepository) GetActiveByEmployee(ctx context.Context, employeeID string) (*entity.WorkflowInstance, error) {
	query := `
		SELECT id, employee_id, template_id, status, current_stage,
			progress_percentage, expected_days, started_at, completed_at,
			created_at, updated_at
		FROM onboarding_workflows
		WHERE employee_id = ? AND status = ?
		ORDER BY id DESC
		LIMIT 1
	`

	var w entity.WorkflowInstance
	var completedAt sql.NullTime

	err := r.db.Executor(ctx).QueryRowContext(ctx, query, employeeID, entity.WorkflowActive).Scan(
		&w.ID,
		&w.EmployeeID,
		&w.TemplateID,
		&w.Status,
		&w.CurrentStage,
		&w.ProgressPercentage,
		&w.ExpectedDays,
		&w.StartedAt,
		&completedAt,
		&w.CreatedAt,
		&w.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get active workflow", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, fmt.Errorf("failed to get active workflow: %w", err)
	}

	if completedAt.Valid {
		w.CompletedAt = &completedAt.Time
	}

	return &w, nil
}

// Update persists the mutable workflow fields
func (r *WorkflowRepository) Update(ctx context.Context, w *entity.WorkflowInstance) error {
	query := `
		UPDATE onboarding_workflows
		SET status = ?, current_stage = ?, progress_percentage = ?,
			completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		w.Status,
		w.CurrentStage,
		w.ProgressPercentage,
		w.CompletedAt,
		w.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update workflow", zap.Int64("id", w.ID), zap.Error(err))
		return fmt.Errorf("failed to update workflow: %w", err)
	}

	return nil
}

// List retrieves workflows matching the filter, newest first
func (r *WorkflowRepository) List(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
	query := `
		SELECT id, employee_id, template_id, status, current_stage,
			progress_percentage, expected_days, started_at, completed_at,
			created_at, updated_at
		FROM onboarding_workflows
	`

	var conds []string
	var args []interface{}
	if filter.EmployeeID != "" {
		conds = append(conds, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list workflows", zap.Error(err))
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []*entity.WorkflowInstance
	for rows.Next() {
		var w entity.WorkflowInstance
		var completedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.EmployeeID,
			&w.TemplateID,
			&w.Status,
			&w.CurrentStage,
			&w.ProgressPercentage,
			&w.ExpectedDays,
			&w.StartedAt,
			&completedAt,
			&w.CreatedAt,
			&w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}

		if completedAt.Valid {
			w.CompletedAt = &completedAt.Time
		}

		workflows = append(workflows, &w)
	}

	return workflows, rows.Err()
}

// Verify interface compliance
var _ port.WorkflowRepository = (*WorkflowRepository)(nil)
