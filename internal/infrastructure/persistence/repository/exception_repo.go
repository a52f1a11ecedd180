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

// ExceptionRepository implements port.ExceptionRepository
type ExceptionRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewExceptionRepository creates a new exception repository
func NewExceptionRepository(db *sqlite.DB, logger *zap.Logger) port.ExceptionRepository {
	return &ExceptionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new exception record
func (r *ExceptionRepository) Create(ctx context.Context, ex *entity.ExceptionRecord) error {
	query := `
		INSERT INTO workflow_exceptions (
			workflow_id, step_id, title, description, severity,
			resolution_status, resolved_by, resolution_note, resolved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		ex.WorkflowID,
		ex.StepID,
		ex.Title,
		ex.Description,
		ex.Severity,
		ex.ResolutionStatus,
		ex.ResolvedBy,
		ex.ResolutionNote,
		ex.ResolvedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create exception", zap.Int64("workflow_id", ex.WorkflowID), zap.Error(err))
		return fmt.Errorf("failed to create exception: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ex.ID = id
	return nil
}

// GetByID retrieves an exception by ID
func (r *ExceptionRepository) GetByID(ctx context.Context, id int64) (*entity.ExceptionRecord, error) {
	query := `
		SELECT id, workflow_id, step_id, title, description, severity,
			resolution_status, resolved_by, resolution_note, created_at, resolved_at
		FROM workflow_exceptions
		WHERE id = ?
	`

	ex, err := scanException(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get exception by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get exception: %w", err)
	}

	return ex, nil
}

// GetByWorkflowID retrieves all exceptions of a workflow, open first,
// then most severe first within each group
func (r *ExceptionRepository) GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error) {
	query := `
		SELECT id, workflow_id, step_id, title, description, severity,
			resolution_status, resolved_by, resolution_note, created_at, resolved_at
		FROM workflow_exceptions
		WHERE workflow_id = ?
		ORDER BY CASE resolution_status WHEN 'Open' THEN 0 ELSE 1 END,
			CASE severity
				WHEN 'Critical' THEN 0
				WHEN 'High' THEN 1
				WHEN 'Medium' THEN 2
				ELSE 3
			END, id
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, workflowID)
	if err != nil {
		r.logger.Error("Failed to list exceptions", zap.Int64("workflow_id", workflowID), zap.Error(err))
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []*entity.ExceptionRecord
	for rows.Next() {
		ex, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		exceptions = append(exceptions, ex)
	}

	return exceptions, rows.Err()
}

// Update persists the resolution fields of an exception
func (r *ExceptionRepository) Update(ctx context.Context, ex *entity.ExceptionRecord) error {
	query := `
		UPDATE workflow_exceptions
		SET resolution_status = ?, resolved_by = ?, resolution_note = ?, resolved_at = ?
		WHERE id = ?
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		ex.ResolutionStatus,
		ex.ResolvedBy,
		ex.ResolutionNote,
		ex.ResolvedAt,
		ex.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update exception", zap.Int64("id", ex.ID), zap.Error(err))
		return fmt.Errorf("failed to update exception: %w", err)
	}

	return nil
}

func scanException(row rowScanner) (*entity.ExceptionRecord, error) {
	var ex entity.ExceptionRecord
	var stepID sql.NullInt64
	var resolvedAt sql.NullTime

	err := row.Scan(
		&ex.ID,
		&ex.WorkflowID,
		&stepID,
		&ex.Title,
		&ex.Description,
		&ex.Severity,
		&ex.ResolutionStatus,
		&ex.ResolvedBy,
		&ex.ResolutionNote,
		&ex.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if stepID.Valid {
		ex.StepID = &stepID.Int64
	}
	if resolvedAt.Valid {
		ex.ResolvedAt = &resolvedAt.Time
	}

	return &ex, nil
}

// Verify interface compliance
var _ port.ExceptionRepository = (*ExceptionRepository)(nil)
