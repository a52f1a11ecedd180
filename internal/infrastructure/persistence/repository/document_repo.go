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

// DocumentRepository implements port.DocumentRepository
type DocumentRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sqlite.DB, logger *zap.Logger) port.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.DocumentRecord) error {
	query := `
		INSERT INTO workflow_documents (
			workflow_id, step_id, document_name, document_type,
			file_type, file_size_bytes, file_path, status, signed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		doc.WorkflowID,
		doc.StepID,
		doc.DocumentName,
		doc.DocumentType,
		doc.FileType,
		doc.FileSizeBytes,
		doc.FilePath,
		doc.Status,
		doc.SignedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create document", zap.Int64("workflow_id", doc.WorkflowID), zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = id
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*entity.DocumentRecord, error) {
	query := `
		SELECT id, workflow_id, step_id, document_name, document_type,
			file_type, file_size_bytes, file_path, status, created_at, signed_at
		FROM workflow_documents
		WHERE id = ?
	`

	doc, err := scanDocument(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get document by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// GetByWorkflowID retrieves all documents of a workflow
func (r *DocumentRepository) GetByWorkflowID(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error) {
	query := `
		SELECT id, workflow_id, step_id, document_name, document_type,
			file_type, file_size_bytes, file_path, status, created_at, signed_at
		FROM workflow_documents
		WHERE workflow_id = ?
		ORDER BY id
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, workflowID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.Int64("workflow_id", workflowID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// GetByType retrieves the workflow's document of the given type, if any
func (r *DocumentRepository) GetByType(ctx context.Context, workflowID int64, docType string) (*entity.DocumentRecord, error) {
	query := `
		SELECT id, workflow_id, step_id, document_name, document_type,
			file_type, file_size_bytes, file_path, status, created_at, signed_at
		FROM workflow_documents
		WHERE workflow_id = ? AND document_type = ?
		ORDER BY id
		LIMIT 1
	`

	doc, err := scanDocument(r.db.Executor(ctx).QueryRowContext(ctx, query, workflowID, docType))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get document by type",
			zap.Int64("workflow_id", workflowID),
			zap.String("document_type", docType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// Update persists the signature state of a document
func (r *DocumentRepository) Update(ctx context.Context, doc *entity.DocumentRecord) error {
	query := `
		UPDATE workflow_documents
		SET status = ?, signed_at = ?
		WHERE id = ?
	`

	_, err := r.db.Executor(ctx).ExecContext(ctx, query,
		doc.Status,
		doc.SignedAt,
		doc.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update document", zap.Int64("id", doc.ID), zap.Error(err))
		return fmt.Errorf("failed to update document: %w", err)
	}

	return nil
}

func scanDocument(row rowScanner) (*entity.DocumentRecord, error) {
	var doc entity.DocumentRecord
	var stepID sql.NullInt64
	var signedAt sql.NullTime

	err := row.Scan(
		&doc.ID,
		&doc.WorkflowID,
		&stepID,
		&doc.DocumentName,
		&doc.DocumentType,
		&doc.FileType,
		&doc.FileSizeBytes,
		&doc.FilePath,
		&doc.Status,
		&doc.CreatedAt,
		&signedAt,
	)
	if err != nil {
		return nil, err
	}

	if stepID.Valid {
		doc.StepID = &stepID.Int64
	}
	if signedAt.Valid {
		doc.SignedAt = &signedAt.Time
	}

	return &doc, nil
}

// Verify interface compliance
var _ port.DocumentRepository = (*DocumentRepository)(nil)
