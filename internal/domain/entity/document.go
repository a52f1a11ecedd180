package entity

import "time"

// DocumentRecord is metadata for a document generated during onboarding.
// Records are immutable once created except for the Generated to Signed
// status transition.
type DocumentRecord struct {
	ID            int64          `json:"id"`
	WorkflowID    int64          `json:"workflow_id"`
	StepID        *int64         `json:"step_id,omitempty"`
	DocumentName  string         `json:"document_name"`
	DocumentType  string         `json:"document_type"`
	FileType      string         `json:"file_type"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	FilePath      string         `json:"file_path,omitempty"`
	Status        DocumentStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	SignedAt      *time.Time     `json:"signed_at,omitempty"`
}

// DocumentTypeSummary is the document type recorded for the generated
// onboarding summary workbook.
const DocumentTypeSummary = "onboarding-summary"
