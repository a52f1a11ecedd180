package port

import (
	"context"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// SummaryRenderer produces the onboarding summary workbook for a workflow
type SummaryRenderer interface {
	RenderSummary(ctx context.Context, w *entity.WorkflowInstance, steps []*entity.StepRecord, exceptions []*entity.ExceptionRecord) ([]byte, error)
}
