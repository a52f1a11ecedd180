package document

import (
	"context"
	"fmt"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Workbook layout
const (
	summarySheet = "Onboarding Summary"

	headerStartRow = 3

	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

var tableColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// Renderer builds the onboarding summary workbook from workflow state
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a summary renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderSummary produces the summary workbook as xlsx bytes. The workbook
// carries three sections: the workflow header, the full step table, and the
// exception ledger.
func (r *Renderer) RenderSummary(ctx context.Context, w *entity.WorkflowInstance, steps []*entity.StepRecord, exceptions []*entity.ExceptionRecord) ([]byte, error) {
	r.logger.Debug("Rendering onboarding summary",
		zap.Int64("workflow_id", w.ID),
		zap.String("employee_id", w.EmployeeID))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "C", "G", 20); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row, err := r.fillHeader(f, bold, w)
	if err != nil {
		return nil, err
	}

	row, err = r.fillStepTable(f, bold, row+1, steps)
	if err != nil {
		return nil, err
	}

	if _, err := r.fillExceptionTable(f, bold, row+1, exceptions); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	r.logger.Info("Onboarding summary rendered",
		zap.Int64("workflow_id", w.ID),
		zap.Int("steps", len(steps)),
		zap.Int("exceptions", len(exceptions)))

	return buf.Bytes(), nil
}

// fillHeader writes the workflow fields and returns the first unused row
func (r *Renderer) fillHeader(f *excelize.File, bold int, w *entity.WorkflowInstance) (int, error) {
	if err := f.SetCellValue(summarySheet, "A1", "Onboarding Summary"); err != nil {
		return 0, fmt.Errorf("failed to set title: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", bold); err != nil {
		return 0, fmt.Errorf("failed to style title: %w", err)
	}

	fields := []struct {
		label string
		value interface{}
	}{
		{"Employee", w.EmployeeID},
		{"Template", w.TemplateID},
		{"Status", w.Status.String()},
		{"Current stage", w.CurrentStage.String()},
		{"Progress", fmt.Sprintf("%d%%", w.ProgressPercentage)},
		{"Started", w.StartedAt.Format(dateFormat)},
		{"Completed", formatTime(w.CompletedAt, dateTimeFormat)},
	}

	row := headerStartRow
	for _, field := range fields {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), field.label); err != nil {
			return 0, fmt.Errorf("failed to set %q label: %w", field.label, err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), field.value); err != nil {
			return 0, fmt.Errorf("failed to set %q value: %w", field.label, err)
		}
		row++
	}

	return row, nil
}

// fillStepTable writes one row per step and returns the first unused row
func (r *Renderer) fillStepTable(f *excelize.File, bold int, start int, steps []*entity.StepRecord) (int, error) {
	row, err := r.sectionHeader(f, bold, start, "Steps",
		[]string{"Stage", "Step", "Status", "Due", "Started", "Completed", "Notes"})
	if err != nil {
		return 0, err
	}

	for _, s := range steps {
		values := []interface{}{
			s.Stage.String(),
			s.Name,
			s.Status.String(),
			formatTime(s.DueDate, dateFormat),
			formatTime(s.StartedAt, dateTimeFormat),
			formatTime(s.CompletedAt, dateTimeFormat),
			stepNotes(s),
		}
		if err := r.fillRow(f, row, values); err != nil {
			return 0, err
		}
		row++
	}

	return row, nil
}

// fillExceptionTable writes the exception ledger and returns the first unused row
func (r *Renderer) fillExceptionTable(f *excelize.File, bold int, start int, exceptions []*entity.ExceptionRecord) (int, error) {
	row, err := r.sectionHeader(f, bold, start, "Exceptions",
		[]string{"Severity", "Title", "Status", "Resolved by", "Resolved at", "Note"})
	if err != nil {
		return 0, err
	}

	if len(exceptions) == 0 {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(summarySheet, cell, "No exceptions recorded"); err != nil {
			return 0, fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
		return row + 1, nil
	}

	for _, e := range exceptions {
		values := []interface{}{
			e.Severity.String(),
			e.Title,
			e.ResolutionStatus.String(),
			orDash(e.ResolvedBy),
			formatTime(e.ResolvedAt, dateTimeFormat),
			e.ResolutionNote,
		}
		if err := r.fillRow(f, row, values); err != nil {
			return 0, err
		}
		row++
	}

	return row, nil
}

// sectionHeader writes a bold section label and column headers, returning
// the first data row
func (r *Renderer) sectionHeader(f *excelize.File, bold int, start int, label string, headers []string) (int, error) {
	cell := fmt.Sprintf("A%d", start)
	if err := f.SetCellValue(summarySheet, cell, label); err != nil {
		return 0, fmt.Errorf("failed to set section label %q: %w", label, err)
	}
	if err := f.SetCellStyle(summarySheet, cell, cell, bold); err != nil {
		return 0, fmt.Errorf("failed to style section label %q: %w", label, err)
	}

	headerRow := start + 1
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := r.fillRow(f, headerRow, values); err != nil {
		return 0, err
	}
	first := fmt.Sprintf("A%d", headerRow)
	last := fmt.Sprintf("%s%d", tableColumns[len(headers)-1], headerRow)
	if err := f.SetCellStyle(summarySheet, first, last, bold); err != nil {
		return 0, fmt.Errorf("failed to style headers for %q: %w", label, err)
	}

	return headerRow + 1, nil
}

func (r *Renderer) fillRow(f *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		cell := fmt.Sprintf("%s%d", tableColumns[i], row)
		if err := f.SetCellValue(summarySheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func formatTime(t *time.Time, layout string) string {
	if t == nil {
		return "-"
	}
	return t.Format(layout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func stepNotes(s *entity.StepRecord) string {
	if s.SkipReason != "" {
		return s.SkipReason
	}
	return s.FailureCause
}

// Verify interface compliance
var _ port.SummaryRenderer = (*Renderer)(nil)
