package document

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestRenderer_RenderSummary(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()
	renderer := NewRenderer(logger)

	started := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	finished := started.AddDate(0, 0, 21)
	due := started.AddDate(0, 0, 3)
	stepDone := started.AddDate(0, 0, 1)

	workflow := &entity.WorkflowInstance{
		ID:                 42,
		EmployeeID:         "emp-1042",
		TemplateID:         "engineering-default",
		Status:             entity.WorkflowCompleted,
		CurrentStage:       entity.StageMonth1,
		ProgressPercentage: 100,
		ExpectedDays:       30,
		StartedAt:          started,
		CompletedAt:        &finished,
	}

	steps := []*entity.StepRecord{
		{
			ID:          1,
			WorkflowID:  42,
			Stage:       entity.StagePreBoarding,
			Position:    0,
			Name:        "Collect signed offer",
			Status:      entity.StepCompleted,
			DueDate:     &due,
			StartedAt:   &started,
			CompletedAt: &stepDone,
		},
		{
			ID:         2,
			WorkflowID: 42,
			Stage:      entity.StagePreBoarding,
			Position:   1,
			Name:       "Provision laptop",
			Status:     entity.StepSkipped,
			SkipReason: "Employee brings own device",
		},
	}

	t.Run("renders header, steps and exceptions", func(t *testing.T) {
		resolvedAt := started.AddDate(0, 0, 2)
		exceptions := []*entity.ExceptionRecord{
			{
				ID:               7,
				WorkflowID:       42,
				Title:            "Laptop stock exhausted",
				Severity:         entity.SeverityMedium,
				ResolutionStatus: entity.ResolutionResolved,
				ResolvedBy:       "it-ops@example.com",
				ResolutionNote:   "Ordered from backup vendor",
				ResolvedAt:       &resolvedAt,
			},
		}

		data, err := renderer.RenderSummary(ctx, workflow, steps, exceptions)
		require.NoError(t, err)
		require.NotEmpty(t, data)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{summarySheet}, f.GetSheetList())

		title, _ := f.GetCellValue(summarySheet, "A1")
		assert.Equal(t, "Onboarding Summary", title)

		employee, _ := f.GetCellValue(summarySheet, "B3")
		assert.Equal(t, "emp-1042", employee)

		status, _ := f.GetCellValue(summarySheet, "B5")
		assert.Equal(t, "Completed", status)

		stage, _ := f.GetCellValue(summarySheet, "B6")
		assert.Equal(t, "month-1", stage)

		progress, _ := f.GetCellValue(summarySheet, "B7")
		assert.Equal(t, "100%", progress)

		completed, _ := f.GetCellValue(summarySheet, "B9")
		assert.Equal(t, "2024-04-01 09:00", completed)

		// Step table: section label at A11, headers at row 12, data from row 13
		section, _ := f.GetCellValue(summarySheet, "A11")
		assert.Equal(t, "Steps", section)

		stepName, _ := f.GetCellValue(summarySheet, "B13")
		assert.Equal(t, "Collect signed offer", stepName)

		stepDue, _ := f.GetCellValue(summarySheet, "D13")
		assert.Equal(t, "2024-03-14", stepDue)

		skippedStatus, _ := f.GetCellValue(summarySheet, "C14")
		assert.Equal(t, "Skipped", skippedStatus)

		skipNote, _ := f.GetCellValue(summarySheet, "G14")
		assert.Equal(t, "Employee brings own device", skipNote)

		// Exception table follows the steps after one blank row
		excSection, _ := f.GetCellValue(summarySheet, "A16")
		assert.Equal(t, "Exceptions", excSection)

		severity, _ := f.GetCellValue(summarySheet, "A18")
		assert.Equal(t, "Medium", severity)

		excTitle, _ := f.GetCellValue(summarySheet, "B18")
		assert.Equal(t, "Laptop stock exhausted", excTitle)

		resolvedBy, _ := f.GetCellValue(summarySheet, "D18")
		assert.Equal(t, "it-ops@example.com", resolvedBy)
	})

	t.Run("marks empty exception ledger", func(t *testing.T) {
		data, err := renderer.RenderSummary(ctx, workflow, steps, nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		placeholder, _ := f.GetCellValue(summarySheet, "A18")
		assert.Equal(t, "No exceptions recorded", placeholder)
	})

	t.Run("workflow still in flight", func(t *testing.T) {
		active := &entity.WorkflowInstance{
			ID:                 43,
			EmployeeID:         "emp-2000",
			TemplateID:         "engineering-default",
			Status:             entity.WorkflowActive,
			CurrentStage:       entity.StagePreBoarding,
			ProgressPercentage: 25,
			StartedAt:          started,
		}

		data, err := renderer.RenderSummary(ctx, active, steps, nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		completed, _ := f.GetCellValue(summarySheet, "B9")
		assert.Equal(t, "-", completed)
	})

	t.Run("no steps", func(t *testing.T) {
		data, err := renderer.RenderSummary(ctx, workflow, nil, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}
