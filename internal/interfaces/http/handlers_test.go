package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/application/workflow"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	domainwf "github.com/cocomgroup/hrms-onboarding/internal/domain/workflow"
)

// mockEngine implements workflow.Engine with overridable behavior per test
type mockEngine struct {
	createWorkflowFunc   func(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*workflow.WorkflowDetail, error)
	getWorkflowFunc      func(ctx context.Context, workflowID int64) (*workflow.WorkflowDetail, error)
	listWorkflowsFunc    func(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error)
	getProgressFunc      func(ctx context.Context, workflowID int64) (*domainwf.Progress, error)
	startStepFunc        func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error)
	completeStepFunc     func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error)
	skipStepFunc         func(ctx context.Context, workflowID, stepID int64, reason string) (*workflow.StepResult, error)
	blockStepFunc        func(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error)
	failStepFunc         func(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error)
	requeueStepFunc      func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error)
	raiseExceptionFunc   func(ctx context.Context, workflowID int64, in workflow.RaiseExceptionInput) (*entity.ExceptionRecord, error)
	resolveExceptionFunc func(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error)
	listExceptionsFunc   func(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error)
	generateSummaryFunc  func(ctx context.Context, workflowID int64) (*entity.DocumentRecord, error)
	signDocumentFunc     func(ctx context.Context, workflowID, documentID int64) (*entity.DocumentRecord, error)
	listDocumentsFunc    func(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error)
	templatesFunc        func() []*port.WorkflowTemplate
}

func (m *mockEngine) CreateWorkflow(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*workflow.WorkflowDetail, error) {
	if m.createWorkflowFunc != nil {
		return m.createWorkflowFunc(ctx, employeeID, templateID, attrs)
	}
	return &workflow.WorkflowDetail{
		Workflow: &entity.WorkflowInstance{
			ID:           1,
			EmployeeID:   employeeID,
			TemplateID:   templateID,
			Status:       entity.WorkflowActive,
			CurrentStage: entity.StagePreBoarding,
		},
	}, nil
}

func (m *mockEngine) GetWorkflow(ctx context.Context, workflowID int64) (*workflow.WorkflowDetail, error) {
	if m.getWorkflowFunc != nil {
		return m.getWorkflowFunc(ctx, workflowID)
	}
	return &workflow.WorkflowDetail{
		Workflow: &entity.WorkflowInstance{ID: workflowID, Status: entity.WorkflowActive},
	}, nil
}

func (m *mockEngine) ListWorkflows(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
	if m.listWorkflowsFunc != nil {
		return m.listWorkflowsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockEngine) GetProgress(ctx context.Context, workflowID int64) (*domainwf.Progress, error) {
	if m.getProgressFunc != nil {
		return m.getProgressFunc(ctx, workflowID)
	}
	return &domainwf.Progress{WorkflowID: workflowID}, nil
}

func (m *mockEngine) StartStep(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error) {
	if m.startStepFunc != nil {
		return m.startStepFunc(ctx, workflowID, stepID)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepInProgress},
	}, nil
}

func (m *mockEngine) CompleteStep(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error) {
	if m.completeStepFunc != nil {
		return m.completeStepFunc(ctx, workflowID, stepID)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepCompleted},
	}, nil
}

func (m *mockEngine) SkipStep(ctx context.Context, workflowID, stepID int64, reason string) (*workflow.StepResult, error) {
	if m.skipStepFunc != nil {
		return m.skipStepFunc(ctx, workflowID, stepID, reason)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepSkipped, SkipReason: reason},
	}, nil
}

func (m *mockEngine) MarkStepBlocked(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error) {
	if m.blockStepFunc != nil {
		return m.blockStepFunc(ctx, workflowID, stepID, cause)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepBlocked, FailureCause: cause},
	}, nil
}

func (m *mockEngine) MarkStepFailed(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error) {
	if m.failStepFunc != nil {
		return m.failStepFunc(ctx, workflowID, stepID, cause)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepFailed, FailureCause: cause},
	}, nil
}

func (m *mockEngine) RequeueStep(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error) {
	if m.requeueStepFunc != nil {
		return m.requeueStepFunc(ctx, workflowID, stepID)
	}
	return &workflow.StepResult{
		Step: &entity.StepRecord{ID: stepID, WorkflowID: workflowID, Status: entity.StepPending},
	}, nil
}

func (m *mockEngine) RaiseException(ctx context.Context, workflowID int64, in workflow.RaiseExceptionInput) (*entity.ExceptionRecord, error) {
	if m.raiseExceptionFunc != nil {
		return m.raiseExceptionFunc(ctx, workflowID, in)
	}
	return &entity.ExceptionRecord{
		ID:               1,
		WorkflowID:       workflowID,
		Title:            in.Title,
		Severity:         in.Severity,
		ResolutionStatus: entity.ResolutionOpen,
	}, nil
}

func (m *mockEngine) ResolveException(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error) {
	if m.resolveExceptionFunc != nil {
		return m.resolveExceptionFunc(ctx, workflowID, exceptionID, actor, note)
	}
	return &entity.ExceptionRecord{
		ID:               exceptionID,
		WorkflowID:       workflowID,
		ResolutionStatus: entity.ResolutionResolved,
		ResolvedBy:       actor,
		ResolutionNote:   note,
	}, nil
}

func (m *mockEngine) ListExceptions(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error) {
	if m.listExceptionsFunc != nil {
		return m.listExceptionsFunc(ctx, workflowID)
	}
	return nil, nil
}

func (m *mockEngine) GenerateSummaryDocument(ctx context.Context, workflowID int64) (*entity.DocumentRecord, error) {
	if m.generateSummaryFunc != nil {
		return m.generateSummaryFunc(ctx, workflowID)
	}
	return &entity.DocumentRecord{
		ID:           1,
		WorkflowID:   workflowID,
		DocumentType: entity.DocumentTypeSummary,
		Status:       entity.DocumentGenerated,
	}, nil
}

func (m *mockEngine) SignDocument(ctx context.Context, workflowID, documentID int64) (*entity.DocumentRecord, error) {
	if m.signDocumentFunc != nil {
		return m.signDocumentFunc(ctx, workflowID, documentID)
	}
	return &entity.DocumentRecord{
		ID:         documentID,
		WorkflowID: workflowID,
		Status:     entity.DocumentSigned,
	}, nil
}

func (m *mockEngine) ListDocuments(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error) {
	if m.listDocumentsFunc != nil {
		return m.listDocumentsFunc(ctx, workflowID)
	}
	return nil, nil
}

func (m *mockEngine) Templates() []*port.WorkflowTemplate {
	if m.templatesFunc != nil {
		return m.templatesFunc()
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// envelope mirrors Response with raw data for per-test decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func perform(t *testing.T, engine workflow.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	server := NewServer(DefaultServerConfig(), engine, &mockLogger{})

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealthCheck(t *testing.T) {
	rec, env := perform(t, &mockEngine{}, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestCreateWorkflow(t *testing.T) {
	var gotEmployee, gotTemplate string
	var gotAttrs map[string]interface{}

	engine := &mockEngine{
		createWorkflowFunc: func(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*workflow.WorkflowDetail, error) {
			gotEmployee, gotTemplate, gotAttrs = employeeID, templateID, attrs
			return &workflow.WorkflowDetail{
				Workflow: &entity.WorkflowInstance{ID: 7, EmployeeID: employeeID, TemplateID: templateID},
			}, nil
		},
	}

	rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows", CreateWorkflowRequest{
		EmployeeID: "emp-1042",
		TemplateID: "engineering-default",
		Attributes: map[string]interface{}{"location": "remote"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "emp-1042", gotEmployee)
	assert.Equal(t, "engineering-default", gotTemplate)
	assert.Equal(t, "remote", gotAttrs["location"])

	var detail workflow.WorkflowDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, int64(7), detail.Workflow.ID)

	// A fresh workflow has no ledger entries yet, but they are still arrays
	assert.Contains(t, rec.Body.String(), `"exceptions":[]`)
	assert.Contains(t, rec.Body.String(), `"documents":[]`)
}

func TestCreateWorkflow_Errors(t *testing.T) {
	tests := []struct {
		name       string
		engineErr  error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation failure",
			engineErr:  fmt.Errorf("%w: employee ID is required", domainwf.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidation,
		},
		{
			name:       "unknown template",
			engineErr:  fmt.Errorf("%w: %q", workflow.ErrTemplateNotFound, "ghost"),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeTemplateNotFound,
		},
		{
			name:       "duplicate active workflow",
			engineErr:  fmt.Errorf("%w: employee emp-1", workflow.ErrDuplicateWorkflow),
			wantStatus: http.StatusConflict,
			wantCode:   CodeDuplicateWorkflow,
		},
		{
			name:       "persistence failure",
			engineErr:  fmt.Errorf("%w: create workflow: disk I/O error", workflow.ErrPersistence),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodePersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{
				createWorkflowFunc: func(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*workflow.WorkflowDetail, error) {
					return nil, tt.engineErr
				},
			}

			rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows", CreateWorkflowRequest{
				EmployeeID: "emp-1",
				TemplateID: "engineering-default",
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestCreateWorkflow_MalformedBody(t *testing.T) {
	server := NewServer(DefaultServerConfig(), &mockEngine{}, &mockLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, CodeValidation, env.Code)
}

func TestGetWorkflow(t *testing.T) {
	t.Run("found with ledgers", func(t *testing.T) {
		engine := &mockEngine{
			getWorkflowFunc: func(ctx context.Context, workflowID int64) (*workflow.WorkflowDetail, error) {
				return &workflow.WorkflowDetail{
					Workflow: &entity.WorkflowInstance{ID: workflowID, Status: entity.WorkflowActive},
					Exceptions: []*entity.ExceptionRecord{
						{ID: 5, WorkflowID: workflowID, Title: "Background check delayed", Severity: entity.SeverityMedium},
					},
					Documents: []*entity.DocumentRecord{
						{ID: 9, WorkflowID: workflowID, DocumentType: entity.DocumentTypeSummary, Status: entity.DocumentGenerated},
					},
				}, nil
			},
		}

		rec, env := perform(t, engine, http.MethodGet, "/api/v1/workflows/42", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)

		var detail workflow.WorkflowDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, int64(42), detail.Workflow.ID)
		require.Len(t, detail.Exceptions, 1)
		assert.Equal(t, "Background check delayed", detail.Exceptions[0].Title)
		require.Len(t, detail.Documents, 1)
		assert.Equal(t, entity.DocumentTypeSummary, detail.Documents[0].DocumentType)
	})

	t.Run("empty ledgers are arrays", func(t *testing.T) {
		rec, _ := perform(t, &mockEngine{}, http.MethodGet, "/api/v1/workflows/42", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"exceptions":[]`)
		assert.Contains(t, rec.Body.String(), `"documents":[]`)
	})

	t.Run("not found", func(t *testing.T) {
		engine := &mockEngine{
			getWorkflowFunc: func(ctx context.Context, workflowID int64) (*workflow.WorkflowDetail, error) {
				return nil, fmt.Errorf("%w: workflow %d", workflow.ErrNotFound, workflowID)
			},
		}

		rec, env := perform(t, engine, http.MethodGet, "/api/v1/workflows/42", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, CodeNotFound, env.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec, env := perform(t, &mockEngine{}, http.MethodGet, "/api/v1/workflows/not-a-number", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeValidation, env.Code)
	})
}

func TestListWorkflows(t *testing.T) {
	t.Run("passes filter through", func(t *testing.T) {
		var gotFilter port.WorkflowFilter
		engine := &mockEngine{
			listWorkflowsFunc: func(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
				gotFilter = filter
				return []*entity.WorkflowInstance{{ID: 1}, {ID: 2}}, nil
			},
		}

		rec, env := perform(t, engine, http.MethodGet, "/api/v1/workflows?employee_id=emp-1&status=Active", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-1", gotFilter.EmployeeID)
		assert.Equal(t, entity.WorkflowActive, gotFilter.Status)

		var list []*entity.WorkflowInstance
		require.NoError(t, json.Unmarshal(env.Data, &list))
		assert.Len(t, list, 2)
	})

	t.Run("limit and offset reach the engine untouched", func(t *testing.T) {
		var gotFilter port.WorkflowFilter
		engine := &mockEngine{
			listWorkflowsFunc: func(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		perform(t, engine, http.MethodGet, "/api/v1/workflows?limit=500&offset=40", nil)

		assert.Equal(t, 500, gotFilter.Limit)
		assert.Equal(t, 40, gotFilter.Offset)
	})

	t.Run("empty result is an array", func(t *testing.T) {
		rec, _ := perform(t, &mockEngine{}, http.MethodGet, "/api/v1/workflows", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		engine := &mockEngine{
			listWorkflowsFunc: func(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
				return nil, fmt.Errorf("%w: invalid workflow status %q", domainwf.ErrValidation, filter.Status)
			},
		}

		rec, env := perform(t, engine, http.MethodGet, "/api/v1/workflows?status=Archived", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeValidation, env.Code)
	})
}

func TestGetProgress(t *testing.T) {
	engine := &mockEngine{
		getProgressFunc: func(ctx context.Context, workflowID int64) (*domainwf.Progress, error) {
			return &domainwf.Progress{
				WorkflowID:         workflowID,
				TotalSteps:         8,
				CompletedSteps:     2,
				ProgressPercentage: 25,
				OnTrack:            true,
			}, nil
		},
	}

	rec, env := perform(t, engine, http.MethodGet, "/api/v1/workflows/42/progress", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var progress domainwf.Progress
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, int64(42), progress.WorkflowID)
	assert.Equal(t, 25, progress.ProgressPercentage)
	assert.True(t, progress.OnTrack)
}

func TestStepTransitions(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		rec, env := perform(t, &mockEngine{}, http.MethodPost, "/api/v1/workflows/42/steps/3/start", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result workflow.StepResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, entity.StepInProgress, result.Step.Status)
	})

	t.Run("complete out of order", func(t *testing.T) {
		engine := &mockEngine{
			completeStepFunc: func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error) {
				return nil, fmt.Errorf("%w: cannot complete from Pending", domainwf.ErrInvalidTransition)
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/steps/3/complete", nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, CodeInvalidTransition, env.Code)
	})

	t.Run("skip carries reason", func(t *testing.T) {
		var gotReason string
		engine := &mockEngine{
			skipStepFunc: func(ctx context.Context, workflowID, stepID int64, reason string) (*workflow.StepResult, error) {
				gotReason = reason
				return &workflow.StepResult{
					Step: &entity.StepRecord{ID: stepID, Status: entity.StepSkipped, SkipReason: reason},
				}, nil
			},
		}

		rec, _ := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/steps/3/skip", SkipStepRequest{
			Reason: "Laptop already provisioned",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Laptop already provisioned", gotReason)
	})

	t.Run("blank skip reason rejected", func(t *testing.T) {
		engine := &mockEngine{
			skipStepFunc: func(ctx context.Context, workflowID, stepID int64, reason string) (*workflow.StepResult, error) {
				return nil, fmt.Errorf("%w: skip reason is required", domainwf.ErrValidation)
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/steps/3/skip", SkipStepRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeValidation, env.Code)
	})

	t.Run("block carries cause", func(t *testing.T) {
		var gotCause string
		engine := &mockEngine{
			blockStepFunc: func(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error) {
				gotCause = cause
				return &workflow.StepResult{
					Step: &entity.StepRecord{ID: stepID, Status: entity.StepBlocked, FailureCause: cause},
				}, nil
			},
		}

		rec, _ := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/steps/3/block", StepCauseRequest{
			Cause: "Vendor backorder",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Vendor backorder", gotCause)
	})

	t.Run("requeue", func(t *testing.T) {
		rec, env := perform(t, &mockEngine{}, http.MethodPost, "/api/v1/workflows/42/steps/3/requeue", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result workflow.StepResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, entity.StepPending, result.Step.Status)
	})

	t.Run("unknown step", func(t *testing.T) {
		engine := &mockEngine{
			startStepFunc: func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error) {
				return nil, fmt.Errorf("%w: step %d", workflow.ErrNotFound, stepID)
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/steps/999/start", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, CodeNotFound, env.Code)
	})
}

func TestRaiseException(t *testing.T) {
	var gotInput workflow.RaiseExceptionInput
	engine := &mockEngine{
		raiseExceptionFunc: func(ctx context.Context, workflowID int64, in workflow.RaiseExceptionInput) (*entity.ExceptionRecord, error) {
			gotInput = in
			return &entity.ExceptionRecord{ID: 5, WorkflowID: workflowID, Title: in.Title, Severity: in.Severity}, nil
		},
	}

	rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/exceptions", RaiseExceptionRequest{
		Title:       "Background check delayed",
		Description: "Provider SLA breached",
		Severity:    "High",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Background check delayed", gotInput.Title)
	assert.Equal(t, entity.SeverityHigh, gotInput.Severity)

	var exception entity.ExceptionRecord
	require.NoError(t, json.Unmarshal(env.Data, &exception))
	assert.Equal(t, int64(5), exception.ID)
}

func TestResolveException(t *testing.T) {
	t.Run("resolves with actor and note", func(t *testing.T) {
		var gotActor, gotNote string
		engine := &mockEngine{
			resolveExceptionFunc: func(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error) {
				gotActor, gotNote = actor, note
				return &entity.ExceptionRecord{
					ID:               exceptionID,
					WorkflowID:       workflowID,
					ResolutionStatus: entity.ResolutionResolved,
					ResolvedBy:       actor,
				}, nil
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/exceptions/5/resolve", ResolveExceptionRequest{
			ResolvedBy:     "hr-ops@example.com",
			ResolutionNote: "Provider confirmed completion",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hr-ops@example.com", gotActor)
		assert.Equal(t, "Provider confirmed completion", gotNote)

		var exception entity.ExceptionRecord
		require.NoError(t, json.Unmarshal(env.Data, &exception))
		assert.Equal(t, entity.ResolutionResolved, exception.ResolutionStatus)
	})

	t.Run("already resolved", func(t *testing.T) {
		engine := &mockEngine{
			resolveExceptionFunc: func(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error) {
				return nil, fmt.Errorf("%w: exception %d already resolved", domainwf.ErrInvalidTransition, exceptionID)
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/exceptions/5/resolve", ResolveExceptionRequest{
			ResolvedBy: "hr-ops@example.com",
		})

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, CodeInvalidTransition, env.Code)
	})
}

func TestListExceptions_EmptyIsArray(t *testing.T) {
	rec, _ := perform(t, &mockEngine{}, http.MethodGet, "/api/v1/workflows/42/exceptions", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestDocuments(t *testing.T) {
	t.Run("generate summary", func(t *testing.T) {
		rec, env := perform(t, &mockEngine{}, http.MethodPost, "/api/v1/workflows/42/documents/summary", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var doc entity.DocumentRecord
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		assert.Equal(t, entity.DocumentTypeSummary, doc.DocumentType)
		assert.Equal(t, entity.DocumentGenerated, doc.Status)
	})

	t.Run("generation persistence failure", func(t *testing.T) {
		engine := &mockEngine{
			generateSummaryFunc: func(ctx context.Context, workflowID int64) (*entity.DocumentRecord, error) {
				return nil, fmt.Errorf("%w: create document: database is locked", workflow.ErrPersistence)
			},
		}

		rec, env := perform(t, engine, http.MethodPost, "/api/v1/workflows/42/documents/summary", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, CodePersistence, env.Code)
	})

	t.Run("sign", func(t *testing.T) {
		rec, env := perform(t, &mockEngine{}, http.MethodPost, "/api/v1/workflows/42/documents/9/sign", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var doc entity.DocumentRecord
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		assert.Equal(t, entity.DocumentSigned, doc.Status)
	})

	t.Run("list empty is an array", func(t *testing.T) {
		rec, _ := perform(t, &mockEngine{}, http.MethodGet, "/api/v1/workflows/42/documents", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})
}

func TestListTemplates(t *testing.T) {
	engine := &mockEngine{
		templatesFunc: func() []*port.WorkflowTemplate {
			return []*port.WorkflowTemplate{
				{
					ID:           "engineering-default",
					Name:         "Engineering Default",
					ExpectedDays: 30,
					Stages: []port.StageTemplate{
						{
							Stage: entity.StagePreBoarding,
							Steps: []port.StepTemplate{
								{Name: "Collect signed offer", DueInDays: 3},
							},
						},
					},
				},
			}
		},
	}

	rec, env := perform(t, engine, http.MethodGet, "/api/v1/templates", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var templates []TemplateResponse
	require.NoError(t, json.Unmarshal(env.Data, &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "engineering-default", templates[0].ID)
	assert.Equal(t, 30, templates[0].ExpectedDays)
	require.Len(t, templates[0].Stages, 1)
	assert.Equal(t, "pre-boarding", templates[0].Stages[0].Stage)
}
