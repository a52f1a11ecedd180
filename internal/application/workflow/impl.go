package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/application/dispatcher"
	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/event"
	domainwf "github.com/cocomgroup/hrms-onboarding/internal/domain/workflow"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// engineImpl is the concrete implementation of Engine
type engineImpl struct {
	workflowRepo  port.WorkflowRepository
	stepRepo      port.StepRepository
	exceptionRepo port.ExceptionRepository
	documentRepo  port.DocumentRepository
	templates     port.TemplateRegistry
	txManager     port.TransactionManager
	dispatcher    dispatcher.Dispatcher

	renderer port.SummaryRenderer
	storage  port.FileStorage
	folders  port.FolderManager

	clock func() time.Time
	locks *workflowLocks
}

// Repositories bundles the persistence ports the engine needs
type Repositories struct {
	Workflows  port.WorkflowRepository
	Steps      port.StepRepository
	Exceptions port.ExceptionRepository
	Documents  port.DocumentRepository
}

// EngineOption configures the workflow engine
type EngineOption func(*engineImpl)

// WithDispatcher sets the event dispatcher for emitting events
func WithDispatcher(d dispatcher.Dispatcher) EngineOption {
	return func(e *engineImpl) {
		e.dispatcher = d
	}
}

// WithSummaryStore wires the renderer and storage used for summary documents
func WithSummaryStore(renderer port.SummaryRenderer, storage port.FileStorage, folders port.FolderManager) EngineOption {
	return func(e *engineImpl) {
		e.renderer = renderer
		e.storage = storage
		e.folders = folders
	}
}

// WithClock overrides the time source, used in tests
func WithClock(clock func() time.Time) EngineOption {
	return func(e *engineImpl) {
		e.clock = clock
	}
}

// NewEngine creates a new onboarding workflow engine
func NewEngine(
	repos Repositories,
	templates port.TemplateRegistry,
	txManager port.TransactionManager,
	opts ...EngineOption,
) Engine {
	e := &engineImpl{
		workflowRepo:  repos.Workflows,
		stepRepo:      repos.Steps,
		exceptionRepo: repos.Exceptions,
		documentRepo:  repos.Documents,
		templates:     templates,
		txManager:     txManager,
		clock:         time.Now,
		locks:         newWorkflowLocks(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// CreateWorkflow provisions a workflow from a template for an employee
func (e *engineImpl) CreateWorkflow(ctx context.Context, employeeID, templateID string, attrs map[string]interface{}) (*WorkflowDetail, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee ID is required", domainwf.ErrValidation)
	}

	tpl, ok := e.templates.Get(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	now := e.clock()
	w := &entity.WorkflowInstance{
		EmployeeID:   employeeID,
		TemplateID:   tpl.ID,
		Status:       entity.WorkflowActive,
		CurrentStage: entity.StagePreBoarding,
		ExpectedDays: tpl.ExpectedDays,
		StartedAt:    now,
	}

	var steps []*entity.StepRecord

	err := e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := e.workflowRepo.GetActiveByEmployee(txCtx, employeeID)
		if err != nil {
			return persistErr("check active workflow", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: employee %s has workflow %d", ErrDuplicateWorkflow, employeeID, existing.ID)
		}

		if err := e.workflowRepo.Create(txCtx, w); err != nil {
			return persistErr("create workflow", err)
		}

		steps = e.templates.Provision(tpl, attrs, now)
		for _, s := range steps {
			s.WorkflowID = w.ID
		}
		if len(steps) > 0 {
			if err := e.stepRepo.CreateBatch(txCtx, steps); err != nil {
				return persistErr("create steps", err)
			}
		}

		// Conditional steps may leave leading stages empty, so the
		// starting stage is the first one that actually has steps.
		w.CurrentStage = domainwf.AdvanceStage(w.CurrentStage, steps)
		w.ProgressPercentage = domainwf.Percentage(steps)
		if err := e.workflowRepo.Update(txCtx, w); err != nil {
			return persistErr("store initial stage", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeWorkflowCreated, w.ID, w.EmployeeID, map[string]interface{}{
		"template_id":   tpl.ID,
		"step_count":    len(steps),
		"current_stage": w.CurrentStage.String(),
	}))

	return &WorkflowDetail{
		Workflow: w,
		Stages:   groupStages(steps),
		Progress: domainwf.CalculateProgress(w, steps, nil, now),
	}, nil
}

// GetWorkflow returns the workflow with its steps grouped by stage plus
// the exception and document ledgers
func (e *engineImpl) GetWorkflow(ctx context.Context, workflowID int64) (*WorkflowDetail, error) {
	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	steps, err := e.stepRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load steps", err)
	}

	exceptions, err := e.exceptionRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load exceptions", err)
	}

	documents, err := e.documentRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load documents", err)
	}

	return &WorkflowDetail{
		Workflow:   w,
		Stages:     groupStages(steps),
		Progress:   domainwf.CalculateProgress(w, steps, exceptions, e.clock()),
		Exceptions: exceptions,
		Documents:  documents,
	}, nil
}

// ListWorkflows returns workflows matching the filter
func (e *engineImpl) ListWorkflows(ctx context.Context, filter port.WorkflowFilter) ([]*entity.WorkflowInstance, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: invalid workflow status %q", domainwf.ErrValidation, filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	workflows, err := e.workflowRepo.List(ctx, filter)
	if err != nil {
		return nil, persistErr("list workflows", err)
	}
	return workflows, nil
}

// GetProgress recomputes the progress snapshot from stored steps
func (e *engineImpl) GetProgress(ctx context.Context, workflowID int64) (*domainwf.Progress, error) {
	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	return e.snapshot(ctx, w)
}

// StartStep moves a pending step into execution
func (e *engineImpl) StartStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error) {
	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerStart,
		target:  entity.StepInProgress,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.Start(ctx, step, now)
		},
	})
}

// CompleteStep finishes an in-progress step
func (e *engineImpl) CompleteStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error) {
	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerComplete,
		target:  entity.StepCompleted,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.Complete(ctx, step, now)
		},
	})
}

// SkipStep marks a step not applicable, the reason is mandatory
func (e *engineImpl) SkipStep(ctx context.Context, workflowID, stepID int64, reason string) (*StepResult, error) {
	// The reason is validated before the idempotency check so a blank
	// reason is rejected even when the step is already skipped.
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: skip reason is required", domainwf.ErrValidation)
	}

	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerSkip,
		target:  entity.StepSkipped,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.Skip(ctx, step, reason, now)
		},
	})
}

// MarkStepBlocked parks a step on an external obstacle and raises an exception
func (e *engineImpl) MarkStepBlocked(ctx context.Context, workflowID, stepID int64, cause string) (*StepResult, error) {
	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerBlock,
		target:  entity.StepBlocked,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.MarkBlocked(ctx, step, cause)
		},
		exception: &autoException{
			severity: entity.SeverityMedium,
			title:    "Step blocked",
		},
	})
}

// MarkStepFailed records a step failure and raises an exception
func (e *engineImpl) MarkStepFailed(ctx context.Context, workflowID, stepID int64, cause string) (*StepResult, error) {
	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerFail,
		target:  entity.StepFailed,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.MarkFailed(ctx, step, cause)
		},
		exception: &autoException{
			severity: entity.SeverityHigh,
			title:    "Step failed",
		},
	})
}

// RequeueStep returns a blocked or failed step to the pending pool
func (e *engineImpl) RequeueStep(ctx context.Context, workflowID, stepID int64) (*StepResult, error) {
	return e.transitionStep(ctx, workflowID, stepID, stepCommand{
		trigger: domainwf.TriggerRequeue,
		target:  entity.StepPending,
		apply: func(ctx context.Context, step *entity.StepRecord, now time.Time) error {
			return domainwf.Requeue(ctx, step)
		},
	})
}

// RaiseException records a manual exception against the workflow
func (e *engineImpl) RaiseException(ctx context.Context, workflowID int64, in RaiseExceptionInput) (*entity.ExceptionRecord, error) {
	unlock := e.locks.lock(workflowID)
	defer unlock()

	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: exception title is required", domainwf.ErrValidation)
	}
	if !in.Severity.IsValid() {
		return nil, fmt.Errorf("%w: invalid severity %q", domainwf.ErrValidation, in.Severity)
	}
	if in.StepID != nil {
		if _, err := e.loadStep(ctx, w.ID, *in.StepID); err != nil {
			return nil, err
		}
	}

	ex := &entity.ExceptionRecord{
		WorkflowID:       w.ID,
		StepID:           in.StepID,
		Title:            title,
		Description:      in.Description,
		Severity:         in.Severity,
		ResolutionStatus: entity.ResolutionOpen,
	}

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.exceptionRepo.Create(txCtx, ex); err != nil {
			return persistErr("create exception", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeExceptionRaised, w.ID, w.EmployeeID, map[string]interface{}{
		"exception_id": ex.ID,
		"severity":     ex.Severity.String(),
		"title":        ex.Title,
	}))

	return ex, nil
}

// ResolveException closes an open exception with actor and note
func (e *engineImpl) ResolveException(ctx context.Context, workflowID, exceptionID int64, actor, note string) (*entity.ExceptionRecord, error) {
	unlock := e.locks.lock(workflowID)
	defer unlock()

	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, fmt.Errorf("%w: resolving actor is required", domainwf.ErrValidation)
	}

	ex, err := e.exceptionRepo.GetByID(ctx, exceptionID)
	if err != nil {
		return nil, persistErr("load exception", err)
	}
	if ex == nil || ex.WorkflowID != w.ID {
		return nil, fmt.Errorf("%w: exception %d", ErrNotFound, exceptionID)
	}
	if ex.ResolutionStatus == entity.ResolutionResolved {
		return nil, fmt.Errorf("%w: exception %d already resolved", domainwf.ErrInvalidTransition, exceptionID)
	}

	now := e.clock()
	ex.ResolutionStatus = entity.ResolutionResolved
	ex.ResolvedBy = actor
	ex.ResolutionNote = strings.TrimSpace(note)
	ex.ResolvedAt = &now

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.exceptionRepo.Update(txCtx, ex); err != nil {
			return persistErr("update exception", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeExceptionResolved, w.ID, w.EmployeeID, map[string]interface{}{
		"exception_id": ex.ID,
		"resolved_by":  actor,
	}))

	return ex, nil
}

// ListExceptions returns all exceptions of a workflow, open first
func (e *engineImpl) ListExceptions(ctx context.Context, workflowID int64) ([]*entity.ExceptionRecord, error) {
	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	exceptions, err := e.exceptionRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load exceptions", err)
	}
	return exceptions, nil
}

// GenerateSummaryDocument renders and stores the onboarding summary workbook
func (e *engineImpl) GenerateSummaryDocument(ctx context.Context, workflowID int64) (*entity.DocumentRecord, error) {
	unlock := e.locks.lock(workflowID)
	defer unlock()

	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	// Idempotent: a second request returns the existing record.
	existing, err := e.documentRepo.GetByType(ctx, w.ID, entity.DocumentTypeSummary)
	if err != nil {
		return nil, persistErr("load document", err)
	}
	if existing != nil {
		return existing, nil
	}

	if e.renderer == nil || e.storage == nil || e.folders == nil {
		return nil, fmt.Errorf("summary generation is not configured")
	}

	steps, err := e.stepRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load steps", err)
	}
	exceptions, err := e.exceptionRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load exceptions", err)
	}

	content, err := e.renderer.RenderSummary(ctx, w, steps, exceptions)
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}

	folderName := strconv.FormatInt(w.ID, 10)
	if _, err := e.folders.CreateFolder(ctx, folderName); err != nil {
		return nil, fmt.Errorf("create document folder: %w", err)
	}

	fileName := fmt.Sprintf("onboarding_summary_%d.xlsx", w.ID)
	relPath := filepath.Join(folderName, fileName)
	if err := e.storage.Save(ctx, relPath, content); err != nil {
		return nil, fmt.Errorf("save summary file: %w", err)
	}

	doc := &entity.DocumentRecord{
		WorkflowID:    w.ID,
		DocumentName:  fileName,
		DocumentType:  entity.DocumentTypeSummary,
		FileType:      "xlsx",
		FileSizeBytes: int64(len(content)),
		FilePath:      e.storage.GetFullPath(relPath),
		Status:        entity.DocumentGenerated,
	}

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.documentRepo.Create(txCtx, doc); err != nil {
			return persistErr("create document", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeDocumentGenerated, w.ID, w.EmployeeID, map[string]interface{}{
		"document_id":   doc.ID,
		"document_type": doc.DocumentType,
		"file_path":     doc.FilePath,
	}))

	return doc, nil
}

// SignDocument marks a generated document as signed
func (e *engineImpl) SignDocument(ctx context.Context, workflowID, documentID int64) (*entity.DocumentRecord, error) {
	unlock := e.locks.lock(workflowID)
	defer unlock()

	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	doc, err := e.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, persistErr("load document", err)
	}
	if doc == nil || doc.WorkflowID != w.ID {
		return nil, fmt.Errorf("%w: document %d", ErrNotFound, documentID)
	}

	// Signing is terminal, retrying returns the record unchanged.
	if doc.Status == entity.DocumentSigned {
		return doc, nil
	}

	now := e.clock()
	doc.Status = entity.DocumentSigned
	doc.SignedAt = &now

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := e.documentRepo.Update(txCtx, doc); err != nil {
			return persistErr("update document", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeDocumentSigned, w.ID, w.EmployeeID, map[string]interface{}{
		"document_id": doc.ID,
	}))

	return doc, nil
}

// ListDocuments returns all documents recorded for a workflow
func (e *engineImpl) ListDocuments(ctx context.Context, workflowID int64) ([]*entity.DocumentRecord, error) {
	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	docs, err := e.documentRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load documents", err)
	}
	return docs, nil
}

// Templates returns the registered onboarding templates
func (e *engineImpl) Templates() []*port.WorkflowTemplate {
	return e.templates.List()
}

// stepCommand describes one step transition for transitionStep
type stepCommand struct {
	trigger   domainwf.Trigger
	target    entity.StepStatus
	apply     func(ctx context.Context, step *entity.StepRecord, now time.Time) error
	exception *autoException
}

// autoException is raised alongside blocking and failing transitions
type autoException struct {
	severity entity.Severity
	title    string
}

// transitionStep runs one step mutation under the workflow lock: apply the
// domain transition, persist step and workflow, then emit events after commit.
func (e *engineImpl) transitionStep(ctx context.Context, workflowID, stepID int64, cmd stepCommand) (*StepResult, error) {
	unlock := e.locks.lock(workflowID)
	defer unlock()

	w, err := e.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	step, err := e.loadStep(ctx, w.ID, stepID)
	if err != nil {
		return nil, err
	}

	// Retrying a transition that already landed returns the stored state.
	if step.Status == cmd.target {
		progress, err := e.snapshot(ctx, w)
		if err != nil {
			return nil, err
		}
		return &StepResult{Step: step, Progress: progress, AlreadyInState: true}, nil
	}

	now := e.clock()
	prevStatus := step.Status
	prevStage := w.CurrentStage

	var (
		steps        []*entity.StepRecord
		exceptions   []*entity.ExceptionRecord
		raised       *entity.ExceptionRecord
		completedNow bool
	)

	err = e.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := cmd.apply(txCtx, step, now); err != nil {
			return err
		}
		if err := e.stepRepo.Update(txCtx, step); err != nil {
			return persistErr("update step", err)
		}

		if cmd.exception != nil {
			raised = &entity.ExceptionRecord{
				WorkflowID:       w.ID,
				StepID:           &step.ID,
				Title:            fmt.Sprintf("%s: %s", cmd.exception.title, step.Name),
				Description:      step.FailureCause,
				Severity:         cmd.exception.severity,
				ResolutionStatus: entity.ResolutionOpen,
			}
			if err := e.exceptionRepo.Create(txCtx, raised); err != nil {
				return persistErr("create exception", err)
			}
		}

		var err error
		steps, err = e.stepRepo.GetByWorkflowID(txCtx, w.ID)
		if err != nil {
			return persistErr("load steps", err)
		}

		w.CurrentStage = domainwf.AdvanceStage(w.CurrentStage, steps)
		w.ProgressPercentage = domainwf.Percentage(steps)
		if w.Status == entity.WorkflowActive && domainwf.AllStepsTerminal(steps) {
			w.Status = entity.WorkflowCompleted
			w.CompletedAt = &now
			completedNow = true
		}
		if err := e.workflowRepo.Update(txCtx, w); err != nil {
			return persistErr("update workflow", err)
		}

		exceptions, err = e.exceptionRepo.GetByWorkflowID(txCtx, w.ID)
		if err != nil {
			return persistErr("load exceptions", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, event.NewEvent(event.TypeStepTransitioned, w.ID, w.EmployeeID, map[string]interface{}{
		"step_id":     step.ID,
		"step_name":   step.Name,
		"trigger":     cmd.trigger.String(),
		"from_status": prevStatus.String(),
		"to_status":   step.Status.String(),
	}))
	if raised != nil {
		e.emit(ctx, event.NewEvent(event.TypeExceptionRaised, w.ID, w.EmployeeID, map[string]interface{}{
			"exception_id": raised.ID,
			"severity":     raised.Severity.String(),
			"title":        raised.Title,
			"step_id":      step.ID,
		}))
	}
	if w.CurrentStage != prevStage {
		e.emit(ctx, event.NewEvent(event.TypeStageAdvanced, w.ID, w.EmployeeID, map[string]interface{}{
			"from_stage": prevStage.String(),
			"to_stage":   w.CurrentStage.String(),
		}))
	}
	if completedNow {
		e.emit(ctx, event.NewEvent(event.TypeWorkflowCompleted, w.ID, w.EmployeeID, map[string]interface{}{
			"completed_at": now.Format(time.RFC3339),
		}))
	}

	return &StepResult{
		Step:     step,
		Progress: domainwf.CalculateProgress(w, steps, exceptions, now),
	}, nil
}

// snapshot loads steps and exceptions and computes a fresh progress view
func (e *engineImpl) snapshot(ctx context.Context, w *entity.WorkflowInstance) (*domainwf.Progress, error) {
	steps, err := e.stepRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load steps", err)
	}
	exceptions, err := e.exceptionRepo.GetByWorkflowID(ctx, w.ID)
	if err != nil {
		return nil, persistErr("load exceptions", err)
	}
	return domainwf.CalculateProgress(w, steps, exceptions, e.clock()), nil
}

func (e *engineImpl) loadWorkflow(ctx context.Context, id int64) (*entity.WorkflowInstance, error) {
	w, err := e.workflowRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr("load workflow", err)
	}
	if w == nil {
		return nil, fmt.Errorf("%w: workflow %d", ErrNotFound, id)
	}
	return w, nil
}

func (e *engineImpl) loadStep(ctx context.Context, workflowID, stepID int64) (*entity.StepRecord, error) {
	step, err := e.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, persistErr("load step", err)
	}
	if step == nil || step.WorkflowID != workflowID {
		return nil, fmt.Errorf("%w: step %d", ErrNotFound, stepID)
	}
	return step, nil
}

func (e *engineImpl) emit(ctx context.Context, evt *event.Event) {
	if e.dispatcher != nil {
		e.dispatcher.DispatchAsync(ctx, evt)
	}
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
