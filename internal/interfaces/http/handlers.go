package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/application/workflow"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	domainwf "github.com/cocomgroup/hrms-onboarding/internal/domain/workflow"
)

// Stable machine-readable error codes carried in the response envelope
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeTemplateNotFound  = "TEMPLATE_NOT_FOUND"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeDuplicateWorkflow = "DUPLICATE_WORKFLOW"
	CodePersistence       = "PERSISTENCE_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	engine workflow.Engine
	logger Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(engine workflow.Engine, logger Logger) *Handlers {
	return &Handlers{
		engine: engine,
		logger: logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateWorkflowRequest is the payload for creating a workflow
type CreateWorkflowRequest struct {
	EmployeeID string                 `json:"employee_id"`
	TemplateID string                 `json:"template_id"`
	Attributes map[string]interface{} `json:"attributes"`
}

// ListWorkflowsRequest represents query parameters for listing workflows
type ListWorkflowsRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status"`
	Limit      int    `form:"limit"`
	Offset     int    `form:"offset"`
}

// SkipStepRequest carries the mandatory skip reason
type SkipStepRequest struct {
	Reason string `json:"reason"`
}

// StepCauseRequest carries the cause for blocking or failing a step
type StepCauseRequest struct {
	Cause string `json:"cause"`
}

// RaiseExceptionRequest is the payload for a manual exception
type RaiseExceptionRequest struct {
	StepID      *int64 `json:"step_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ResolveExceptionRequest carries the resolving actor and note
type ResolveExceptionRequest struct {
	ResolvedBy     string `json:"resolved_by"`
	ResolutionNote string `json:"resolution_note"`
}

// TemplateResponse represents an onboarding template in API responses
type TemplateResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	ExpectedDays int                     `json:"expected_days"`
	Stages       []TemplateStageResponse `json:"stages"`
}

// TemplateStageResponse groups template steps by stage
type TemplateStageResponse struct {
	Stage string                 `json:"stage"`
	Steps []TemplateStepResponse `json:"steps"`
}

// TemplateStepResponse represents one template step
type TemplateStepResponse struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	IntegrationType string `json:"integration_type,omitempty"`
	DueInDays       int    `json:"due_in_days,omitempty"`
	AppliesIf       string `json:"applies_if,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// CreateWorkflow handles POST /api/v1/workflows
func (h *Handlers) CreateWorkflow(c *gin.Context) {
	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid create workflow payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
			Code:    CodeValidation,
		})
		return
	}

	detail, err := h.engine.CreateWorkflow(c.Request.Context(), req.EmployeeID, req.TemplateID, req.Attributes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    normalizeDetail(detail),
	})
}

// ListWorkflows handles GET /api/v1/workflows
func (h *Handlers) ListWorkflows(c *gin.Context) {
	var req ListWorkflowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
			Code:    CodeValidation,
		})
		return
	}

	// Limit and offset defaulting and capping live in the engine.
	workflows, err := h.engine.ListWorkflows(c.Request.Context(), port.WorkflowFilter{
		EmployeeID: req.EmployeeID,
		Status:     entity.WorkflowStatus(req.Status),
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	if workflows == nil {
		workflows = []*entity.WorkflowInstance{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    workflows,
	})
}

// GetWorkflow handles GET /api/v1/workflows/:id
func (h *Handlers) GetWorkflow(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.engine.GetWorkflow(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    normalizeDetail(detail),
	})
}

// GetProgress handles GET /api/v1/workflows/:id/progress
func (h *Handlers) GetProgress(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	progress, err := h.engine.GetProgress(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    progress,
	})
}

// StartStep handles POST /api/v1/workflows/:id/steps/:stepID/start
func (h *Handlers) StartStep(c *gin.Context) {
	h.stepTransition(c, h.engine.StartStep)
}

// CompleteStep handles POST /api/v1/workflows/:id/steps/:stepID/complete
func (h *Handlers) CompleteStep(c *gin.Context) {
	h.stepTransition(c, h.engine.CompleteStep)
}

// RequeueStep handles POST /api/v1/workflows/:id/steps/:stepID/requeue
func (h *Handlers) RequeueStep(c *gin.Context) {
	h.stepTransition(c, h.engine.RequeueStep)
}

// stepTransition runs a bodyless step mutation shared by start, complete
// and requeue
func (h *Handlers) stepTransition(c *gin.Context, op func(ctx context.Context, workflowID, stepID int64) (*workflow.StepResult, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := h.pathID(c, "stepID")
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), id, stepID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// SkipStep handles POST /api/v1/workflows/:id/steps/:stepID/skip
func (h *Handlers) SkipStep(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := h.pathID(c, "stepID")
	if !ok {
		return
	}

	var req SkipStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid skip payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
			Code:    CodeValidation,
		})
		return
	}

	result, err := h.engine.SkipStep(c.Request.Context(), id, stepID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// BlockStep handles POST /api/v1/workflows/:id/steps/:stepID/block
func (h *Handlers) BlockStep(c *gin.Context) {
	h.stepObstacle(c, h.engine.MarkStepBlocked)
}

// FailStep handles POST /api/v1/workflows/:id/steps/:stepID/fail
func (h *Handlers) FailStep(c *gin.Context) {
	h.stepObstacle(c, h.engine.MarkStepFailed)
}

// stepObstacle runs a cause-carrying step mutation shared by block and fail
func (h *Handlers) stepObstacle(c *gin.Context, op func(ctx context.Context, workflowID, stepID int64, cause string) (*workflow.StepResult, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	stepID, ok := h.pathID(c, "stepID")
	if !ok {
		return
	}

	var req StepCauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid step cause payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
			Code:    CodeValidation,
		})
		return
	}

	result, err := op(c.Request.Context(), id, stepID, req.Cause)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// RaiseException handles POST /api/v1/workflows/:id/exceptions
func (h *Handlers) RaiseException(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req RaiseExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid exception payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
			Code:    CodeValidation,
		})
		return
	}

	exception, err := h.engine.RaiseException(c.Request.Context(), id, workflow.RaiseExceptionInput{
		StepID:      req.StepID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    entity.Severity(req.Severity),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    exception,
	})
}

// ListExceptions handles GET /api/v1/workflows/:id/exceptions
func (h *Handlers) ListExceptions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	exceptions, err := h.engine.ListExceptions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if exceptions == nil {
		exceptions = []*entity.ExceptionRecord{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    exceptions,
	})
}

// ResolveException handles POST /api/v1/workflows/:id/exceptions/:exceptionID/resolve
func (h *Handlers) ResolveException(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	exceptionID, ok := h.pathID(c, "exceptionID")
	if !ok {
		return
	}

	var req ResolveExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid resolve payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
			Code:    CodeValidation,
		})
		return
	}

	exception, err := h.engine.ResolveException(c.Request.Context(), id, exceptionID, req.ResolvedBy, req.ResolutionNote)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    exception,
	})
}

// GenerateSummary handles POST /api/v1/workflows/:id/documents/summary
func (h *Handlers) GenerateSummary(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	document, err := h.engine.GenerateSummaryDocument(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    document,
	})
}

// ListDocuments handles GET /api/v1/workflows/:id/documents
func (h *Handlers) ListDocuments(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	documents, err := h.engine.ListDocuments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if documents == nil {
		documents = []*entity.DocumentRecord{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    documents,
	})
}

// SignDocument handles POST /api/v1/workflows/:id/documents/:documentID/sign
func (h *Handlers) SignDocument(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	documentID, ok := h.pathID(c, "documentID")
	if !ok {
		return
	}

	document, err := h.engine.SignDocument(c.Request.Context(), id, documentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    document,
	})
}

// ListTemplates handles GET /api/v1/templates
func (h *Handlers) ListTemplates(c *gin.Context) {
	templates := h.engine.Templates()

	responses := make([]TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		responses = append(responses, toTemplateResponse(tpl))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// normalizeDetail replaces nil ledger slices so clients always receive arrays
func normalizeDetail(detail *workflow.WorkflowDetail) *workflow.WorkflowDetail {
	if detail.Exceptions == nil {
		detail.Exceptions = []*entity.ExceptionRecord{}
	}
	if detail.Documents == nil {
		detail.Documents = []*entity.DocumentRecord{}
	}
	return detail
}

// pathID parses a positive int64 path parameter, responding 400 on failure
func (h *Handlers) pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Error("Invalid path parameter", "name", name, "value", raw)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid " + name + " parameter",
			Code:    CodeValidation,
		})
		return 0, false
	}
	return id, true
}

// respondError translates an engine error into status code and envelope
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, code := classifyError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   err.Error(),
		Code:    code,
	})
}

// classifyError maps the engine's error taxonomy onto HTTP semantics
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domainwf.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, workflow.ErrTemplateNotFound):
		return http.StatusNotFound, CodeTemplateNotFound
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domainwf.ErrInvalidTransition):
		return http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, workflow.ErrDuplicateWorkflow):
		return http.StatusConflict, CodeDuplicateWorkflow
	case errors.Is(err, workflow.ErrPersistence):
		return http.StatusServiceUnavailable, CodePersistence
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// toTemplateResponse converts a registry template to its API shape
func toTemplateResponse(tpl *port.WorkflowTemplate) TemplateResponse {
	resp := TemplateResponse{
		ID:           tpl.ID,
		Name:         tpl.Name,
		ExpectedDays: tpl.ExpectedDays,
		Stages:       make([]TemplateStageResponse, 0, len(tpl.Stages)),
	}

	for _, stage := range tpl.Stages {
		sr := TemplateStageResponse{
			Stage: stage.Stage.String(),
			Steps: make([]TemplateStepResponse, 0, len(stage.Steps)),
		}
		for _, step := range stage.Steps {
			sr.Steps = append(sr.Steps, TemplateStepResponse{
				Name:            step.Name,
				Description:     step.Description,
				IntegrationType: step.IntegrationType,
				DueInDays:       step.DueInDays,
				AppliesIf:       step.AppliesIf,
			})
		}
		resp.Stages = append(resp.Stages, sr)
	}

	return resp
}
