package port

import (
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// StepTemplate describes one step of an onboarding template
type StepTemplate struct {
	Name            string
	Description     string
	IntegrationType string
	DueInDays       int
	AppliesIf       string
}

// StageTemplate groups the step templates of one stage
type StageTemplate struct {
	Stage entity.Stage
	Steps []StepTemplate
}

// WorkflowTemplate describes a complete onboarding plan for a role
type WorkflowTemplate struct {
	ID           string
	Name         string
	ExpectedDays int
	Stages       []StageTemplate
}

// TemplateRegistry resolves onboarding templates and materializes their steps
type TemplateRegistry interface {
	// Get retrieves a template by ID
	Get(templateID string) (*WorkflowTemplate, bool)

	// List returns all registered templates
	List() []*WorkflowTemplate

	// Provision materializes step records for a new workflow, applying
	// per-employee attributes to conditional steps and due dates
	Provision(tpl *WorkflowTemplate, attrs map[string]interface{}, startedAt time.Time) []*entity.StepRecord
}
