package workflow

import (
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	domainwf "github.com/cocomgroup/hrms-onboarding/internal/domain/workflow"
)

// StageGroup holds the steps of one stage in template order
type StageGroup struct {
	Stage entity.Stage         `json:"stage"`
	Steps []*entity.StepRecord `json:"steps"`
}

// WorkflowDetail is the full read model for a single workflow
type WorkflowDetail struct {
	Workflow   *entity.WorkflowInstance  `json:"workflow"`
	Stages     []StageGroup              `json:"stages"`
	Progress   *domainwf.Progress        `json:"progress"`
	Exceptions []*entity.ExceptionRecord `json:"exceptions"`
	Documents  []*entity.DocumentRecord  `json:"documents"`
}

// StepResult is returned by step mutations. AlreadyInState is set when a
// retried transition found the step already in its target status; the
// step and progress then reflect the stored state unchanged.
type StepResult struct {
	Step           *entity.StepRecord `json:"step"`
	Progress       *domainwf.Progress `json:"progress"`
	AlreadyInState bool               `json:"already_in_state"`
}

// groupStages arranges steps into ordered stage groups, skipping stages
// with no steps.
func groupStages(steps []*entity.StepRecord) []StageGroup {
	grouped := domainwf.GroupByStage(steps)

	groups := make([]StageGroup, 0, len(grouped))
	for _, stage := range entity.Stages() {
		if stageSteps := grouped[stage]; len(stageSteps) > 0 {
			groups = append(groups, StageGroup{Stage: stage, Steps: stageSteps})
		}
	}
	return groups
}
