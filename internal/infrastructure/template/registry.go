package template

import (
	"fmt"
	"time"

	"github.com/cocomgroup/hrms-onboarding/internal/application/port"
	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// templatesFile mirrors the YAML layout of the template catalog
type templatesFile struct {
	Templates []templateSpec `mapstructure:"templates"`
}

type templateSpec struct {
	ID           string      `mapstructure:"id"`
	Name         string      `mapstructure:"name"`
	ExpectedDays int         `mapstructure:"expected_days"`
	Stages       []stageSpec `mapstructure:"stages"`
}

type stageSpec struct {
	Stage string     `mapstructure:"stage"`
	Steps []stepSpec `mapstructure:"steps"`
}

type stepSpec struct {
	Name            string `mapstructure:"name"`
	Description     string `mapstructure:"description"`
	IntegrationType string `mapstructure:"integration_type"`
	DueInDays       int    `mapstructure:"due_in_days"`
	AppliesIf       string `mapstructure:"applies_if"`
}

// Registry loads onboarding templates from a YAML catalog and provisions
// step records from them. Conditional steps carry an applies_if expression
// evaluated against the employee attributes at creation time; expressions
// are compiled once at load, so a malformed catalog is rejected at startup.
type Registry struct {
	templates map[string]*port.WorkflowTemplate
	order     []string
	programs  map[string]*vm.Program
	logger    *zap.Logger
}

// NewRegistry reads and validates the template catalog at path
func NewRegistry(path string, logger *zap.Logger) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}

	var file templatesFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalog %s defines no templates", path)
	}

	r := &Registry{
		templates: make(map[string]*port.WorkflowTemplate),
		programs:  make(map[string]*vm.Program),
		logger:    logger,
	}

	for _, spec := range file.Templates {
		tpl, err := r.buildTemplate(spec)
		if err != nil {
			return nil, err
		}
		if _, exists := r.templates[tpl.ID]; exists {
			return nil, fmt.Errorf("duplicate template id %q", tpl.ID)
		}
		r.templates[tpl.ID] = tpl
		r.order = append(r.order, tpl.ID)
	}

	logger.Info("Template catalog loaded",
		zap.String("path", path),
		zap.Int("templates", len(r.order)))

	return r, nil
}

func (r *Registry) buildTemplate(spec templateSpec) (*port.WorkflowTemplate, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("template without an id")
	}
	if spec.ExpectedDays <= 0 {
		return nil, fmt.Errorf("template %q: expected_days must be positive", spec.ID)
	}
	if len(spec.Stages) == 0 {
		return nil, fmt.Errorf("template %q defines no stages", spec.ID)
	}

	tpl := &port.WorkflowTemplate{
		ID:           spec.ID,
		Name:         spec.Name,
		ExpectedDays: spec.ExpectedDays,
	}

	for _, stage := range spec.Stages {
		s := entity.Stage(stage.Stage)
		if !s.IsValid() {
			return nil, fmt.Errorf("template %q: unknown stage %q", spec.ID, stage.Stage)
		}

		st := port.StageTemplate{Stage: s}
		for _, step := range stage.Steps {
			if step.Name == "" {
				return nil, fmt.Errorf("template %q: step without a name in stage %q", spec.ID, stage.Stage)
			}
			if step.AppliesIf != "" {
				if err := r.compile(step.AppliesIf); err != nil {
					return nil, fmt.Errorf("template %q: step %q: invalid applies_if: %w", spec.ID, step.Name, err)
				}
			}
			st.Steps = append(st.Steps, port.StepTemplate{
				Name:            step.Name,
				Description:     step.Description,
				IntegrationType: step.IntegrationType,
				DueInDays:       step.DueInDays,
				AppliesIf:       step.AppliesIf,
			})
		}
		tpl.Stages = append(tpl.Stages, st)
	}

	return tpl, nil
}

func (r *Registry) compile(expression string) error {
	if _, ok := r.programs[expression]; ok {
		return nil
	}
	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return err
	}
	r.programs[expression] = program
	return nil
}

// Get returns the template with the given id
func (r *Registry) Get(templateID string) (*port.WorkflowTemplate, bool) {
	tpl, ok := r.templates[templateID]
	return tpl, ok
}

// List returns all templates in catalog order
func (r *Registry) List() []*port.WorkflowTemplate {
	out := make([]*port.WorkflowTemplate, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// Provision materializes the step records the template prescribes for the
// given employee attributes. Steps whose applies_if evaluates to false are
// left out; an expression that fails to evaluate keeps its step and logs
// a warning.
func (r *Registry) Provision(tpl *port.WorkflowTemplate, attrs map[string]interface{}, startedAt time.Time) []*entity.StepRecord {
	var steps []*entity.StepRecord
	positions := make(map[entity.Stage]int)

	for _, stage := range tpl.Stages {
		for _, st := range stage.Steps {
			if !r.applies(st.AppliesIf, attrs) {
				continue
			}

			rec := &entity.StepRecord{
				Stage:           stage.Stage,
				Position:        positions[stage.Stage],
				Name:            st.Name,
				Description:     st.Description,
				IntegrationType: st.IntegrationType,
				Status:          entity.StepPending,
			}
			if st.DueInDays > 0 {
				due := startedAt.AddDate(0, 0, st.DueInDays)
				rec.DueDate = &due
			}

			steps = append(steps, rec)
			positions[stage.Stage]++
		}
	}

	return steps
}

func (r *Registry) applies(expression string, attrs map[string]interface{}) bool {
	if expression == "" {
		return true
	}

	program, ok := r.programs[expression]
	if !ok {
		return true
	}

	env := attrs
	if env == nil {
		env = map[string]interface{}{}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		r.logger.Warn("Step condition failed to evaluate, keeping step",
			zap.String("expression", expression),
			zap.Error(err))
		return true
	}

	b, ok := out.(bool)
	if !ok {
		r.logger.Warn("Step condition did not produce a boolean, keeping step",
			zap.String("expression", expression))
		return true
	}
	return b
}

// Verify interface compliance
var _ port.TemplateRegistry = (*Registry)(nil)
