package workflow

import (
	"context"
	"fmt"

	"github.com/cocomgroup/hrms-onboarding/internal/domain/entity"
)

// GuardFunc is a function that evaluates whether a transition should be allowed
type GuardFunc func(ctx context.Context) bool

// StateMachineBuilder assembles a transition table for step statuses
type StateMachineBuilder interface {
	// Configure returns a configuration for transitions leaving the given status
	Configure(status entity.StepStatus) StateConfiguration

	// Build creates a machine instance positioned at the given initial status
	Build(initial entity.StepStatus) StateMachine
}

// StateConfiguration configures transitions for a specific status
type StateConfiguration interface {
	// Permit allows a trigger to transition to the target status
	Permit(trigger Trigger, to entity.StepStatus) StateConfiguration

	// PermitIf allows a trigger to transition to the target status if the guard passes
	PermitIf(trigger Trigger, to entity.StepStatus, guard GuardFunc) StateConfiguration
}

// transition represents a status transition with optional guard
type transition struct {
	to    entity.StepStatus
	guard GuardFunc
}

// statusConfig implements StateConfiguration
type statusConfig struct {
	builder     *stateMachineBuilder
	from        entity.StepStatus
	transitions map[Trigger][]transition
}

// stateMachineBuilder implements StateMachineBuilder
type stateMachineBuilder struct {
	configurations map[entity.StepStatus]*statusConfig
}

// stateMachine implements StateMachine
type stateMachine struct {
	current        entity.StepStatus
	configurations map[entity.StepStatus]*statusConfig
}

// NewBuilder creates a new state machine builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{
		configurations: make(map[entity.StepStatus]*statusConfig),
	}
}

// Configure returns a configuration for transitions leaving the given status
func (b *stateMachineBuilder) Configure(status entity.StepStatus) StateConfiguration {
	if !status.IsValid() {
		panic(fmt.Sprintf("invalid status: %s", status))
	}

	config, exists := b.configurations[status]
	if !exists {
		config = &statusConfig{
			builder:     b,
			from:        status,
			transitions: make(map[Trigger][]transition),
		}
		b.configurations[status] = config
	}

	return config
}

// Build creates a machine instance positioned at the given initial status
func (b *stateMachineBuilder) Build(initial entity.StepStatus) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial status: %s", initial))
	}

	// Deep copy configurations so later builder changes cannot leak into
	// machines already handed out
	configsCopy := make(map[entity.StepStatus]*statusConfig)
	for status, config := range b.configurations {
		transitionsCopy := make(map[Trigger][]transition)
		for trigger, transitions := range config.transitions {
			transitionsCopy[trigger] = append([]transition{}, transitions...)
		}
		configsCopy[status] = &statusConfig{
			builder:     nil,
			from:        status,
			transitions: transitionsCopy,
		}
	}

	return &stateMachine{
		current:        initial,
		configurations: configsCopy,
	}
}

// Permit allows a trigger to transition to the target status
func (c *statusConfig) Permit(trigger Trigger, to entity.StepStatus) StateConfiguration {
	return c.PermitIf(trigger, to, nil)
}

// PermitIf allows a trigger to transition to the target status if the guard passes
func (c *statusConfig) PermitIf(trigger Trigger, to entity.StepStatus, guard GuardFunc) StateConfiguration {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target status: %s", to))
	}

	c.transitions[trigger] = append(c.transitions[trigger], transition{
		to:    to,
		guard: guard,
	})

	return c
}

// Status returns the current status
func (m *stateMachine) Status() entity.StepStatus {
	return m.current
}

// CanFire returns true if the trigger is permitted in the current status
func (m *stateMachine) CanFire(trigger Trigger) bool {
	config, exists := m.configurations[m.current]
	if !exists {
		return false
	}

	transitions, exists := config.transitions[trigger]
	return exists && len(transitions) > 0
}

// Fire attempts to execute the trigger, moving to the new status if allowed
func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	config, exists := m.configurations[m.current]
	if !exists {
		return fmt.Errorf("%w: cannot fire trigger %s from status %s (no configuration)", ErrInvalidTransition, trigger, m.current)
	}

	transitions, exists := config.transitions[trigger]
	if !exists || len(transitions) == 0 {
		return fmt.Errorf("%w: cannot fire trigger %s from status %s", ErrInvalidTransition, trigger, m.current)
	}

	// Try each transition in order until one succeeds
	for _, t := range transitions {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from status %s", ErrGuardFailed, trigger, m.current)
}

// PermittedTriggers returns all triggers that can be fired in the current status
func (m *stateMachine) PermittedTriggers() []Trigger {
	config, exists := m.configurations[m.current]
	if !exists {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(config.transitions))
	for trigger := range config.transitions {
		triggers = append(triggers, trigger)
	}

	return triggers
}
