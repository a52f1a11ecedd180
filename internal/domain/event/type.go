package event

// Type identifies the type of domain event
type Type string

const (
	TypeWorkflowCreated   Type = "workflow.created"
	TypeWorkflowCompleted Type = "workflow.completed"
	TypeStageAdvanced     Type = "workflow.stage_advanced"
	TypeStepTransitioned  Type = "step.transitioned"
	TypeExceptionRaised   Type = "exception.raised"
	TypeExceptionResolved Type = "exception.resolved"
	TypeDocumentGenerated Type = "document.generated"
	TypeDocumentSigned    Type = "document.signed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeWorkflowCreated,
		TypeWorkflowCompleted,
		TypeStageAdvanced,
		TypeStepTransitioned,
		TypeExceptionRaised,
		TypeExceptionResolved,
		TypeDocumentGenerated,
		TypeDocumentSigned:
		return true
	default:
		return false
	}
}
