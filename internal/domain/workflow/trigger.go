package workflow

// Trigger represents a command that can cause a step status transition
type Trigger string

const (
	TriggerStart    Trigger = "START"
	TriggerComplete Trigger = "COMPLETE"
	TriggerSkip     Trigger = "SKIP"
	TriggerBlock    Trigger = "BLOCK"
	TriggerFail     Trigger = "FAIL"
	TriggerRequeue  Trigger = "REQUEUE"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
