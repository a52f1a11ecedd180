package entity

// Stage identifies one of the four ordered onboarding phases.
type Stage string

const (
	StagePreBoarding Stage = "pre-boarding"
	StageDay1        Stage = "day-1"
	StageWeek1       Stage = "week-1"
	StageMonth1      Stage = "month-1"
)

// orderedStages holds all stages in execution order.
var orderedStages = []Stage{
	StagePreBoarding,
	StageDay1,
	StageWeek1,
	StageMonth1,
}

var stageOrder = map[Stage]int{
	StagePreBoarding: 0,
	StageDay1:        1,
	StageWeek1:       2,
	StageMonth1:      3,
}

// Stages returns all stages in execution order.
func Stages() []Stage {
	out := make([]Stage, len(orderedStages))
	copy(out, orderedStages)
	return out
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// IsValid checks if the stage is one of the defined constants
func (s Stage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Order returns the stage's position in the onboarding sequence.
// Unknown stages sort last.
func (s Stage) Order() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return len(orderedStages)
}

// Before reports whether s comes earlier than other in the sequence.
func (s Stage) Before(other Stage) bool {
	return s.Order() < other.Order()
}

// Next returns the stage following s, or false when s is the last stage.
func (s Stage) Next() (Stage, bool) {
	o, ok := stageOrder[s]
	if !ok || o+1 >= len(orderedStages) {
		return "", false
	}
	return orderedStages[o+1], true
}
