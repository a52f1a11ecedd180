package entity

// StepStatus is the lifecycle status of a single onboarding step.
type StepStatus string

const (
	StepPending    StepStatus = "Pending"
	StepInProgress StepStatus = "InProgress"
	StepCompleted  StepStatus = "Completed"
	StepSkipped    StepStatus = "Skipped"
	StepBlocked    StepStatus = "Blocked"
	StepFailed     StepStatus = "Failed"
)

var validStepStatuses = map[StepStatus]bool{
	StepPending:    true,
	StepInProgress: true,
	StepCompleted:  true,
	StepSkipped:    true,
	StepBlocked:    true,
	StepFailed:     true,
}

// terminalStepStatuses are statuses that end a step's lifecycle.
// Blocked and Failed are recoverable and therefore not terminal.
var terminalStepStatuses = map[StepStatus]bool{
	StepCompleted: true,
	StepSkipped:   true,
}

// String returns the string representation of the status
func (s StepStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined constants
func (s StepStatus) IsValid() bool {
	return validStepStatuses[s]
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s StepStatus) IsTerminal() bool {
	return terminalStepStatuses[s]
}

// WorkflowStatus is the lifecycle status of a workflow instance.
type WorkflowStatus string

const (
	WorkflowActive    WorkflowStatus = "Active"
	WorkflowCompleted WorkflowStatus = "Completed"
)

// String returns the string representation of the status
func (s WorkflowStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined constants
func (s WorkflowStatus) IsValid() bool {
	return s == WorkflowActive || s == WorkflowCompleted
}

// Severity grades how urgent an exception is.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is one of the defined constants
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the severity's position for ordering, lowest first.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() >= min.Rank()
}

// ResolutionStatus tracks whether an exception has been dealt with.
type ResolutionStatus string

const (
	ResolutionOpen     ResolutionStatus = "Open"
	ResolutionResolved ResolutionStatus = "Resolved"
)

// String returns the string representation of the status
func (s ResolutionStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined constants
func (s ResolutionStatus) IsValid() bool {
	return s == ResolutionOpen || s == ResolutionResolved
}

// DocumentStatus tracks a generated document's signature state.
type DocumentStatus string

const (
	DocumentGenerated DocumentStatus = "Generated"
	DocumentSigned    DocumentStatus = "Signed"
)

// String returns the string representation of the status
func (s DocumentStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the defined constants
func (s DocumentStatus) IsValid() bool {
	return s == DocumentGenerated || s == DocumentSigned
}
