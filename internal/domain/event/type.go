package event

// Type identifies the type of domain event
type Type string

const (
	TypeSessionActivated    Type = "session.activated"
	TypeSessionClosed       Type = "session.closed"
	TypeStepAdvanced        Type = "step.advanced"
	TypeStepRetreated       Type = "step.retreated"
	TypeSubmissionCompleted Type = "submission.completed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeSessionActivated,
		TypeSessionClosed,
		TypeStepAdvanced,
		TypeStepRetreated,
		TypeSubmissionCompleted:
		return true
	default:
		return false
	}
}
