package entity

// Submission status constants
const (
	StatusSubmitted = "submitted"
)

// Acknowledgement status constants
const (
	AckStatusPending = "PENDING"
	AckStatusShown   = "SHOWN"
)

// Fallback strings used when an invitation arrives without inviter/company
// parameters. The resolver configuration may override them.
const (
	DefaultInviterName = "Sarah Chen"
	DefaultCompanyName = "ProjectFlow Solutions"
)
