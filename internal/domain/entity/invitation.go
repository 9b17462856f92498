package entity

import "strings"

// PreviewIDPrefix marks invitations synthesized by the manual preview
// trigger rather than resolved from a navigation context.
const PreviewIDPrefix = "preview-"

// InvitationDescriptor is the resolved identity/role context that activates
// an onboarding session. Produced once at entry and immutable for the life
// of the session; when no invitation is present the wizard does not activate.
type InvitationDescriptor struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	InviterName string `json:"inviter_name"`
	CompanyName string `json:"company_name"`
}

// IsPreview returns true if the invitation was synthesized locally instead
// of being resolved from an inbound navigation request.
func (d *InvitationDescriptor) IsPreview() bool {
	return strings.HasPrefix(d.ID, PreviewIDPrefix)
}
