// Package wizard implements the onboarding state machine: the role-keyed
// step catalog, the accumulated form state, the per-step validation gates
// and the session that drives advance/retreat/complete transitions.
package wizard

import "github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"

// StepID identifies a step within a role's sequence
type StepID string

const (
	StepWelcome     StepID = "welcome"
	StepPersonal    StepID = "personal"
	StepCompany     StepID = "company"
	StepBusiness    StepID = "business"
	StepPreferences StepID = "preferences"
	StepServices    StepID = "services"
	StepBOQ         StepID = "boq"
	StepComplete    StepID = "complete"
)

// String returns the string representation of the step id
func (s StepID) String() string {
	return string(s)
}

// StepDefinition declares one step of an onboarding sequence. Static
// configuration, no mutable state.
type StepDefinition struct {
	ID          StepID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Validator   string `json:"-"`
}

var customerSteps = []StepDefinition{
	{StepWelcome, "Welcome", "You have been invited to ProjectFlow", ValidatorAlways},
	{StepPersonal, "Personal Information", "Tell us about yourself", ValidatorPersonal},
	{StepCompany, "Company Details", "Tell us about your organization", ValidatorOrganization},
	{StepPreferences, "Preferences", "How will you use ProjectFlow", ValidatorPrimaryUse},
	{StepComplete, "All Set", "Review and finish your registration", ValidatorAlways},
}

var vendorSteps = []StepDefinition{
	{StepWelcome, "Welcome", "You have been invited as a vendor partner", ValidatorAlways},
	{StepPersonal, "Personal Information", "Tell us about yourself", ValidatorPersonal},
	{StepBusiness, "Business Details", "Tell us about your business", ValidatorOrganization},
	{StepServices, "Services Offered", "What services do you provide", ValidatorPrimaryUse},
	{StepBOQ, "Bill of Quantities", "Prepare your itemized quotation", ValidatorQuotation},
	{StepComplete, "All Set", "Review and submit your quotation", ValidatorAlways},
}

// StepsFor returns the fixed ordered step sequence for a role. The result
// is a copy; the catalog itself is never mutated.
func StepsFor(role entity.Role) []StepDefinition {
	var steps []StepDefinition
	switch role {
	case entity.RoleVendor:
		steps = vendorSteps
	default:
		steps = customerSteps
	}
	out := make([]StepDefinition, len(steps))
	copy(out, steps)
	return out
}
