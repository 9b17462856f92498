package wizard

import "fmt"

// Known form field names. SetField validates against this closed set so a
// typo in a caller cannot silently create an orphan field.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldJobTitle = "jobTitle"
	FieldPhone    = "phone"

	FieldOrganizationName = "organizationName"
	FieldIndustry         = "industry"
	FieldTeamSize         = "teamSize"

	FieldPrimaryUse = "primaryUse"

	FieldQuotationNumber = "quotationNumber"
	FieldValidityPeriod  = "validityPeriod"
	FieldPaymentTerms    = "paymentTerms"
	FieldWarranty        = "warranty"
	FieldAdditionalTerms = "additionalTerms"
)

var knownFields = map[string]bool{
	FieldFullName:         true,
	FieldEmail:            true,
	FieldJobTitle:         true,
	FieldPhone:            true,
	FieldOrganizationName: true,
	FieldIndustry:         true,
	FieldTeamSize:         true,
	FieldPrimaryUse:       true,
	FieldQuotationNumber:  true,
	FieldValidityPeriod:   true,
	FieldPaymentTerms:     true,
	FieldWarranty:         true,
	FieldAdditionalTerms:  true,
}

// profileFields is the personal/company/preference subset assembled into a
// customer submission.
var profileFields = []string{
	FieldFullName, FieldEmail, FieldJobTitle, FieldPhone,
	FieldOrganizationName, FieldIndustry, FieldTeamSize,
	FieldPrimaryUse,
}

// FormState is the flat field map accumulated over a wizard session. Set
// fields persist across step navigation and are never reset mid-session.
type FormState struct {
	values map[string]string
}

// NewFormState creates an empty form state.
func NewFormState() *FormState {
	return &FormState{values: make(map[string]string)}
}

// Set writes a field value. Unknown field names are rejected.
func (f *FormState) Set(name, value string) error {
	if !knownFields[name] {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.values[name] = value
	return nil
}

// Get returns the value of a field, or empty string when unset.
func (f *FormState) Get(name string) string {
	return f.values[name]
}

// Snapshot returns a copy of all set fields.
func (f *FormState) Snapshot() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Profile returns the personal/company/preference subset, including unset
// fields as empty strings so the payload shape is stable.
func (f *FormState) Profile() map[string]string {
	out := make(map[string]string, len(profileFields))
	for _, name := range profileFields {
		out[name] = f.values[name]
	}
	return out
}
