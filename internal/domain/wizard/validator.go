package wizard

import (
	"strings"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/ledger"
)

// Validator names referenced by step definitions
const (
	ValidatorAlways       = "always"
	ValidatorPersonal     = "personal_info"
	ValidatorOrganization = "organization"
	ValidatorPrimaryUse   = "primary_use"
	ValidatorQuotation    = "quotation"
)

// Guard evaluates whether the wizard may advance past a step given the
// accumulated form state and, for vendor sessions, the quotation ledger.
// Guards gate forward navigation and completion only; back navigation is
// always permitted.
type Guard func(form *FormState, boq *ledger.Ledger) bool

var guards = map[string]Guard{
	ValidatorAlways: func(*FormState, *ledger.Ledger) bool {
		return true
	},
	ValidatorPersonal: func(form *FormState, _ *ledger.Ledger) bool {
		return filled(form, FieldFullName) && filled(form, FieldEmail) && filled(form, FieldJobTitle)
	},
	ValidatorOrganization: func(form *FormState, _ *ledger.Ledger) bool {
		return filled(form, FieldOrganizationName) && filled(form, FieldIndustry)
	},
	ValidatorPrimaryUse: func(form *FormState, _ *ledger.Ledger) bool {
		return filled(form, FieldPrimaryUse)
	},
	ValidatorQuotation: func(form *FormState, boq *ledger.Ledger) bool {
		return filled(form, FieldQuotationNumber) && boq != nil && boq.IsComplete()
	},
}

// guardFor returns the guard registered under the given name. Unknown
// names deny, so a misnamed validator can never open a gate.
func guardFor(name string) Guard {
	if g, ok := guards[name]; ok {
		return g
	}
	return func(*FormState, *ledger.Ledger) bool { return false }
}

func filled(form *FormState, name string) bool {
	return strings.TrimSpace(form.Get(name)) != ""
}
