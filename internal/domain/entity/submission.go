package entity

import (
	"time"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/ledger"
)

// QuotationHeader holds the quotation metadata a vendor enters during the
// boq step of the wizard.
type QuotationHeader struct {
	Number          string `json:"number"`
	ValidityPeriod  string `json:"validity_period"`
	PaymentTerms    string `json:"payment_terms"`
	Warranty        string `json:"warranty"`
	AdditionalTerms string `json:"additional_terms"`
}

// Submission is the payload assembled exactly once when a wizard session
// completes. For vendor sessions it carries the full Bill of Quantities;
// for customer sessions only the profile subset is present.
type Submission struct {
	InvitationID string            `json:"invitation_id"`
	Role         Role              `json:"role"`
	Profile      map[string]string `json:"profile"`

	// Vendor only
	Quotation   *QuotationHeader  `json:"quotation,omitempty"`
	Items       []ledger.LineItem `json:"items,omitempty"`
	TotalValue  float64           `json:"total_value,omitempty"`
	Attachments []string          `json:"attachments,omitempty"`

	SubmittedAt time.Time `json:"submitted_at"`
	Status      string    `json:"status"`
}
