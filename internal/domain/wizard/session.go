package wizard

import (
	"time"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/ledger"
)

// Session is the wizard state machine for one onboarding surface. It owns
// the current step index, the completed step set, the form state, the
// quotation ledger (vendor only) and the uploaded attachment names. All
// mutation is synchronous; a session is never shared between surfaces.
type Session struct {
	invitation  entity.InvitationDescriptor
	steps       []StepDefinition
	index       int
	completed   map[StepID]bool
	order       []StepID
	form        *FormState
	boq         *ledger.Ledger
	attachments []string
	finished    bool
}

// NewSession creates a session at the first step of the invitation role's
// sequence. Vendor sessions get a ledger seeded with one default row.
func NewSession(invitation entity.InvitationDescriptor) *Session {
	s := &Session{
		invitation: invitation,
		steps:      StepsFor(invitation.Role),
		completed:  make(map[StepID]bool),
		form:       NewFormState(),
	}
	if invitation.Role == entity.RoleVendor {
		s.boq = ledger.New()
	}
	return s
}

// Invitation returns the invitation that activated the session.
func (s *Session) Invitation() entity.InvitationDescriptor {
	return s.invitation
}

// Steps returns the session's ordered step sequence.
func (s *Session) Steps() []StepDefinition {
	out := make([]StepDefinition, len(s.steps))
	copy(out, s.steps)
	return out
}

// StepIndex returns the 0-based current step index.
func (s *Session) StepIndex() int {
	return s.index
}

// CurrentStep returns the definition of the current step.
func (s *Session) CurrentStep() StepDefinition {
	return s.steps[s.index]
}

// CompletedSteps returns the step ids passed so far, in the order they
// were first completed. Used for progress rendering, not for gating.
func (s *Session) CompletedSteps() []StepID {
	out := make([]StepID, len(s.order))
	copy(out, s.order)
	return out
}

// Form returns the session's form state.
func (s *Session) Form() *FormState {
	return s.form
}

// Ledger returns the quotation ledger, or nil for customer sessions.
func (s *Session) Ledger() *ledger.Ledger {
	return s.boq
}

// Finished reports whether a completion payload has been emitted.
func (s *Session) Finished() bool {
	return s.finished
}

// AddAttachment records an uploaded attachment name.
func (s *Session) AddAttachment(name string) {
	s.attachments = append(s.attachments, name)
}

// Attachments returns the recorded attachment names.
func (s *Session) Attachments() []string {
	out := make([]string, len(s.attachments))
	copy(out, s.attachments)
	return out
}

// CanAdvance reports whether the current step's gate passes. The engine
// only tracks pass/fail, never why a gate failed.
func (s *Session) CanAdvance() bool {
	return guardFor(s.steps[s.index].Validator)(s.form, s.boq)
}

// Advance moves to the next step when the current gate passes, marking the
// current step completed. Denied at the last step (Complete handles it),
// after completion, and whenever the gate fails.
func (s *Session) Advance() bool {
	if s.finished || s.index >= len(s.steps)-1 || !s.CanAdvance() {
		return false
	}
	s.markCompleted(s.steps[s.index].ID)
	s.index++
	return true
}

// Retreat moves back one step. Never blocked by validation, never removes
// completed marks, and a no-op at the first step or after completion.
func (s *Session) Retreat() bool {
	if s.finished || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Complete assembles the submission payload. Permitted only at the last
// step while its gate passes, and at most once: afterwards the session is
// finished and every transition is a no-op denial.
func (s *Session) Complete(now time.Time) (*entity.Submission, bool) {
	if s.finished || s.index != len(s.steps)-1 || !s.CanAdvance() {
		return nil, false
	}
	s.markCompleted(s.steps[s.index].ID)
	s.finished = true

	sub := &entity.Submission{
		InvitationID: s.invitation.ID,
		Role:         s.invitation.Role,
		Profile:      s.form.Profile(),
		SubmittedAt:  now,
		Status:       entity.StatusSubmitted,
	}
	if s.invitation.Role == entity.RoleVendor {
		sub.Quotation = &entity.QuotationHeader{
			Number:          s.form.Get(FieldQuotationNumber),
			ValidityPeriod:  s.form.Get(FieldValidityPeriod),
			PaymentTerms:    s.form.Get(FieldPaymentTerms),
			Warranty:        s.form.Get(FieldWarranty),
			AdditionalTerms: s.form.Get(FieldAdditionalTerms),
		}
		sub.Items = s.boq.Items()
		sub.TotalValue = s.boq.GrandTotal()
		sub.Attachments = s.Attachments()
	}
	return sub, true
}

func (s *Session) markCompleted(id StepID) {
	if !s.completed[id] {
		s.completed[id] = true
		s.order = append(s.order, id)
	}
}
