package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/dispatcher"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/port"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/resolver"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/ledger"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
	"github.com/Anbarasu1710/projectflow-sub000/pkg/utils"
)

// The two keys mirrored to durable storage: the active invitation
// descriptor and the last submission payload. Both are read back through
// ActiveInvitation and LastSubmission after a shell reload.
const (
	MirrorKeyInvitation = "onboarding.invitation"
	MirrorKeySubmission = "onboarding.last_submission"
)

// ErrSessionNotFound is returned when the session id is unknown or the
// session was already destroyed
var ErrSessionNotFound = errors.New("onboarding session not found")

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SessionState is the serializable view of a wizard session handed to the
// UI shell after every operation.
type SessionState struct {
	ID             string                      `json:"id"`
	Invitation     entity.InvitationDescriptor `json:"invitation"`
	Steps          []wizard.StepDefinition     `json:"steps"`
	StepIndex      int                         `json:"step_index"`
	CompletedSteps []wizard.StepID             `json:"completed_steps"`
	CanAdvance     bool                        `json:"can_advance"`
	Form           map[string]string           `json:"form"`
	Items          []ledger.LineItem           `json:"items,omitempty"`
	GrandTotal     float64                     `json:"grand_total,omitempty"`
	Attachments    []string                    `json:"attachments,omitempty"`
	Finished       bool                        `json:"finished"`
}

// OnboardingService drives wizard session lifecycle on behalf of the UI
// shell: activation, field edits, ledger edits, transitions and
// completion.
type OnboardingService interface {
	// Activate resolves the navigation context into an invitation and
	// starts a session. A false result means no invitation was present,
	// which is a normal inactive outcome.
	Activate(ctx context.Context, nav resolver.NavigationContext) (*SessionState, bool, error)

	// ActivatePreview starts a session from a locally synthesized preview
	// invitation, bypassing the resolver.
	ActivatePreview(ctx context.Context, role entity.Role) (*SessionState, error)

	// ActiveInvitation reads back the mirrored invitation descriptor so
	// the shell can restore its onboarding surface after a reload. A
	// false result means nothing is mirrored.
	ActiveInvitation(ctx context.Context) (*entity.InvitationDescriptor, bool, error)

	// LastSubmission reads back the mirrored submission payload.
	LastSubmission(ctx context.Context) (*entity.Submission, bool, error)

	// Session returns the current state of a session.
	Session(ctx context.Context, sessionID string) (*SessionState, error)

	// SetField writes one form field.
	SetField(ctx context.Context, sessionID, name, value string) (*SessionState, error)

	// AddLineItem, RemoveLineItem and UpdateLineItem mutate the quotation
	// ledger of a vendor session.
	AddLineItem(ctx context.Context, sessionID string) (*SessionState, error)
	RemoveLineItem(ctx context.Context, sessionID, itemID string) (*SessionState, error)
	UpdateLineItem(ctx context.Context, sessionID, itemID, field, value string) (*SessionState, error)

	// AddAttachment records an uploaded attachment name.
	AddAttachment(ctx context.Context, sessionID, name string) (*SessionState, error)

	// Advance and Retreat drive step navigation. The boolean reports
	// whether the transition was permitted.
	Advance(ctx context.Context, sessionID string) (*SessionState, bool, error)
	Retreat(ctx context.Context, sessionID string) (*SessionState, bool, error)

	// Complete assembles and emits the submission payload. A false result
	// means the completion gate denied.
	Complete(ctx context.Context, sessionID string) (*entity.Submission, bool, error)

	// Close destroys a session (return-to-app or post-completion ack).
	Close(ctx context.Context, sessionID string) error
}

type onboardingServiceImpl struct {
	resolver   *resolver.Resolver
	sessions   port.SessionStore
	mirror     port.MirrorStore
	exporter   port.QuotationExporter
	dispatcher dispatcher.Dispatcher
	logger     Logger
	now        func() time.Time
}

// NewOnboardingService creates a new OnboardingService. The exporter may
// be nil when quotation export is disabled.
func NewOnboardingService(
	rsv *resolver.Resolver,
	sessions port.SessionStore,
	mirror port.MirrorStore,
	exporter port.QuotationExporter,
	disp dispatcher.Dispatcher,
	logger Logger,
) OnboardingService {
	return &onboardingServiceImpl{
		resolver:   rsv,
		sessions:   sessions,
		mirror:     mirror,
		exporter:   exporter,
		dispatcher: disp,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *onboardingServiceImpl) Activate(ctx context.Context, nav resolver.NavigationContext) (*SessionState, bool, error) {
	invitation, ok := s.resolver.Resolve(nav)
	if !ok {
		return nil, false, nil
	}
	state, err := s.startSession(ctx, *invitation)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (s *onboardingServiceImpl) ActivatePreview(ctx context.Context, role entity.Role) (*SessionState, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid preview role: %s", role)
	}
	invitation := entity.InvitationDescriptor{
		ID:          entity.PreviewIDPrefix + uuid.NewString(),
		Role:        role,
		InviterName: entity.DefaultInviterName,
		CompanyName: entity.DefaultCompanyName,
	}
	return s.startSession(ctx, invitation)
}

func (s *onboardingServiceImpl) startSession(ctx context.Context, invitation entity.InvitationDescriptor) (*SessionState, error) {
	session := wizard.NewSession(invitation)
	sessionID := uuid.NewString()
	s.sessions.Put(sessionID, session)

	// Preview sessions are ephemeral and must not shadow a real
	// invitation in the durable mirror.
	if !invitation.IsPreview() {
		if err := s.mirrorInvitation(ctx, invitation); err != nil {
			s.logger.Error("Failed to mirror invitation", "error", err, "invitation_id", invitation.ID)
		}
	}

	s.logger.Info("Onboarding session activated",
		"session_id", sessionID,
		"invitation_id", invitation.ID,
		"role", invitation.Role.String(),
	)
	evt := event.New(event.TypeSessionActivated, sessionID, invitation, nil)
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch activation event", "error", err, "session_id", sessionID)
	}

	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) ActiveInvitation(ctx context.Context) (*entity.InvitationDescriptor, bool, error) {
	raw, ok, err := s.mirror.Get(ctx, MirrorKeyInvitation)
	if err != nil || !ok {
		return nil, false, err
	}
	var invitation entity.InvitationDescriptor
	if err := json.Unmarshal([]byte(raw), &invitation); err != nil {
		return nil, false, fmt.Errorf("unmarshal mirrored invitation: %w", err)
	}
	return &invitation, true, nil
}

func (s *onboardingServiceImpl) LastSubmission(ctx context.Context) (*entity.Submission, bool, error) {
	raw, ok, err := s.mirror.Get(ctx, MirrorKeySubmission)
	if err != nil || !ok {
		return nil, false, err
	}
	var sub entity.Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, false, fmt.Errorf("unmarshal mirrored submission: %w", err)
	}
	return &sub, true, nil
}

func (s *onboardingServiceImpl) Session(ctx context.Context, sessionID string) (*SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) SetField(ctx context.Context, sessionID, name, value string) (*SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	value = utils.SanitizeString(value)
	if err := session.Form().Set(name, value); err != nil {
		return nil, err
	}
	if name == wizard.FieldEmail && value != "" {
		// Advisory only; the personal-step gate requires non-empty.
		if err := utils.ValidateEmail(value); err != nil {
			s.logger.Warn("Email looks malformed", "session_id", sessionID, "error", err)
		}
	}
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) AddLineItem(ctx context.Context, sessionID string) (*SessionState, error) {
	session, boq, err := s.getVendor(sessionID)
	if err != nil {
		return nil, err
	}
	boq.AddItem()
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) RemoveLineItem(ctx context.Context, sessionID, itemID string) (*SessionState, error) {
	session, boq, err := s.getVendor(sessionID)
	if err != nil {
		return nil, err
	}
	boq.RemoveItem(itemID)
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) UpdateLineItem(ctx context.Context, sessionID, itemID, field, value string) (*SessionState, error) {
	session, boq, err := s.getVendor(sessionID)
	if err != nil {
		return nil, err
	}
	if !boq.UpdateItem(itemID, field, value) {
		s.logger.Warn("Rejected line item update",
			"session_id", sessionID,
			"item_id", itemID,
			"field", field,
		)
	}
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) AddAttachment(ctx context.Context, sessionID, name string) (*SessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	session.AddAttachment(name)
	return s.state(sessionID, session), nil
}

func (s *onboardingServiceImpl) Advance(ctx context.Context, sessionID string) (*SessionState, bool, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, false, err
	}
	from := session.CurrentStep().ID
	ok := session.Advance()
	if ok {
		evt := event.New(event.TypeStepAdvanced, sessionID, session.Invitation(), map[string]interface{}{
			"from": from.String(),
			"to":   session.CurrentStep().ID.String(),
		})
		s.dispatcher.DispatchAsync(ctx, evt)
	}
	return s.state(sessionID, session), ok, nil
}

func (s *onboardingServiceImpl) Retreat(ctx context.Context, sessionID string) (*SessionState, bool, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, false, err
	}
	from := session.CurrentStep().ID
	ok := session.Retreat()
	if ok {
		evt := event.New(event.TypeStepRetreated, sessionID, session.Invitation(), map[string]interface{}{
			"from": from.String(),
			"to":   session.CurrentStep().ID.String(),
		})
		s.dispatcher.DispatchAsync(ctx, evt)
	}
	return s.state(sessionID, session), ok, nil
}

func (s *onboardingServiceImpl) Complete(ctx context.Context, sessionID string) (*entity.Submission, bool, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, false, err
	}

	sub, ok := session.Complete(s.now())
	if !ok {
		return nil, false, nil
	}

	s.logger.Info("Onboarding completed",
		"session_id", sessionID,
		"invitation_id", sub.InvitationID,
		"role", sub.Role.String(),
		"total_value", sub.TotalValue,
	)

	if err := s.mirrorSubmission(ctx, sub); err != nil {
		s.logger.Error("Failed to mirror submission", "error", err, "session_id", sessionID)
	}

	evt := event.New(event.TypeSubmissionCompleted, sessionID, session.Invitation(), map[string]interface{}{
		"submission": sub,
	})

	if sub.Role == entity.RoleVendor && s.exporter != nil {
		path, err := s.exporter.Export(ctx, sub)
		if err != nil {
			// Export is a convenience artifact; completion already happened.
			s.logger.Error("Quotation export failed", "error", err, "session_id", sessionID)
		} else {
			s.logger.Info("Quotation exported", "session_id", sessionID, "path", path)
			evt = evt.WithPayload("export_path", path)
		}
	}

	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		s.logger.Error("Failed to dispatch submission event", "error", err, "session_id", sessionID)
	}

	return sub, true, nil
}

func (s *onboardingServiceImpl) Close(ctx context.Context, sessionID string) error {
	session, err := s.get(sessionID)
	if err != nil {
		return err
	}
	invitation := session.Invitation()
	s.sessions.Delete(sessionID)

	if !invitation.IsPreview() {
		if err := s.mirror.Delete(ctx, MirrorKeyInvitation); err != nil {
			s.logger.Error("Failed to clear mirrored invitation", "error", err)
		}
	}

	s.logger.Info("Onboarding session closed", "session_id", sessionID, "invitation_id", invitation.ID)
	s.dispatcher.DispatchAsync(ctx, event.New(event.TypeSessionClosed, sessionID, invitation, nil))
	return nil
}

func (s *onboardingServiceImpl) get(sessionID string) (*wizard.Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *onboardingServiceImpl) getVendor(sessionID string) (*wizard.Session, *ledger.Ledger, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	boq := session.Ledger()
	if boq == nil {
		return nil, nil, fmt.Errorf("session %s has no quotation ledger", sessionID)
	}
	return session, boq, nil
}

func (s *onboardingServiceImpl) state(sessionID string, session *wizard.Session) *SessionState {
	state := &SessionState{
		ID:             sessionID,
		Invitation:     session.Invitation(),
		Steps:          session.Steps(),
		StepIndex:      session.StepIndex(),
		CompletedSteps: session.CompletedSteps(),
		CanAdvance:     session.CanAdvance(),
		Form:           session.Form().Snapshot(),
		Attachments:    session.Attachments(),
		Finished:       session.Finished(),
	}
	if boq := session.Ledger(); boq != nil {
		state.Items = boq.Items()
		state.GrandTotal = boq.GrandTotal()
	}
	return state
}

func (s *onboardingServiceImpl) mirrorInvitation(ctx context.Context, invitation entity.InvitationDescriptor) error {
	raw, err := json.Marshal(invitation)
	if err != nil {
		return fmt.Errorf("marshal invitation: %w", err)
	}
	return s.mirror.Put(ctx, MirrorKeyInvitation, string(raw))
}

func (s *onboardingServiceImpl) mirrorSubmission(ctx context.Context, sub *entity.Submission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	return s.mirror.Put(ctx, MirrorKeySubmission, string(raw))
}
