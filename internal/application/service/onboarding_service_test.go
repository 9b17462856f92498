package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/dispatcher"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/resolver"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/ledger"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Mock stores with function fields

type mockSessionStore struct {
	sessions map[string]*wizard.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*wizard.Session)}
}

func (m *mockSessionStore) Put(id string, s *wizard.Session) { m.sessions[id] = s }
func (m *mockSessionStore) Get(id string) (*wizard.Session, bool) {
	s, ok := m.sessions[id]
	return s, ok
}
func (m *mockSessionStore) Delete(id string) { delete(m.sessions, id) }
func (m *mockSessionStore) Len() int         { return len(m.sessions) }

type mockMirror struct {
	putFunc func(ctx context.Context, key, value string) error
	data    map[string]string
}

func newMockMirror() *mockMirror {
	return &mockMirror{data: make(map[string]string)}
}

func (m *mockMirror) Put(ctx context.Context, key, value string) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockMirror) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockMirror) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type mockExporter struct {
	exportFunc func(ctx context.Context, sub *entity.Submission) (string, error)
	calls      int
}

func (m *mockExporter) Export(ctx context.Context, sub *entity.Submission) (string, error) {
	m.calls++
	if m.exportFunc != nil {
		return m.exportFunc(ctx, sub)
	}
	return "/tmp/quotation.xlsx", nil
}

type fixture struct {
	svc      OnboardingService
	sink     NotificationService
	sessions *mockSessionStore
	mirror   *mockMirror
	exporter *mockExporter
	disp     dispatcher.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions: newMockSessionStore(),
		mirror:   newMockMirror(),
		exporter: &mockExporter{},
	}
	f.disp = dispatcher.New(nopLogger{})
	f.sink = NewNotificationService(nopLogger{})
	f.disp.Subscribe(event.TypeSubmissionCompleted, "notification", f.sink.HandleSubmissionCompleted)
	f.svc = NewOnboardingService(resolver.New(resolver.DefaultConfig()), f.sessions, f.mirror, f.exporter, f.disp, nopLogger{})
	return f
}

func TestActivate_ResolvedInvitation(t *testing.T) {
	f := newFixture(t)

	state, active, err := f.svc.Activate(context.Background(), resolver.NavigationContext{
		Params: map[string]string{"uid": "abc123", "type": "vendor"},
	})
	require.NoError(t, err)
	require.True(t, active)

	assert.Equal(t, entity.RoleVendor, state.Invitation.Role)
	assert.Len(t, state.Steps, 6)
	assert.Equal(t, 0, state.StepIndex)
	assert.Len(t, state.Items, 1, "vendor session starts with the default ledger row")
	assert.Equal(t, 1, f.sessions.Len())

	// The invitation is mirrored durably.
	_, ok, err := f.mirror.Get(context.Background(), MirrorKeyInvitation)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestActivate_NoInvitationIsNotAnError(t *testing.T) {
	f := newFixture(t)

	state, active, err := f.svc.Activate(context.Background(), resolver.NavigationContext{Path: "/dashboard"})
	require.NoError(t, err)
	assert.False(t, active)
	assert.Nil(t, state)
	assert.Equal(t, 0, f.sessions.Len())
}

func TestActivatePreview(t *testing.T) {
	f := newFixture(t)

	state, err := f.svc.ActivatePreview(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, state.Invitation.IsPreview())
	assert.Equal(t, entity.RoleCustomer, state.Invitation.Role)
	assert.Len(t, state.Steps, 5)

	_, err = f.svc.ActivatePreview(context.Background(), entity.Role("auditor"))
	assert.Error(t, err)
}

// Preview sessions are ephemeral: they neither write the invitation
// mirror nor clear it on close, so a real invitation is never shadowed.
func TestActivatePreview_DoesNotTouchInvitationMirror(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, active, err := f.svc.Activate(ctx, resolver.NavigationContext{
		Params: map[string]string{"uid": "real-inv", "type": "customer"},
	})
	require.NoError(t, err)
	require.True(t, active)

	preview, err := f.svc.ActivatePreview(ctx, entity.RoleVendor)
	require.NoError(t, err)

	mirrored, ok, err := f.svc.ActiveInvitation(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "real-inv", mirrored.ID, "preview must not overwrite the mirrored invitation")

	require.NoError(t, f.svc.Close(ctx, preview.ID))
	_, ok, err = f.svc.ActiveInvitation(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "closing a preview must not clear the mirrored invitation")
}

func TestSetField_RejectsUnknownName(t *testing.T) {
	f := newFixture(t)
	state, err := f.svc.ActivatePreview(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = f.svc.SetField(context.Background(), state.ID, "notAField", "x")
	assert.ErrorIs(t, err, wizard.ErrUnknownField)

	updated, err := f.svc.SetField(context.Background(), state.ID, wizard.FieldFullName, "Priya Raman")
	require.NoError(t, err)
	assert.Equal(t, "Priya Raman", updated.Form[wizard.FieldFullName])
}

func TestSetField_StripsControlCharacters(t *testing.T) {
	f := newFixture(t)
	state, err := f.svc.ActivatePreview(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)

	updated, err := f.svc.SetField(context.Background(), state.ID, wizard.FieldOrganizationName, "Raman\x00 Builders\x1f")
	require.NoError(t, err)
	assert.Equal(t, "Raman Builders", updated.Form[wizard.FieldOrganizationName])
}

func TestLedgerOperations_CustomerSessionHasNoLedger(t *testing.T) {
	f := newFixture(t)
	state, err := f.svc.ActivatePreview(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = f.svc.AddLineItem(context.Background(), state.ID)
	assert.Error(t, err)
}

func TestAdvance_GateDeniedIsBooleanNotError(t *testing.T) {
	f := newFixture(t)
	state, err := f.svc.ActivatePreview(context.Background(), entity.RoleCustomer)
	require.NoError(t, err)

	// welcome always advances
	state, ok, err := f.svc.Advance(context.Background(), state.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// personal gate closed: denied, same index, no error
	state, ok, err = f.svc.Advance(context.Background(), state.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, state.StepIndex)
}

func TestComplete_VendorFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := driveVendorToLastStep(t, f)

	sub, ok, err := f.svc.Complete(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, entity.StatusSubmitted, sub.Status)
	assert.Equal(t, float64(5*120), sub.TotalValue)
	require.NotNil(t, sub.Quotation)
	assert.Equal(t, "Q-77", sub.Quotation.Number)

	// Submission mirrored, exporter invoked, sink acknowledged.
	_, mirrored, err := f.mirror.Get(ctx, MirrorKeySubmission)
	require.NoError(t, err)
	assert.True(t, mirrored)
	assert.Equal(t, 1, f.exporter.calls)

	acks := f.sink.Acknowledgements()
	require.Len(t, acks, 1)
	assert.Equal(t, "Quotation submitted", acks[0].Title)
	assert.Equal(t, entity.RoleVendor, acks[0].Role)
}

func TestComplete_EventCarriesExportPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var exportPath interface{}
	f.disp.Subscribe(event.TypeSubmissionCompleted, "capture", func(ctx context.Context, evt *event.Event) error {
		exportPath = evt.Payload["export_path"]
		return nil
	})

	sessionID := driveVendorToLastStep(t, f)
	_, ok, err := f.svc.Complete(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "/tmp/quotation.xlsx", exportPath)
}

func TestMirror_ReadbackAfterCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := driveVendorToLastStep(t, f)

	_, ok, err := f.svc.Complete(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	sub, ok, err := f.svc.LastSubmission(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.RoleVendor, sub.Role)
	assert.Equal(t, "Q-77", sub.Quotation.Number)
	assert.Equal(t, float64(600), sub.TotalValue)
}

func TestComplete_EmitsExactlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sessionID := driveVendorToLastStep(t, f)

	_, ok, err := f.svc.Complete(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	sub, ok, err := f.svc.Complete(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, sub)
	assert.Equal(t, 1, f.exporter.calls, "second complete must not re-export")
	assert.Len(t, f.sink.Acknowledgements(), 1, "second complete must not re-emit")
}

func TestComplete_ExportFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.exporter.exportFunc = func(ctx context.Context, sub *entity.Submission) (string, error) {
		return "", errors.New("disk full")
	}
	sessionID := driveVendorToLastStep(t, f)

	_, ok, err := f.svc.Complete(context.Background(), sessionID)
	require.NoError(t, err)
	assert.True(t, ok, "completion must succeed even when export fails")
}

func TestClose_DestroysSessionAndClearsInvitationMirror(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state, active, err := f.svc.Activate(ctx, resolver.NavigationContext{
		Params: map[string]string{"uid": "inv-9", "type": "customer"},
	})
	require.NoError(t, err)
	require.True(t, active)

	require.NoError(t, f.svc.Close(ctx, state.ID))
	assert.Equal(t, 0, f.sessions.Len())

	_, ok, err := f.mirror.Get(ctx, MirrorKeyInvitation)
	require.NoError(t, err)
	assert.False(t, ok)

	err = f.svc.Close(ctx, state.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSession_UnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Session(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// driveVendorToLastStep activates a vendor preview and walks it to the
// final step with a valid quotation.
func driveVendorToLastStep(t *testing.T, f *fixture) string {
	t.Helper()
	ctx := context.Background()

	state, err := f.svc.ActivatePreview(ctx, entity.RoleVendor)
	require.NoError(t, err)
	id := state.ID

	mustAdvance := func() {
		t.Helper()
		_, ok, err := f.svc.Advance(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	mustAdvance() // welcome

	for name, value := range map[string]string{
		wizard.FieldFullName: "Priya Raman",
		wizard.FieldEmail:    "priya@example.com",
		wizard.FieldJobTitle: "Director",
	} {
		_, err = f.svc.SetField(ctx, id, name, value)
		require.NoError(t, err)
	}
	mustAdvance() // personal

	for name, value := range map[string]string{
		wizard.FieldOrganizationName: "Raman Builders",
		wizard.FieldIndustry:         "Construction",
	} {
		_, err = f.svc.SetField(ctx, id, name, value)
		require.NoError(t, err)
	}
	mustAdvance() // business

	_, err = f.svc.SetField(ctx, id, wizard.FieldPrimaryUse, "Civil works")
	require.NoError(t, err)
	mustAdvance() // services

	_, err = f.svc.SetField(ctx, id, wizard.FieldQuotationNumber, "Q-77")
	require.NoError(t, err)
	_, err = f.svc.UpdateLineItem(ctx, id, "1", ledger.FieldDescription, "Excavation")
	require.NoError(t, err)
	_, err = f.svc.UpdateLineItem(ctx, id, "1", ledger.FieldQuantity, "5")
	require.NoError(t, err)
	_, err = f.svc.UpdateLineItem(ctx, id, "1", ledger.FieldUnitPrice, "120")
	require.NoError(t, err)
	mustAdvance() // boq

	return id
}
