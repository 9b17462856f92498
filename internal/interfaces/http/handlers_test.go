package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/dispatcher"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/resolver"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/service"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
	"github.com/Anbarasu1710/projectflow-sub000/internal/infrastructure/persistence/memory"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeMirror struct {
	data map[string]string
}

func (m *fakeMirror) Put(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}
func (m *fakeMirror) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *fakeMirror) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	disp := dispatcher.New(nopLogger{})
	notifications := service.NewNotificationService(nopLogger{})
	disp.Subscribe(event.TypeSubmissionCompleted, "notification", notifications.HandleSubmissionCompleted)

	onboarding := service.NewOnboardingService(
		resolver.New(resolver.DefaultConfig()),
		memory.NewSessionStore(),
		&fakeMirror{data: make(map[string]string)},
		nil,
		disp,
		nopLogger{},
	)
	return NewServer(DefaultServerConfig(), onboarding, notifications, nopLogger{})
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var parsed map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func sessionID(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	session, ok := resp["session"].(map[string]interface{})
	require.True(t, ok, "response has no session: %v", resp)
	id, _ := session["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)
	rec, resp := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleActivate(t *testing.T) {
	server := newTestServer(t)

	rec, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/activate", activateRequest{
		Params: map[string]string{"uid": "abc123", "type": "vendor"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["active"])

	session := resp["session"].(map[string]interface{})
	invitation := session["invitation"].(map[string]interface{})
	assert.Equal(t, "abc123", invitation["id"])
	assert.Equal(t, "vendor", invitation["role"])
}

func TestHandleActivate_NoInvitation(t *testing.T) {
	server := newTestServer(t)

	rec, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/activate", activateRequest{
		Path: "/dashboard",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["active"])
	assert.NotContains(t, resp, "session")
}

func TestHandlePreview_InvalidRole(t *testing.T) {
	server := newTestServer(t)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/onboarding/preview", previewRequest{Role: "auditor"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	server := newTestServer(t)

	rec, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/preview", previewRequest{Role: "customer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := sessionID(t, resp)

	// Unknown form field is a 400.
	rec, _ = doJSON(t, server, http.MethodPut, "/api/onboarding/sessions/"+id+"/fields",
		setFieldRequest{Name: "bogus", Value: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Welcome advances, personal denies while empty.
	rec, resp = doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["allowed"])

	rec, resp = doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["allowed"])

	// Retreat is unconditional.
	rec, resp = doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/retreat", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["allowed"])

	// Close, then the session is gone.
	rec, _ = doJSON(t, server, http.MethodDelete, "/api/onboarding/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = doJSON(t, server, http.MethodGet, "/api/onboarding/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVendorCompletionOverHTTP(t *testing.T) {
	server := newTestServer(t)

	_, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/preview", previewRequest{Role: "vendor"})
	id := sessionID(t, resp)

	setField := func(name, value string) {
		t.Helper()
		rec, _ := doJSON(t, server, http.MethodPut, "/api/onboarding/sessions/"+id+"/fields",
			setFieldRequest{Name: name, Value: value})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	advance := func(wantAllowed bool) {
		t.Helper()
		rec, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/advance", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, wantAllowed, resp["allowed"])
	}

	advance(true) // welcome
	setField("fullName", "Priya Raman")
	setField("email", "priya@example.com")
	setField("jobTitle", "Director")
	advance(true) // personal
	setField("organizationName", "Raman Builders")
	setField("industry", "Construction")
	advance(true) // business
	setField("primaryUse", "Civil works")
	advance(true) // services

	setField("quotationNumber", "Q-88")
	rec, _ := doJSON(t, server, http.MethodPut, "/api/onboarding/sessions/"+id+"/items/1",
		updateItemRequest{Field: "description", Value: "Excavation"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, server, http.MethodPut, "/api/onboarding/sessions/"+id+"/items/1",
		updateItemRequest{Field: "quantity", Value: "3"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec, resp = doJSON(t, server, http.MethodPut, "/api/onboarding/sessions/"+id+"/items/1",
		updateItemRequest{Field: "unitPrice", Value: "200"})
	require.Equal(t, http.StatusOK, rec.Code)

	session := resp["session"].(map[string]interface{})
	assert.Equal(t, float64(600), session["grand_total"])

	advance(true) // boq

	rec, resp = doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, resp["allowed"])

	submission := resp["submission"].(map[string]interface{})
	assert.Equal(t, "submitted", submission["status"])
	assert.Equal(t, float64(600), submission["total_value"])

	// The sink recorded an acknowledgement.
	rec, resp = doJSON(t, server, http.MethodGet, "/api/onboarding/acknowledgements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	acks := resp["acknowledgements"].([]interface{})
	require.Len(t, acks, 1)

	// Completing again is a no-op denial.
	rec, resp = doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/onboarding/sessions/%s/complete", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["allowed"])
}

// The mirrored invitation and last submission are readable so a reloaded
// shell can restore its state.
func TestMirrorReadbackEndpoints(t *testing.T) {
	server := newTestServer(t)

	rec, resp := doJSON(t, server, http.MethodGet, "/api/onboarding/invitation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["active"])

	rec, resp = doJSON(t, server, http.MethodGet, "/api/onboarding/last-submission", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["present"])

	rec, _ = doJSON(t, server, http.MethodPost, "/api/onboarding/activate", activateRequest{
		Params: map[string]string{"uid": "abc123", "type": "customer"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = doJSON(t, server, http.MethodGet, "/api/onboarding/invitation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["active"])
	invitation := resp["invitation"].(map[string]interface{})
	assert.Equal(t, "abc123", invitation["id"])
	assert.Equal(t, "Sarah Chen", invitation["inviter_name"])
}

func TestLedgerRoutes_CustomerSession(t *testing.T) {
	server := newTestServer(t)

	_, resp := doJSON(t, server, http.MethodPost, "/api/onboarding/preview", previewRequest{Role: "customer"})
	id := sessionID(t, resp)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/onboarding/sessions/"+id+"/items", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
