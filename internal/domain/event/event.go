// Package event defines the domain events an onboarding session emits as
// it moves through the wizard.
package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
)

// Event represents a domain event emitted by the onboarding engine
type Event struct {
	ID           string                 `json:"id"`
	Type         Type                   `json:"type"`
	SessionID    string                 `json:"session_id"`
	InvitationID string                 `json:"invitation_id"`
	Role         entity.Role            `json:"role"`
	Payload      map[string]interface{} `json:"payload"`
	Timestamp    time.Time              `json:"timestamp"`
}

// New creates a new domain event with an auto-generated ID and timestamp
func New(eventType Type, sessionID string, invitation entity.InvitationDescriptor, payload map[string]interface{}) *Event {
	return &Event{
		ID:           generateID(),
		Type:         eventType,
		SessionID:    sessionID,
		InvitationID: invitation.ID,
		Role:         invitation.Role,
		Payload:      payload,
		Timestamp:    time.Now(),
	}
}

// WithPayload returns a copy of the event with an added payload entry
func (e *Event) WithPayload(key string, value interface{}) *Event {
	newPayload := make(map[string]interface{}, len(e.Payload)+1)
	for k, v := range e.Payload {
		newPayload[k] = v
	}
	newPayload[key] = value

	clone := *e
	clone.Payload = newPayload
	return &clone
}

// generateID creates a random 16-byte hex identifier
func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
