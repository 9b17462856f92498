package entity

import "time"

// Acknowledgement is the user-visible confirmation recorded when a
// submission reaches the sink. The UI shell renders it as a toast.
type Acknowledgement struct {
	InvitationID string    `json:"invitation_id"`
	Role         Role      `json:"role"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
