package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
)

// NotificationService is the submission sink: it records a user-visible
// acknowledgement with role-specific copy for every completed submission.
type NotificationService interface {
	// Receive accepts a completed submission (port.SubmissionSink).
	Receive(ctx context.Context, sub *entity.Submission) error

	// HandleSubmissionCompleted adapts Receive to the event dispatcher.
	HandleSubmissionCompleted(ctx context.Context, evt *event.Event) error

	// Acknowledgements returns the recorded acknowledgements, newest last.
	// Fetching marks pending entries as shown; the UI renders each toast
	// once.
	Acknowledgements() []entity.Acknowledgement
}

type notificationServiceImpl struct {
	mu     sync.Mutex
	acks   []entity.Acknowledgement
	logger Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(logger Logger) NotificationService {
	return &notificationServiceImpl{logger: logger}
}

func (s *notificationServiceImpl) Receive(ctx context.Context, sub *entity.Submission) error {
	ack := entity.Acknowledgement{
		InvitationID: sub.InvitationID,
		Role:         sub.Role,
		Status:       entity.AckStatusPending,
		CreatedAt:    time.Now(),
	}
	switch sub.Role {
	case entity.RoleVendor:
		ack.Title = "Quotation submitted"
		ack.Message = fmt.Sprintf(
			"Your quotation %s with %d items (total %.2f) has been submitted for review.",
			quotationNumber(sub), len(sub.Items), sub.TotalValue,
		)
	default:
		ack.Title = "Welcome to ProjectFlow"
		ack.Message = "Your profile has been submitted. Your workspace is being prepared."
	}

	s.mu.Lock()
	s.acks = append(s.acks, ack)
	s.mu.Unlock()

	s.logger.Info("Submission acknowledged",
		"invitation_id", sub.InvitationID,
		"role", sub.Role.String(),
		"title", ack.Title,
	)
	return nil
}

func (s *notificationServiceImpl) HandleSubmissionCompleted(ctx context.Context, evt *event.Event) error {
	sub, ok := evt.Payload["submission"].(*entity.Submission)
	if !ok {
		return fmt.Errorf("event %s carries no submission payload", evt.ID)
	}
	return s.Receive(ctx, sub)
}

func (s *notificationServiceImpl) Acknowledgements() []entity.Acknowledgement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Acknowledgement, len(s.acks))
	copy(out, s.acks)
	for i := range s.acks {
		s.acks[i].Status = entity.AckStatusShown
	}
	return out
}

func quotationNumber(sub *entity.Submission) string {
	if sub.Quotation != nil {
		return sub.Quotation.Number
	}
	return ""
}
