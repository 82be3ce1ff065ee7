package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/alumni-directory-api/internal/models"
	"github.com/noah-isme/alumni-directory-api/pkg/jobs"
	"github.com/noah-isme/alumni-directory-api/pkg/mailer"
)

const jobTypeModerationEmail = "moderation_email"

type jobEnqueuer interface {
	TryEnqueue(job jobs.Job) error
}

// NotificationService tells moderators about new update requests. Delivery is
// best effort: every failure is logged and counted, never returned.
type NotificationService struct {
	sender  mailer.Sender
	to      string
	queue   jobEnqueuer
	metrics *MetricsService
	logger  *zap.Logger
}

// NewNotificationService constructs the service. An empty moderation address
// disables notifications.
func NewNotificationService(sender mailer.Sender, moderationAddress string, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{sender: sender, to: strings.TrimSpace(moderationAddress), metrics: metrics, logger: logger}
}

// UseQueue routes notifications through queue. Handle must be the queue's handler.
func (s *NotificationService) UseQueue(queue jobEnqueuer) {
	s.queue = queue
}

// NotifySubmitted enqueues the moderation email for req without blocking.
func (s *NotificationService) NotifySubmitted(_ context.Context, req *models.UpdateRequest, changes []models.FieldChange) {
	if s == nil || s.to == "" {
		return
	}
	if s.queue == nil {
		s.logger.Warn("notification queue not configured, moderation email skipped", zap.String("request_id", req.ID))
		s.metrics.RecordNotification("dropped")
		return
	}
	msg := moderationMessage(s.to, req, changes)
	err := s.queue.TryEnqueue(jobs.Job{Type: jobTypeModerationEmail, Payload: msg})
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, jobs.ErrQueueStopped) {
			level = s.logger.Error
		}
		level("moderation email dropped", zap.String("request_id", req.ID), zap.Error(err))
		s.metrics.RecordNotification("dropped")
	}
}

// Handle delivers one queued email. Returned errors trigger the queue's retry.
func (s *NotificationService) Handle(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		s.logger.Error("unexpected notification payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.RecordNotification("failed")
		return err
	}
	s.metrics.RecordNotification("sent")
	return nil
}

func moderationMessage(to string, req *models.UpdateRequest, changes []models.FieldChange) mailer.Message {
	var body strings.Builder
	fmt.Fprintf(&body, "A correction was proposed for roll number %s.\n\n", req.RollNumber)
	fmt.Fprintf(&body, "Request ID: %s\n", req.ID)
	fmt.Fprintf(&body, "Submitted:  %s\n\n", req.SubmittedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	if len(changes) == 0 {
		body.WriteString("The proposal does not differ from the current values.\n")
	} else {
		body.WriteString("Proposed changes:\n")
		for _, change := range changes {
			fmt.Fprintf(&body, "  %s: %s -> %s\n", change.Field, displayValue(change.Old), displayValue(change.New))
		}
	}
	return mailer.Message{
		To:      to,
		Subject: fmt.Sprintf("Alumni update request for %s", req.RollNumber),
		Body:    body.String(),
	}
}

func displayValue(value interface{}) string {
	if value == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%v", value)
}
