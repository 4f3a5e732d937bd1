package noop

import (
	"context"
	"log"

	"coitrack/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs reminders to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReminder(_ context.Context, email port.ReminderEmail) error {
	log.Printf("[NOOP EMAIL] Reminder for %s (%s): %s", email.ToName, email.ToEmail, email.Body)
	return nil
}
