package port

import "context"

// ReminderEmail carries everything needed to send one vendor reminder.
type ReminderEmail struct {
	ToEmail    string
	ToName     string
	VendorName string
	Subject    string
	Body       string
}

// EmailSender defines the contract for sending reminder emails.
type EmailSender interface {
	SendReminder(ctx context.Context, email ReminderEmail) error
}
