package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coitrack/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReminder(ctx context.Context, email port.ReminderEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
