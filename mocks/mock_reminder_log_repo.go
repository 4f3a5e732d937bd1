package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
)

// MockReminderLogRepo is a mock implementation of port.ReminderLogRepository.
type MockReminderLogRepo struct {
	mock.Mock
}

func (m *MockReminderLogRepo) Create(ctx context.Context, entry *domain.ReminderLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReminderLogRepo) HasStage(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (bool, error) {
	args := m.Called(ctx, tenantID, vendorID, stage)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderLogRepo) LastSentAt(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (time.Time, error) {
	args := m.Called(ctx, tenantID, vendorID, stage)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockReminderLogRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.ReminderLog, int, error) {
	args := m.Called(ctx, tenantID, vendorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReminderLog), args.Int(1), args.Error(2)
}
