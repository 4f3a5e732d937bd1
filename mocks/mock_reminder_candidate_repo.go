package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
)

// MockReminderCandidateRepo is a mock implementation of
// port.ReminderCandidateRepository.
type MockReminderCandidateRepo struct {
	mock.Mock
}

func (m *MockReminderCandidateRepo) ListCandidates(ctx context.Context) ([]domain.ReminderCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderCandidate), args.Error(1)
}

func (m *MockReminderCandidateRepo) ListCandidatesByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ReminderCandidate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReminderCandidate), args.Error(1)
}
