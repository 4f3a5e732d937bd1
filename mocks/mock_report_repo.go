package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) ComplianceOverview(ctx context.Context, tenantID uuid.UUID, filters port.ReportFilters) ([]domain.ComplianceOverviewRow, int, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ComplianceOverviewRow), args.Int(1), args.Error(2)
}

func (m *MockReportRepo) ComplianceStats(ctx context.Context, tenantID uuid.UUID) (*domain.ComplianceStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceStats), args.Error(1)
}
