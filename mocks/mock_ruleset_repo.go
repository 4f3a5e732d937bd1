package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
)

// MockRuleSetRepo is a mock implementation of port.RuleSetRepository.
type MockRuleSetRepo struct {
	mock.Mock
}

func (m *MockRuleSetRepo) Create(ctx context.Context, rules *domain.ComplianceRuleSet) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockRuleSetRepo) GetByID(ctx context.Context, tenantID, ruleSetID uuid.UUID) (*domain.ComplianceRuleSet, error) {
	args := m.Called(ctx, tenantID, ruleSetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceRuleSet), args.Error(1)
}

func (m *MockRuleSetRepo) GetByTradeType(ctx context.Context, tenantID uuid.UUID, tradeType string) (*domain.ComplianceRuleSet, error) {
	args := m.Called(ctx, tenantID, tradeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceRuleSet), args.Error(1)
}

func (m *MockRuleSetRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ComplianceRuleSet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceRuleSet), args.Error(1)
}

func (m *MockRuleSetRepo) Update(ctx context.Context, rules *domain.ComplianceRuleSet) error {
	args := m.Called(ctx, rules)
	return args.Error(0)
}

func (m *MockRuleSetRepo) Delete(ctx context.Context, tenantID, ruleSetID uuid.UUID) error {
	args := m.Called(ctx, tenantID, ruleSetID)
	return args.Error(0)
}
