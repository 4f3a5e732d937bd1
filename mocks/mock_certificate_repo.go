package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
)

// MockCertificateRepo is a mock implementation of port.CertificateRepository.
type MockCertificateRepo struct {
	mock.Mock
}

func (m *MockCertificateRepo) Create(ctx context.Context, cert *domain.Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockCertificateRepo) GetByID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Certificate, error) {
	args := m.Called(ctx, tenantID, certID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Certificate, int, error) {
	args := m.Called(ctx, tenantID, vendorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Certificate), args.Int(1), args.Error(2)
}

func (m *MockCertificateRepo) UpdateStatus(ctx context.Context, tenantID, certID uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, tenantID, certID, status)
	return args.Error(0)
}

func (m *MockCertificateRepo) Delete(ctx context.Context, tenantID, certID uuid.UUID) error {
	args := m.Called(ctx, tenantID, certID)
	return args.Error(0)
}
