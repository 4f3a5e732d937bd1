package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"coitrack/internal/domain"
)

// MockExtractionRepo is a mock implementation of port.ExtractionRepository.
type MockExtractionRepo struct {
	mock.Mock
}

func (m *MockExtractionRepo) Create(ctx context.Context, ext *domain.Extraction) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}

func (m *MockExtractionRepo) GetByID(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error) {
	args := m.Called(ctx, tenantID, extractionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extraction), args.Error(1)
}

func (m *MockExtractionRepo) GetByCertificateID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Extraction, error) {
	args := m.Called(ctx, tenantID, certID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extraction), args.Error(1)
}

func (m *MockExtractionRepo) GetLatestCompleted(ctx context.Context, tenantID, vendorID, excludeID uuid.UUID) (*domain.Extraction, error) {
	args := m.Called(ctx, tenantID, vendorID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extraction), args.Error(1)
}

func (m *MockExtractionRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	args := m.Called(ctx, tenantID, vendorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Extraction), args.Int(1), args.Error(2)
}

func (m *MockExtractionRepo) ListByReviewStatus(ctx context.Context, tenantID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.Extraction, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Extraction), args.Int(1), args.Error(2)
}

func (m *MockExtractionRepo) UpdateResults(ctx context.Context, ext *domain.Extraction) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}

func (m *MockExtractionRepo) UpdateReviewStatus(ctx context.Context, ext *domain.Extraction) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}

func (m *MockExtractionRepo) MarkQueued(ctx context.Context, tenantID, extractionID uuid.UUID, retryAfter time.Time, extractionError string) error {
	args := m.Called(ctx, tenantID, extractionID, retryAfter, extractionError)
	return args.Error(0)
}

func (m *MockExtractionRepo) MarkFailed(ctx context.Context, tenantID, extractionID uuid.UUID, extractionError string) error {
	args := m.Called(ctx, tenantID, extractionID, extractionError)
	return args.Error(0)
}

func (m *MockExtractionRepo) ClaimQueued(ctx context.Context, now time.Time, limit int) ([]domain.Extraction, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Extraction), args.Error(1)
}
