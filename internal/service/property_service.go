package service

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// CreatePropertyInput is the DTO for creating a property.
type CreatePropertyInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdatePropertyInput is the DTO for updating a property.
type UpdatePropertyInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// PropertyService defines the property management contract.
type PropertyService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreatePropertyInput) (*domain.Property, error)
	GetByID(ctx context.Context, tenantID, propertyID uuid.UUID) (*domain.Property, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Property, int, error)
	Update(ctx context.Context, tenantID, propertyID uuid.UUID, input UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error
}

type propertyService struct {
	repo port.PropertyRepository
}

// NewPropertyService creates a new PropertyService implementation.
func NewPropertyService(repo port.PropertyRepository) PropertyService {
	return &propertyService{repo: repo}
}

func (s *propertyService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreatePropertyInput) (*domain.Property, error) {
	property := &domain.Property{
		TenantID:  tenantID,
		Name:      input.Name,
		Address:   input.Address,
		CreatedBy: createdBy,
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, tenantID, propertyID uuid.UUID) (*domain.Property, error) {
	return s.repo.GetByID(ctx, tenantID, propertyID)
}

func (s *propertyService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Property, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *propertyService) Update(ctx context.Context, tenantID, propertyID uuid.UUID, input UpdatePropertyInput) (*domain.Property, error) {
	property, err := s.repo.GetByID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		property.Name = *input.Name
	}
	if input.Address != nil {
		property.Address = *input.Address
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, propertyID)
}
