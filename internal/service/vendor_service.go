package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// CreateVendorInput is the DTO for creating a vendor.
type CreateVendorInput struct {
	PropertyID   *uuid.UUID `json:"property_id"`
	Name         string     `json:"name" binding:"required"`
	TradeType    string     `json:"trade_type" binding:"required"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	Notes        string     `json:"notes"`
}

// UpdateVendorInput is the DTO for updating a vendor.
type UpdateVendorInput struct {
	PropertyID   *uuid.UUID `json:"property_id"`
	Name         *string    `json:"name"`
	TradeType    *string    `json:"trade_type"`
	ContactName  *string    `json:"contact_name"`
	ContactEmail *string    `json:"contact_email"`
	Notes        *string    `json:"notes"`
	IsActive     *bool      `json:"is_active"`
}

// VendorService defines the vendor management contract.
type VendorService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateVendorInput) (*domain.Vendor, error)
	GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*domain.Vendor, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, tenantID, vendorID uuid.UUID, input UpdateVendorInput) (*domain.Vendor, error)
	Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error
}

type vendorService struct {
	repo         port.VendorRepository
	propertyRepo port.PropertyRepository
}

// NewVendorService creates a new VendorService implementation.
func NewVendorService(repo port.VendorRepository, propertyRepo port.PropertyRepository) VendorService {
	return &vendorService{repo: repo, propertyRepo: propertyRepo}
}

func (s *vendorService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateVendorInput) (*domain.Vendor, error) {
	if input.PropertyID != nil {
		if _, err := s.propertyRepo.GetByID(ctx, tenantID, *input.PropertyID); err != nil {
			return nil, fmt.Errorf("looking up property: %w", err)
		}
	}

	vendor := &domain.Vendor{
		TenantID:     tenantID,
		PropertyID:   input.PropertyID,
		Name:         input.Name,
		TradeType:    input.TradeType,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		Notes:        input.Notes,
		IsActive:     true,
		CreatedBy:    createdBy,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*domain.Vendor, error) {
	return s.repo.GetByID(ctx, tenantID, vendorID)
}

func (s *vendorService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *vendorService) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	return s.repo.ListByProperty(ctx, tenantID, propertyID, offset, limit)
}

func (s *vendorService) Update(ctx context.Context, tenantID, vendorID uuid.UUID, input UpdateVendorInput) (*domain.Vendor, error) {
	vendor, err := s.repo.GetByID(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	if input.PropertyID != nil {
		if _, err := s.propertyRepo.GetByID(ctx, tenantID, *input.PropertyID); err != nil {
			return nil, fmt.Errorf("looking up property: %w", err)
		}
		vendor.PropertyID = input.PropertyID
	}
	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.TradeType != nil {
		vendor.TradeType = *input.TradeType
	}
	if input.ContactName != nil {
		vendor.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		vendor.ContactEmail = *input.ContactEmail
	}
	if input.Notes != nil {
		vendor.Notes = *input.Notes
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, vendorID)
}
