package port

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// PropertyRepository defines the contract for property persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, tenantID, propertyID uuid.UUID) (*domain.Property, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Property, int, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error
}

// VendorRepository defines the contract for vendor persistence.
// All query methods include tenantID for tenant isolation.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*domain.Vendor, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	AppendNote(ctx context.Context, tenantID, vendorID uuid.UUID, note string) error
	Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error
}

// RuleSetRepository defines the contract for compliance rule set persistence.
type RuleSetRepository interface {
	Create(ctx context.Context, rules *domain.ComplianceRuleSet) error
	GetByID(ctx context.Context, tenantID, ruleSetID uuid.UUID) (*domain.ComplianceRuleSet, error)
	GetByTradeType(ctx context.Context, tenantID uuid.UUID, tradeType string) (*domain.ComplianceRuleSet, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ComplianceRuleSet, error)
	Update(ctx context.Context, rules *domain.ComplianceRuleSet) error
	Delete(ctx context.Context, tenantID, ruleSetID uuid.UUID) error
}
