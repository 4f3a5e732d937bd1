package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a new PostgreSQL-backed VendorRepository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *domain.Vendor) error {
	vendor.ID = uuid.New()
	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vendors (id, tenant_id, property_id, name, trade_type, contact_name,
			contact_email, notes, is_active, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		vendor.ID, vendor.TenantID, vendor.PropertyID, vendor.Name, vendor.TradeType,
		vendor.ContactName, vendor.ContactEmail, vendor.Notes, vendor.IsActive,
		vendor.CreatedBy, vendor.CreatedAt, vendor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("vendorRepo.Create: %w", err)
	}
	return nil
}

func (r *vendorRepo) GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.GetContext(ctx, &vendor,
		"SELECT * FROM vendors WHERE id = $1 AND tenant_id = $2", vendorID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendorRepo.GetByID: %w", err)
	}
	return &vendor, nil
}

func (r *vendorRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM vendors WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByTenant count: %w", err)
	}

	var vendors []domain.Vendor
	err = r.db.SelectContext(ctx, &vendors,
		"SELECT * FROM vendors WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByTenant: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM vendors WHERE tenant_id = $1 AND property_id = $2",
		tenantID, propertyID)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByProperty count: %w", err)
	}

	var vendors []domain.Vendor
	err = r.db.SelectContext(ctx, &vendors,
		`SELECT * FROM vendors WHERE tenant_id = $1 AND property_id = $2
		 ORDER BY name LIMIT $3 OFFSET $4`,
		tenantID, propertyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vendorRepo.ListByProperty: %w", err)
	}
	return vendors, total, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *domain.Vendor) error {
	vendor.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET property_id = $1, name = $2, trade_type = $3, contact_name = $4,
			contact_email = $5, notes = $6, is_active = $7, updated_at = $8
		 WHERE id = $9 AND tenant_id = $10`,
		vendor.PropertyID, vendor.Name, vendor.TradeType, vendor.ContactName,
		vendor.ContactEmail, vendor.Notes, vendor.IsActive, vendor.UpdatedAt,
		vendor.ID, vendor.TenantID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// AppendNote appends a timestamped line to the vendor's notes without
// overwriting manual edits made in between.
func (r *vendorRepo) AppendNote(ctx context.Context, tenantID, vendorID uuid.UUID, note string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE vendors
		 SET notes = CASE WHEN notes = '' THEN $1 ELSE notes || E'\n' || $1 END,
		     updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3`,
		note, vendorID, tenantID)
	if err != nil {
		return fmt.Errorf("vendorRepo.AppendNote: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vendors WHERE id = $1 AND tenant_id = $2", vendorID, tenantID)
	if err != nil {
		return fmt.Errorf("vendorRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}
