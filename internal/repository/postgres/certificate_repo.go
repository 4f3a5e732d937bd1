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

type certificateRepo struct {
	db *sqlx.DB
}

// NewCertificateRepo creates a new PostgreSQL-backed CertificateRepository.
func NewCertificateRepo(db *sqlx.DB) port.CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) Create(ctx context.Context, cert *domain.Certificate) error {
	cert.ID = uuid.New()
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO certificates (id, tenant_id, vendor_id, uploaded_by, file_name,
			original_name, file_type, file_size, s3_bucket, s3_key, content_type,
			status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		cert.ID, cert.TenantID, cert.VendorID, cert.UploadedBy, cert.FileName,
		cert.OriginalName, cert.FileType, cert.FileSize, cert.S3Bucket, cert.S3Key,
		cert.ContentType, cert.Status, cert.CreatedAt, cert.UpdatedAt)
	if err != nil {
		return fmt.Errorf("certificateRepo.Create: %w", err)
	}
	return nil
}

func (r *certificateRepo) GetByID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Certificate, error) {
	var cert domain.Certificate
	err := r.db.GetContext(ctx, &cert,
		"SELECT * FROM certificates WHERE id = $1 AND tenant_id = $2", certID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("certificateRepo.GetByID: %w", err)
	}
	return &cert, nil
}

func (r *certificateRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Certificate, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM certificates WHERE tenant_id = $1 AND vendor_id = $2",
		tenantID, vendorID)
	if err != nil {
		return nil, 0, fmt.Errorf("certificateRepo.ListByVendor count: %w", err)
	}

	var certs []domain.Certificate
	err = r.db.SelectContext(ctx, &certs,
		`SELECT * FROM certificates WHERE tenant_id = $1 AND vendor_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, vendorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("certificateRepo.ListByVendor: %w", err)
	}
	return certs, total, nil
}

func (r *certificateRepo) UpdateStatus(ctx context.Context, tenantID, certID uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE certificates SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3`,
		status, certID, tenantID)
	if err != nil {
		return fmt.Errorf("certificateRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCertificateNotFound
	}
	return nil
}

func (r *certificateRepo) Delete(ctx context.Context, tenantID, certID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM certificates WHERE id = $1 AND tenant_id = $2", certID, tenantID)
	if err != nil {
		return fmt.Errorf("certificateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCertificateNotFound
	}
	return nil
}
