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

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Create(ctx context.Context, ext *domain.Extraction) error {
	ext.ID = uuid.New()
	now := time.Now().UTC()
	ext.CreatedAt = now
	ext.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions (id, tenant_id, vendor_id, certificate_id,
			extractor_model, extractor_prompt, extracted_fields, confidence_score,
			extraction_status, extraction_error, extract_attempts, retry_after, extracted_at,
			compliance_status, compliance_reasons, next_expiry_date,
			has_regression, regressions,
			review_status, reviewed_by, reviewed_at, reviewer_notes,
			created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		ext.ID, ext.TenantID, ext.VendorID, ext.CertificateID,
		ext.ExtractorModel, ext.ExtractorPrompt, ext.ExtractedFields, ext.ConfidenceScore,
		ext.ExtractionStatus, ext.ExtractionError, ext.ExtractAttempts, ext.RetryAfter, ext.ExtractedAt,
		ext.ComplianceStatus, ext.ComplianceReasons, ext.NextExpiryDate,
		ext.HasRegression, ext.Regressions,
		ext.ReviewStatus, ext.ReviewedBy, ext.ReviewedAt, ext.ReviewerNotes,
		ext.CreatedBy, ext.CreatedAt, ext.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrExtractionAlreadyExists
		}
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRepo) GetByID(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		"SELECT * FROM extractions WHERE id = $1 AND tenant_id = $2", extractionID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByID: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) GetByCertificateID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		"SELECT * FROM extractions WHERE certificate_id = $1 AND tenant_id = $2", certID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByCertificateID: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) GetLatestCompleted(ctx context.Context, tenantID, vendorID, excludeID uuid.UUID) (*domain.Extraction, error) {
	var ext domain.Extraction
	err := r.db.GetContext(ctx, &ext,
		`SELECT * FROM extractions
		 WHERE tenant_id = $1 AND vendor_id = $2 AND id != $3 AND extraction_status = $4
		 ORDER BY extracted_at DESC LIMIT 1`,
		tenantID, vendorID, excludeID, domain.ExtractionStatusCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetLatestCompleted: %w", err)
	}
	return &ext, nil
}

func (r *extractionRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM extractions WHERE tenant_id = $1 AND vendor_id = $2",
		tenantID, vendorID)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByVendor count: %w", err)
	}

	var exts []domain.Extraction
	err = r.db.SelectContext(ctx, &exts,
		`SELECT * FROM extractions WHERE tenant_id = $1 AND vendor_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, vendorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByVendor: %w", err)
	}
	return exts, total, nil
}

func (r *extractionRepo) ListByReviewStatus(ctx context.Context, tenantID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.Extraction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM extractions WHERE tenant_id = $1 AND review_status = $2",
		tenantID, status)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByReviewStatus count: %w", err)
	}

	var exts []domain.Extraction
	err = r.db.SelectContext(ctx, &exts,
		`SELECT * FROM extractions WHERE tenant_id = $1 AND review_status = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionRepo.ListByReviewStatus: %w", err)
	}
	return exts, total, nil
}

func (r *extractionRepo) UpdateResults(ctx context.Context, ext *domain.Extraction) error {
	ext.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE extractions SET
			extractor_model = $1, extractor_prompt = $2, extracted_fields = $3,
			confidence_score = $4, extraction_status = $5, extraction_error = $6,
			extract_attempts = $7, retry_after = $8, extracted_at = $9,
			compliance_status = $10, compliance_reasons = $11, next_expiry_date = $12,
			has_regression = $13, regressions = $14, review_status = $15, updated_at = $16
		 WHERE id = $17 AND tenant_id = $18`,
		ext.ExtractorModel, ext.ExtractorPrompt, ext.ExtractedFields,
		ext.ConfidenceScore, ext.ExtractionStatus, ext.ExtractionError,
		ext.ExtractAttempts, ext.RetryAfter, ext.ExtractedAt,
		ext.ComplianceStatus, ext.ComplianceReasons, ext.NextExpiryDate,
		ext.HasRegression, ext.Regressions, ext.ReviewStatus, ext.UpdatedAt,
		ext.ID, ext.TenantID)
	if err != nil {
		return fmt.Errorf("extractionRepo.UpdateResults: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}

func (r *extractionRepo) UpdateReviewStatus(ctx context.Context, ext *domain.Extraction) error {
	ext.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE extractions SET review_status = $1, reviewed_by = $2, reviewed_at = $3,
			reviewer_notes = $4, updated_at = $5
		 WHERE id = $6 AND tenant_id = $7`,
		ext.ReviewStatus, ext.ReviewedBy, ext.ReviewedAt,
		ext.ReviewerNotes, ext.UpdatedAt, ext.ID, ext.TenantID)
	if err != nil {
		return fmt.Errorf("extractionRepo.UpdateReviewStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}

func (r *extractionRepo) MarkQueued(ctx context.Context, tenantID, extractionID uuid.UUID, retryAfter time.Time, extractionError string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE extractions SET extraction_status = $1, retry_after = $2,
			extraction_error = $3, updated_at = NOW()
		 WHERE id = $4 AND tenant_id = $5`,
		domain.ExtractionStatusQueued, retryAfter, extractionError, extractionID, tenantID)
	if err != nil {
		return fmt.Errorf("extractionRepo.MarkQueued: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}

func (r *extractionRepo) MarkFailed(ctx context.Context, tenantID, extractionID uuid.UUID, extractionError string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE extractions SET extraction_status = $1, extraction_error = $2, updated_at = NOW()
		 WHERE id = $3 AND tenant_id = $4`,
		domain.ExtractionStatusFailed, extractionError, extractionID, tenantID)
	if err != nil {
		return fmt.Errorf("extractionRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}

// ClaimQueued uses SKIP LOCKED so concurrent workers never claim the same row.
func (r *extractionRepo) ClaimQueued(ctx context.Context, now time.Time, limit int) ([]domain.Extraction, error) {
	var exts []domain.Extraction
	err := r.db.SelectContext(ctx, &exts,
		`UPDATE extractions SET extraction_status = $1, updated_at = NOW()
		 WHERE id IN (
			SELECT id FROM extractions
			WHERE extraction_status = $2 AND (retry_after IS NULL OR retry_after <= $3)
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ExtractionStatusProcessing, domain.ExtractionStatusQueued, now, limit)
	if err != nil {
		return nil, fmt.Errorf("extractionRepo.ClaimQueued: %w", err)
	}
	return exts, nil
}
