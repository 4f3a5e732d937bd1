package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// CertificateRepository defines the contract for certificate file metadata
// persistence. All query methods include tenantID for tenant isolation.
type CertificateRepository interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	GetByID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Certificate, error)
	ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Certificate, int, error)
	UpdateStatus(ctx context.Context, tenantID, certID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, tenantID, certID uuid.UUID) error
}

// ExtractionRepository defines the contract for extraction persistence,
// including the queue-claim operation used by the retry worker.
type ExtractionRepository interface {
	Create(ctx context.Context, ext *domain.Extraction) error
	GetByID(ctx context.Context, tenantID, extractionID uuid.UUID) (*domain.Extraction, error)
	GetByCertificateID(ctx context.Context, tenantID, certID uuid.UUID) (*domain.Extraction, error)
	// GetLatestCompleted returns the most recent completed extraction for a
	// vendor, excluding the given extraction ID. Returns ErrNotFound when the
	// vendor has no prior completed extraction.
	GetLatestCompleted(ctx context.Context, tenantID, vendorID, excludeID uuid.UUID) (*domain.Extraction, error)
	ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.Extraction, int, error)
	ListByReviewStatus(ctx context.Context, tenantID uuid.UUID, status domain.ReviewStatus, offset, limit int) ([]domain.Extraction, int, error)
	UpdateResults(ctx context.Context, ext *domain.Extraction) error
	UpdateReviewStatus(ctx context.Context, ext *domain.Extraction) error
	MarkQueued(ctx context.Context, tenantID, extractionID uuid.UUID, retryAfter time.Time, extractionError string) error
	MarkFailed(ctx context.Context, tenantID, extractionID uuid.UUID, extractionError string) error
	// ClaimQueued atomically moves up to limit due queued extractions to
	// processing and returns them. Concurrent workers never claim the same row.
	ClaimQueued(ctx context.Context, now time.Time, limit int) ([]domain.Extraction, error)
}
