package port

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// AuditRepository defines the contract for extraction audit log persistence.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByExtraction(ctx context.Context, tenantID, extractionID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}
