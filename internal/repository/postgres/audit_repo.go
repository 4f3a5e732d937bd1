package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_audit_log (id, tenant_id, extraction_id, user_id, action, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TenantID, entry.ExtractionID, entry.UserID,
		entry.Action, entry.Changes, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

func (r *auditRepo) ListByExtraction(ctx context.Context, tenantID, extractionID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM extraction_audit_log WHERE tenant_id = $1 AND extraction_id = $2",
		tenantID, extractionID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByExtraction count: %w", err)
	}

	var entries []domain.AuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM extraction_audit_log WHERE tenant_id = $1 AND extraction_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		tenantID, extractionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByExtraction: %w", err)
	}
	return entries, total, nil
}
