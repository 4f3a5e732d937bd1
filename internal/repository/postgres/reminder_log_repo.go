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

type reminderLogRepo struct {
	db *sqlx.DB
}

// NewReminderLogRepo creates a new PostgreSQL-backed ReminderLogRepository.
func NewReminderLogRepo(db *sqlx.DB) port.ReminderLogRepository {
	return &reminderLogRepo{db: db}
}

func (r *reminderLogRepo) Create(ctx context.Context, entry *domain.ReminderLog) error {
	entry.ID = uuid.New()
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminder_logs (id, tenant_id, vendor_id, stage, sent_to, message, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.TenantID, entry.VendorID, entry.Stage,
		entry.SentTo, entry.Message, entry.SentAt)
	if err != nil {
		return fmt.Errorf("reminderLogRepo.Create: %w", err)
	}
	return nil
}

func (r *reminderLogRepo) HasStage(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (
			SELECT 1 FROM reminder_logs
			WHERE tenant_id = $1 AND vendor_id = $2 AND stage = $3
		 )`,
		tenantID, vendorID, stage)
	if err != nil {
		return false, fmt.Errorf("reminderLogRepo.HasStage: %w", err)
	}
	return exists, nil
}

func (r *reminderLogRepo) LastSentAt(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (time.Time, error) {
	var sentAt time.Time
	err := r.db.GetContext(ctx, &sentAt,
		`SELECT sent_at FROM reminder_logs
		 WHERE tenant_id = $1 AND vendor_id = $2 AND stage = $3
		 ORDER BY sent_at DESC LIMIT 1`,
		tenantID, vendorID, stage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, domain.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("reminderLogRepo.LastSentAt: %w", err)
	}
	return sentAt, nil
}

func (r *reminderLogRepo) ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.ReminderLog, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM reminder_logs WHERE tenant_id = $1 AND vendor_id = $2",
		tenantID, vendorID)
	if err != nil {
		return nil, 0, fmt.Errorf("reminderLogRepo.ListByVendor count: %w", err)
	}

	var logs []domain.ReminderLog
	err = r.db.SelectContext(ctx, &logs,
		`SELECT * FROM reminder_logs WHERE tenant_id = $1 AND vendor_id = $2
		 ORDER BY sent_at DESC LIMIT $3 OFFSET $4`,
		tenantID, vendorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reminderLogRepo.ListByVendor: %w", err)
	}
	return logs, total, nil
}

type reminderCandidateRepo struct {
	db *sqlx.DB
}

// NewReminderCandidateRepo creates a new PostgreSQL-backed ReminderCandidateRepository.
func NewReminderCandidateRepo(db *sqlx.DB) port.ReminderCandidateRepository {
	return &reminderCandidateRepo{db: db}
}

// candidateQuery joins each active vendor with its latest completed
// extraction. Vendors without a contact email or without an expiry date are
// excluded up front; staging has nothing to act on for them.
const candidateQuery = `
	SELECT v.tenant_id, v.id AS vendor_id, v.name AS vendor_name, v.trade_type,
	       v.contact_name, v.contact_email,
	       e.next_expiry_date AS expiry_date, e.compliance_reasons AS reasons
	FROM vendors v
	JOIN LATERAL (
		SELECT next_expiry_date, compliance_reasons
		FROM extractions
		WHERE vendor_id = v.id AND tenant_id = v.tenant_id AND extraction_status = 'completed'
		ORDER BY extracted_at DESC
		LIMIT 1
	) e ON true
	JOIN tenants t ON t.id = v.tenant_id AND t.is_active
	WHERE v.is_active AND v.contact_email != '' AND e.next_expiry_date IS NOT NULL`

func (r *reminderCandidateRepo) ListCandidates(ctx context.Context) ([]domain.ReminderCandidate, error) {
	var candidates []domain.ReminderCandidate
	err := r.db.SelectContext(ctx, &candidates, candidateQuery+" ORDER BY e.next_expiry_date")
	if err != nil {
		return nil, fmt.Errorf("reminderCandidateRepo.ListCandidates: %w", err)
	}
	return candidates, nil
}

func (r *reminderCandidateRepo) ListCandidatesByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ReminderCandidate, error) {
	var candidates []domain.ReminderCandidate
	err := r.db.SelectContext(ctx, &candidates,
		candidateQuery+" AND v.tenant_id = $1 ORDER BY e.next_expiry_date", tenantID)
	if err != nil {
		return nil, fmt.Errorf("reminderCandidateRepo.ListCandidatesByTenant: %w", err)
	}
	return candidates, nil
}
