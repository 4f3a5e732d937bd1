package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// ReminderLogRepository defines the contract for reminder send-log
// persistence. The log is the source of truth for dedup decisions.
type ReminderLogRepository interface {
	Create(ctx context.Context, entry *domain.ReminderLog) error
	// HasStage reports whether any reminder at the given stage was ever
	// logged for the vendor, regardless of policy period.
	HasStage(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (bool, error)
	// LastSentAt returns the most recent send time for the vendor at the
	// given stage, or ErrNotFound when none was ever logged.
	LastSentAt(ctx context.Context, tenantID, vendorID uuid.UUID, stage domain.ReminderStage) (time.Time, error)
	ListByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, offset, limit int) ([]domain.ReminderLog, int, error)
}

// ReminderCandidateRepository lists vendors eligible for reminder staging:
// active vendors with a contact email whose latest completed extraction
// carries an expiry date.
type ReminderCandidateRepository interface {
	ListCandidates(ctx context.Context) ([]domain.ReminderCandidate, error)
	ListCandidatesByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.ReminderCandidate, error)
}
