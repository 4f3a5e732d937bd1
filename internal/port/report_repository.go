package port

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
)

// ReportFilters narrows report queries.
type ReportFilters struct {
	PropertyID *uuid.UUID
	TradeType  string
	Status     domain.ComplianceStatus
	Offset     int
	Limit      int
}

// ReportRepository provides aggregation queries for compliance reporting.
type ReportRepository interface {
	ComplianceOverview(ctx context.Context, tenantID uuid.UUID, filters ReportFilters) ([]domain.ComplianceOverviewRow, int, error)
	ComplianceStats(ctx context.Context, tenantID uuid.UUID) (*domain.ComplianceStats, error)
}
