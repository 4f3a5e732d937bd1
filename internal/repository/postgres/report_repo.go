package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

// latestExtractionJoin pairs each vendor with its most recent completed
// extraction; vendors with no completed extraction surface with NULL verdict
// columns so the report still lists them as unscored.
const latestExtractionJoin = `
	FROM vendors v
	LEFT JOIN properties p ON p.id = v.property_id
	LEFT JOIN LATERAL (
		SELECT compliance_status, compliance_reasons, next_expiry_date, review_status, extracted_at
		FROM extractions
		WHERE vendor_id = v.id AND tenant_id = v.tenant_id AND extraction_status = 'completed'
		ORDER BY extracted_at DESC
		LIMIT 1
	) e ON true`

// buildOverviewWhere constructs the dynamic WHERE clause for overview queries.
func buildOverviewWhere(tenantID uuid.UUID, filters port.ReportFilters) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE v.tenant_id = $1 AND v.is_active"
	argN := 2

	if filters.PropertyID != nil {
		clause += fmt.Sprintf(" AND v.property_id = $%d", argN)
		args = append(args, *filters.PropertyID)
		argN++
	}
	if filters.TradeType != "" {
		clause += fmt.Sprintf(" AND v.trade_type = $%d", argN)
		args = append(args, filters.TradeType)
		argN++
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND e.compliance_status = $%d", argN)
		args = append(args, filters.Status)
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}

	return clause, args
}

func (r *reportRepo) ComplianceOverview(ctx context.Context, tenantID uuid.UUID, filters port.ReportFilters) ([]domain.ComplianceOverviewRow, int, error) {
	where, args := buildOverviewWhere(tenantID, filters)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) "+latestExtractionJoin+" "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ComplianceOverview count: %w", err)
	}

	query := `SELECT v.id AS vendor_id, v.name AS vendor_name, v.trade_type,
			p.name AS property_name, v.contact_email,
			COALESCE(e.compliance_status, '') AS compliance_status,
			COALESCE(e.compliance_reasons, '[]') AS compliance_reasons,
			e.next_expiry_date,
			COALESCE(e.review_status, '') AS review_status,
			e.extracted_at AS last_upload_at` +
		latestExtractionJoin + " " + where +
		fmt.Sprintf(" ORDER BY v.name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	var rows []domain.ComplianceOverviewRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("reportRepo.ComplianceOverview: %w", err)
	}
	return rows, total, nil
}

func (r *reportRepo) ComplianceStats(ctx context.Context, tenantID uuid.UUID) (*domain.ComplianceStats, error) {
	var stats domain.ComplianceStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT COUNT(*) AS total_vendors,
			COUNT(*) FILTER (WHERE e.compliance_status = 'green') AS green,
			COUNT(*) FILTER (WHERE e.compliance_status = 'yellow') AS yellow,
			COUNT(*) FILTER (WHERE e.compliance_status = 'red') AS red,
			COUNT(*) FILTER (WHERE e.compliance_status IS NULL) AS unscored,
			COUNT(*) FILTER (WHERE e.review_status = 'needs_review') AS needs_review,
			COUNT(*) FILTER (WHERE e.next_expiry_date IS NOT NULL
				AND e.next_expiry_date <= NOW() + INTERVAL '30 days') AS expiring_in_30d`+
			latestExtractionJoin+
			" WHERE v.tenant_id = $1 AND v.is_active",
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ComplianceStats: %w", err)
	}
	return &stats, nil
}
