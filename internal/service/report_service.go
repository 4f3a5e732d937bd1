package service

import (
	"context"

	"github.com/google/uuid"

	"coitrack/internal/domain"
	"coitrack/internal/port"
)

// ReportService provides compliance reporting over scored extractions.
type ReportService interface {
	ComplianceOverview(ctx context.Context, tenantID uuid.UUID, filters port.ReportFilters) ([]domain.ComplianceOverviewRow, int, error)
	ComplianceStats(ctx context.Context, tenantID uuid.UUID) (*domain.ComplianceStats, error)
}

type reportService struct {
	reportRepo port.ReportRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(reportRepo port.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) ComplianceOverview(ctx context.Context, tenantID uuid.UUID, filters port.ReportFilters) ([]domain.ComplianceOverviewRow, int, error) {
	return s.reportRepo.ComplianceOverview(ctx, tenantID, filters)
}

func (s *reportService) ComplianceStats(ctx context.Context, tenantID uuid.UUID) (*domain.ComplianceStats, error) {
	return s.reportRepo.ComplianceStats(ctx, tenantID)
}
