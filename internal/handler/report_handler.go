package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coitrack/internal/csvexport"
	"coitrack/internal/domain"
	"coitrack/internal/port"
	"coitrack/internal/service"
)

// ReportHandler handles compliance reporting endpoints.
type ReportHandler struct {
	reportService service.ReportService
	tenantService service.TenantService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, tenantService service.TenantService) *ReportHandler {
	return &ReportHandler{reportService: reportService, tenantService: tenantService}
}

// validStatusFilters defines the allowed compliance status filter values.
var validStatusFilters = map[string]bool{
	string(domain.ComplianceGreen):  true,
	string(domain.ComplianceYellow): true,
	string(domain.ComplianceRed):    true,
}

// parseReportFilters extracts common report filter parameters from query params.
func parseReportFilters(c *gin.Context) (port.ReportFilters, error) {
	offset, limit := pagination(c)
	filters := port.ReportFilters{Offset: offset, Limit: limit}

	if pidStr := c.Query("property_id"); pidStr != "" {
		pid, err := uuid.Parse(pidStr)
		if err != nil {
			return filters, fmt.Errorf("invalid 'property_id': must be a valid UUID")
		}
		filters.PropertyID = &pid
	}

	filters.TradeType = c.Query("trade_type")

	if status := c.Query("status"); status != "" {
		if !validStatusFilters[status] {
			return filters, fmt.Errorf("invalid 'status': must be one of green, yellow, red")
		}
		filters.Status = domain.ComplianceStatus(status)
	}

	return filters, nil
}

// Overview handles GET /api/v1/reports/compliance
// @Summary      Compliance overview report
// @Description  Per-vendor compliance status based on each vendor's latest completed extraction
// @Tags         reports
// @Produce      json
// @Param        property_id query string false "Filter by property UUID"
// @Param        trade_type query string false "Filter by trade type"
// @Param        status query string false "Filter by compliance status" Enums(green, yellow, red)
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ComplianceOverviewRow,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/compliance [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	rows, total, err := h.reportService.ComplianceOverview(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, rows, PagMeta{Total: total, Offset: filters.Offset, Limit: filters.Limit})
}

// Stats handles GET /api/v1/reports/stats
// @Summary      Compliance stats
// @Description  Aggregate vendor counts by compliance status for the tenant dashboard
// @Tags         reports
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.ComplianceStats}
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/stats [get]
func (h *ReportHandler) Stats(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	stats, err := h.reportService.ComplianceStats(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// ExportCSV handles GET /api/v1/reports/compliance/export
// @Summary      Export compliance overview as CSV
// @Description  Streams the full compliance overview (all matching rows) as a CSV download
// @Tags         reports
// @Produce      text/csv
// @Param        property_id query string false "Filter by property UUID"
// @Param        trade_type query string false "Filter by trade type"
// @Param        status query string false "Filter by compliance status" Enums(green, yellow, red)
// @Success      200 {file} file "CSV file"
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/compliance/export [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	// Export ignores pagination and streams every matching row.
	filters.Offset = 0
	filters.Limit = 10000

	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	rows, _, err := h.reportService.ComplianceOverview(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(tenant.Name)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteRows(rows); err != nil {
		return
	}
	w.Flush()
}
