package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coitrack/internal/domain"
	"coitrack/internal/service"
)

// ExtractionHandler handles extraction and review endpoints.
type ExtractionHandler struct {
	certService service.CertificateService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(certService service.CertificateService) *ExtractionHandler {
	return &ExtractionHandler{certService: certService}
}

// reviewRequest is the JSON body for review updates.
type reviewRequest struct {
	Status domain.ReviewStatus `json:"status" binding:"required"`
	Notes  string              `json:"notes"`
}

// GetByID handles GET /api/v1/extractions/:id
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	extraction, err := h.certService.GetExtraction(c.Request.Context(), tenantID, extractionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, extraction)
}

// ListByVendor handles GET /api/v1/vendors/:id/extractions
func (h *ExtractionHandler) ListByVendor(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
		return
	}

	offset, limit := pagination(c)

	extractions, total, err := h.certService.ListExtractionsByVendor(c.Request.Context(), tenantID, vendorID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, extractions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ReviewQueue handles GET /api/v1/extractions/review-queue
func (h *ExtractionHandler) ReviewQueue(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)

	extractions, total, err := h.certService.ListReviewQueue(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, extractions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateReview handles PUT /api/v1/extractions/:id/review
func (h *ExtractionHandler) UpdateReview(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	extraction, err := h.certService.UpdateReview(c.Request.Context(), service.UpdateReviewInput{
		TenantID:     tenantID,
		ExtractionID: extractionID,
		ReviewerID:   userID,
		Status:       req.Status,
		Notes:        req.Notes,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, extraction)
}

// Retry handles POST /api/v1/extractions/:id/retry
func (h *ExtractionHandler) Retry(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	extraction, err := h.certService.RetryExtraction(c.Request.Context(), tenantID, extractionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"message":    "extraction retry started",
		"extraction": extraction,
	})
}

// AuditLog handles GET /api/v1/extractions/:id/audit
func (h *ExtractionHandler) AuditLog(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	extractionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid extraction ID")
		return
	}

	offset, limit := pagination(c)

	entries, total, err := h.certService.ListAuditLog(c.Request.Context(), tenantID, extractionID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}
