package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coitrack/internal/service"
)

// CertificateHandler handles certificate upload and extraction endpoints.
type CertificateHandler struct {
	certService service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(certService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

// Upload handles POST /api/v1/vendors/:id/certificates
// @Summary Upload a certificate of insurance
// @Description Upload a COI (PDF, JPG, PNG) for a vendor and queue AI extraction
// @Tags certificates
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Vendor ID (UUID)"
// @Param file formData file true "Certificate file (PDF, JPG, or PNG)"
// @Success 201 {object} APIResponse "Certificate created, extraction started"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 500 {object} APIResponse "Upload failed"
// @Security BearerAuth
// @Router /vendors/{id}/certificates [post]
func (h *CertificateHandler) Upload(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	cert, extraction, err := h.certService.UploadAndExtract(c.Request.Context(), service.UploadCertificateInput{
		TenantID:   tenantID,
		VendorID:   vendorID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"certificate": cert,
		"extraction":  extraction,
	})
}

// ListByVendor handles GET /api/v1/vendors/:id/certificates
func (h *CertificateHandler) ListByVendor(c *gin.Context) {
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

	certs, total, err := h.certService.ListByVendor(c.Request.Context(), tenantID, vendorID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, certs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/certificates/:id
func (h *CertificateHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	certID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid certificate ID")
		return
	}

	cert, err := h.certService.GetCertificate(c.Request.Context(), tenantID, certID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.certService.GetDownloadURL(c.Request.Context(), tenantID, certID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"certificate":  cert,
		"download_url": downloadURL,
	})
}

// Delete handles DELETE /api/v1/certificates/:id
func (h *CertificateHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	certID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid certificate ID")
		return
	}

	if err := h.certService.DeleteCertificate(c.Request.Context(), tenantID, certID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "certificate deleted"})
}
