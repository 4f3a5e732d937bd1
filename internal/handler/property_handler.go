package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coitrack/internal/service"
)

// PropertyHandler handles property management endpoints.
type PropertyHandler struct {
	propertyService service.PropertyService
	vendorService   service.VendorService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService service.PropertyService, vendorService service.VendorService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService, vendorService: vendorService}
}

// Create handles POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, property)
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)

	properties, total, err := h.propertyService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, properties, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property ID")
		return
	}

	property, err := h.propertyService.GetByID(c.Request.Context(), tenantID, propertyID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, property)
}

// ListVendors handles GET /api/v1/properties/:id/vendors
func (h *PropertyHandler) ListVendors(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property ID")
		return
	}

	offset, limit := pagination(c)

	vendors, total, err := h.vendorService.ListByProperty(c.Request.Context(), tenantID, propertyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property ID")
		return
	}

	var input service.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), tenantID, propertyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, property)
}

// Delete handles DELETE /api/v1/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid property ID")
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), tenantID, propertyID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "property deleted"})
}
