package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coitrack/internal/service"
)

// RuleSetHandler handles compliance rule set endpoints.
type RuleSetHandler struct {
	ruleSetService service.RuleSetService
}

// NewRuleSetHandler creates a new RuleSetHandler.
func NewRuleSetHandler(ruleSetService service.RuleSetService) *RuleSetHandler {
	return &RuleSetHandler{ruleSetService: ruleSetService}
}

// Create handles POST /api/v1/rule-sets
func (h *RuleSetHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.RuleSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rules, err := h.ruleSetService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rules)
}

// List handles GET /api/v1/rule-sets
func (h *RuleSetHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	rules, err := h.ruleSetService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rules)
}

// GetByID handles GET /api/v1/rule-sets/:id
func (h *RuleSetHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleSetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule set ID")
		return
	}

	rules, err := h.ruleSetService.GetByID(c.Request.Context(), tenantID, ruleSetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rules)
}

// Update handles PUT /api/v1/rule-sets/:id
func (h *RuleSetHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleSetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule set ID")
		return
	}

	var input service.RuleSetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rules, err := h.ruleSetService.Update(c.Request.Context(), tenantID, ruleSetID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rules)
}

// Delete handles DELETE /api/v1/rule-sets/:id
func (h *RuleSetHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	ruleSetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule set ID")
		return
	}

	if err := h.ruleSetService.Delete(c.Request.Context(), tenantID, ruleSetID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "rule set deleted"})
}
