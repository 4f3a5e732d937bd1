package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"coitrack/internal/service"
)

// ReminderHandler handles reminder dispatch endpoints.
type ReminderHandler struct {
	reminderService service.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// DispatchNow handles POST /api/v1/reminders/dispatch
// Runs the reminder dispatch loop immediately for the caller's tenant instead
// of waiting for the next scheduled run. Dedup rules still apply.
func (h *ReminderHandler) DispatchNow(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	sent, err := h.reminderService.DispatchDueForTenant(c.Request.Context(), tenantID, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"reminders_sent": sent})
}
