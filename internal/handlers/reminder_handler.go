package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/httpresp"
	"github.com/stilevo/stilevo-api/internal/state"
)

type ReminderHandler struct {
	state *state.Store
}

func NewReminderHandler(st *state.Store) *ReminderHandler {
	return &ReminderHandler{state: st}
}

func (h *ReminderHandler) List(c *gin.Context) {
	httpresp.List(c, h.state.Reminders())
}

func (h *ReminderHandler) MarkProcessed(c *gin.Context) {
	id := c.Param("id")
	if !h.state.MarkReminderProcessed(id) {
		httperr.NotFound(c, "reminder_not_found", "Reminder does not exist.")
		return
	}
	httpresp.OK(c, gin.H{"id": id, "status": "processed"})
}
