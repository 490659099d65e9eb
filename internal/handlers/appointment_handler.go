package handlers

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/httpresp"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	ucBooking "github.com/stilevo/stilevo-api/internal/usecase/booking"
)

// AppointmentHandler serves the shared schedule view. It keeps the last
// successful listing in memory so a transient read failure degrades to
// stale data instead of an empty calendar; Refresh is driven by the
// store's change subscription.
type AppointmentHandler struct {
	store  domain.Store
	state  *state.Store
	cancel *ucBooking.CancelAppointment

	mu   sync.RWMutex
	last []models.Appointment
}

func NewAppointmentHandler(store domain.Store, st *state.Store, cancel *ucBooking.CancelAppointment) *AppointmentHandler {
	return &AppointmentHandler{store: store, state: st, cancel: cancel}
}

// Refresh re-lists the appointment table and swaps the cached snapshot.
// Wired as the store's change callback.
func (h *AppointmentHandler) Refresh() {
	appts, err := h.store.List(context.Background())
	if err != nil {
		log.Printf("appointments: refresh failed: %v", err)
		return
	}
	h.mu.Lock()
	h.last = appts
	h.mu.Unlock()
}

func (h *AppointmentHandler) List(c *gin.Context) {
	appts, err := h.store.List(c.Request.Context())
	if err != nil {
		log.Printf("appointments: list failed, serving last snapshot: %v", err)
		h.mu.RLock()
		appts = h.last
		h.mu.RUnlock()
	} else {
		h.mu.Lock()
		h.last = appts
		h.mu.Unlock()
	}

	out := make([]models.Appointment, len(appts))
	for i, ap := range appts {
		ap.ReminderSet = h.state.ReminderSet(ap.ID)
		out[i] = ap
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), uint(id)); err != nil {
		switch httperr.BusinessCode(err) {
		case "appointment_not_found":
			httperr.NotFound(c, "appointment_not_found", "Appointment does not exist.")
		case "too_late_to_cancel":
			httperr.Conflict(c, "too_late_to_cancel", "Cancellations close three hours before the visit.")
		default:
			httperr.Internal(c, "cancel_failed", "The appointment could not be cancelled.")
		}
		return
	}

	httpresp.OK(c, gin.H{"cancelled": true})
}

// ToggleReminder flips the master's per-appointment reminder flag. The flag
// is presentation state and lives beside the client roster, not in the
// appointment table.
func (h *AppointmentHandler) ToggleReminder(c *gin.Context) {
	id := c.Param("id")
	httpresp.OK(c, gin.H{"id": id, "reminder_set": h.state.ToggleReminder(id)})
}
