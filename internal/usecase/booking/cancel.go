package booking

import (
	"context"
	"strconv"

	"github.com/stilevo/stilevo-api/internal/audit"
	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

type CancelAppointment struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewCancelAppointment(store domain.Store, auditD *audit.Dispatcher) *CancelAppointment {
	return &CancelAppointment{store: store, audit: auditD}
}

// Execute enforces the cancellation window on the appointment's projected
// date/time, then deletes the row. The adapter itself deletes
// unconditionally; the window rule lives here.
func (uc *CancelAppointment) Execute(ctx context.Context, id uint) error {
	appts, err := uc.store.List(ctx)
	if err != nil {
		return err
	}

	idStr := strconv.FormatUint(uint64(id), 10)
	for _, ap := range appts {
		if ap.ID != idStr {
			continue
		}

		if !domain.CanCancel(ap.Date, ap.Time, timezone.Now()) {
			return httperr.ErrBusiness("too_late_to_cancel")
		}

		if err := uc.store.Delete(ctx, id); err != nil {
			return err
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_cancelled",
			Entity:   "appointment",
			EntityID: idStr,
		})
		return nil
	}

	return httperr.ErrBusiness("appointment_not_found")
}
