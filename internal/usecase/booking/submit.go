package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stilevo/stilevo-api/internal/audit"
	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/domain/loyalty"
	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

// ======================================================
// USE CASE — submit one booking (single or multi date)
// ======================================================

type SubmitBooking struct {
	store    domain.Store
	state    *state.Store
	resolver *schedule.Resolver
	audit    *audit.Dispatcher
}

func NewSubmitBooking(
	store domain.Store,
	st *state.Store,
	resolver *schedule.Resolver,
	auditD *audit.Dispatcher,
) *SubmitBooking {
	return &SubmitBooking{
		store:    store,
		state:    st,
		resolver: resolver,
		audit:    auditD,
	}
}

// Execute runs one booking batch. The Nth date corresponds to visit offset N
// from the client's pre-batch count; freeness is decided against that count
// for the whole batch. Per-date store calls are independent: a failed date
// never rolls back its siblings, it just shows up in the outcome list.
func (uc *SubmitBooking) Execute(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client, ok := uc.state.ClientByID(req.TargetClientID)
	if !ok {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	preVisits := client.VisitsCount
	now := timezone.Now()

	name := fallback(req.ClientName, client.Name)
	phone := fallback(req.ClientPhone, client.Phone)

	res := &domain.Result{
		Outcomes: make([]domain.DateOutcome, 0, len(req.Dates)),
	}

	// --------------------------------------------------
	// per-date store writes
	// --------------------------------------------------
	for i, label := range req.Dates {
		out := domain.DateOutcome{
			Date:   label,
			IsFree: loyalty.IsFreeVisit(preVisits, i+1),
		}

		visitAt, err := uc.resolver.Resolve(label, req.Time, now)
		if err != nil {
			out.Err = err
			res.Outcomes = append(res.Outcomes, out)
			continue
		}

		id, err := uc.store.Create(ctx, models.AppointmentRow{
			ClientName: name,
			Phone:      phone,
			Service:    req.ServiceName,
			VisitTime:  visitAt,
		})
		if err != nil {
			out.Err = err
		} else {
			out.AppointmentID = strconv.FormatUint(uint64(id), 10)
			res.Booked++
		}
		res.Outcomes = append(res.Outcomes, out)
	}

	// --------------------------------------------------
	// one visit-count advance for the whole batch
	// --------------------------------------------------
	updated, ok := uc.state.UpdateClient(client.ID, func(c *models.Client) {
		c.VisitsCount += len(req.Dates)
		c.LastVisit = now

		if preVisits == 0 {
			if req.ClientName != "" {
				c.Name = req.ClientName
			}
			if req.ClientPhone != "" {
				c.Phone = req.ClientPhone
			}
			if c.AvatarURL == "" || strings.Contains(c.AvatarURL, "ui-avatars") {
				c.AvatarURL = fmt.Sprintf("https://picsum.photos/200/200?random=%d", now.UnixNano())
			}
		}
	})
	res.VisitsAfter = preVisits + len(req.Dates)
	if ok {
		res.VisitsAfter = updated.VisitsCount
	}

	// --------------------------------------------------
	// ledger entries. Free visits log per date, a card
	// checkout consolidates into one entry, cash settles
	// in person and writes nothing here.
	// --------------------------------------------------
	for _, out := range res.Outcomes {
		if out.IsFree && out.Err == nil {
			uc.state.AppendTransaction(models.Transaction{
				Amount:      0,
				Date:        now,
				Type:        models.TransactionIncome,
				Category:    "Service",
				Description: "Loyalty Free: " + req.ServiceName,
				ClientID:    client.ID,
				ClientName:  name,
				Method:      models.MethodFree,
			})
			res.FreeCount++
		}
	}

	if req.PaymentMethod == models.MethodCard {
		total := loyalty.PriceForBatch(preVisits, req.UnitPrice, len(req.Dates))
		if total > 0 {
			uc.state.AppendTransaction(models.Transaction{
				Amount:      total,
				Date:        now,
				Type:        models.TransactionIncome,
				Category:    "Service",
				Description: fmt.Sprintf("Online payment: %d service(s) (%s)", len(req.Dates), req.ServiceName),
				ClientID:    client.ID,
				ClientName:  name,
				Method:      models.MethodCard,
			})
			res.TotalCharged = total
		}
	}

	// --------------------------------------------------
	// one master reminder per requested date, whatever
	// the method or origin
	// --------------------------------------------------
	for _, label := range req.Dates {
		uc.state.EnqueueReminder(models.AdminReminder{
			ClientName:    name,
			ClientPhone:   phone,
			Service:       req.ServiceName,
			RequestedDate: label,
			RequestedTime: req.Time,
			NotifyAt:      now,
		})
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_submitted",
		Entity:   "booking",
		EntityID: client.ID,
		Metadata: map[string]any{
			"origin":  string(req.Origin),
			"dates":   len(req.Dates),
			"booked":  res.Booked,
			"service": req.ServiceName,
		},
	})

	return res, nil
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
