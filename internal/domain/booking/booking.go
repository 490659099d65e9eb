package booking

import (
	"context"

	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/models"
)

// Origin tags where a booking request came from. The engine treats both the
// mini-app and the phone assistant identically; the tag exists so the same
// entry point serves both instead of duplicated paths.
type Origin string

const (
	OriginHuman     Origin = "human"
	OriginAssistant Origin = "assistant"
)

// Request is one booking submission: one service, one clock time, one or
// more relative calendar dates.
type Request struct {
	ServiceName    string
	Dates          []string
	Time           string
	UnitPrice      float64
	ClientName     string
	ClientPhone    string
	PaymentMethod  string
	TargetClientID string
	Origin         Origin
}

func (r Request) Validate() error {
	if r.ServiceName == "" || r.Time == "" || len(r.Dates) == 0 || r.TargetClientID == "" {
		return httperr.ErrBusiness("invalid_request")
	}
	switch r.PaymentMethod {
	case models.MethodCard, models.MethodCash:
	default:
		return httperr.ErrBusiness("invalid_payment_method")
	}
	return nil
}

// DateOutcome is the per-date result of a batch. Store failures land here
// instead of aborting sibling dates; the caller reports partial success.
type DateOutcome struct {
	Date          string
	AppointmentID string
	IsFree        bool
	Err           error
}

type Result struct {
	Outcomes     []DateOutcome
	Booked       int
	FreeCount    int
	TotalCharged float64
	VisitsAfter  int
}

// Store is the only gateway to the remote appointment table. Write errors
// come back as values; the adapter never panics across this boundary.
type Store interface {
	Create(ctx context.Context, row models.AppointmentRow) (uint, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Appointment, error)

	// Subscribe registers for change-invalidation signals on the table.
	// The adapter pushes no deltas; on a signal the caller re-lists.
	// The returned stop func is idempotent.
	Subscribe(onChange func()) (stop func(), err error)
}
