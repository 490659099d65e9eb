package reminders

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

// Notifier delivers one reminder to the master. Delivery is fire-and-forget;
// a failed send is not retried.
type Notifier interface {
	Notify(r models.AdminReminder)
}

// LogNotifier stands in for the Telegram channel: it writes the message the
// bot would send.
type LogNotifier struct{}

func (LogNotifier) Notify(r models.AdminReminder) {
	log.Printf("[telegram] new booking: %s at %s %s (%s), phone %s",
		r.ClientName, r.RequestedDate, r.RequestedTime, r.Service, r.ClientPhone)
}

// Dispatcher sweeps the reminder queue once a minute and pushes every due
// reminder through the notifier, marking it processed.
type Dispatcher struct {
	state    *state.Store
	notifier Notifier
	cron     *cron.Cron
}

func NewDispatcher(st *state.Store, notifier Notifier) *Dispatcher {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Dispatcher{state: st, notifier: notifier}
}

func (d *Dispatcher) Start() {
	d.cron = cron.New()
	if _, err := d.cron.AddFunc("* * * * *", d.Sweep); err != nil {
		log.Printf("reminders: scheduling sweep failed: %v", err)
		return
	}
	d.cron.Start()
	log.Println("reminder dispatcher started")
}

func (d *Dispatcher) Stop() {
	if d.cron != nil {
		d.cron.Stop()
	}
}

func (d *Dispatcher) Sweep() {
	now := timezone.Now()
	for _, r := range d.state.DueReminders(now) {
		d.notifier.Notify(r)
		d.state.MarkReminderProcessed(r.ID)
	}
}
