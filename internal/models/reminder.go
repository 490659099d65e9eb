package models

import "time"

const (
	ReminderNew       = "new"
	ReminderProcessed = "processed"
)

// AdminReminder is a master-facing notification generated by every booked
// date, whatever the payment method or request origin. NotifyAt is when the
// notification goes out; bookings notify immediately.
type AdminReminder struct {
	ID            string    `json:"id"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone"`
	Service       string    `json:"service"`
	RequestedDate string    `json:"requested_date"`
	RequestedTime string    `json:"requested_time"`
	NotifyAt      time.Time `json:"notify_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
