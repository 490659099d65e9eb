package models

import "time"

// AppointmentRow is the remote store table. It deliberately has no price,
// status or freeness columns; those are derived or defaulted on read.
type AppointmentRow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ClientName string    `gorm:"size:100" json:"client_name"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Service    string    `gorm:"size:100" json:"service"`
	VisitTime  time.Time `json:"visit_time"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AppointmentRow) TableName() string {
	return "appointments"
}

// Appointment statuses. Read-back rows always surface as confirmed.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is the view model projected from an AppointmentRow: the visit
// time becomes a relative date label plus a clock string, and price is
// inferred from the service name. IsFree is a write-time fact and is not
// re-derived here, so it is always false on read-back.
type Appointment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name"`
	AvatarURL   string    `json:"avatar_url"`
	ServiceName string    `json:"service_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Price       float64   `json:"price"`
	IsFree      bool      `json:"is_free"`
	Status      string    `json:"status"`
	ReminderSet bool      `json:"reminder_set"`
	CreatedAt   time.Time `json:"created_at"`
}
