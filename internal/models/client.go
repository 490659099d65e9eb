package models

import "time"

// Client statuses as shown on the master dashboard.
const (
	ClientActive  = "active"
	ClientRisk    = "risk"
	ClientChurned = "churned"
)

// Client lives in the in-process application state, not in the appointment
// store. VisitsCount only ever grows: exactly +1 per confirmed visit.
type Client struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	AvatarURL        string    `json:"avatar_url"`
	Phone            string    `json:"phone,omitempty"`
	Telegram         string    `json:"telegram,omitempty"`
	WhatsApp         string    `json:"whatsapp,omitempty"`
	VisitsCount      int       `json:"visits_count"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	LastVisit        time.Time `json:"last_visit"`
	FrequencyWeeks   int       `json:"frequency_weeks"`
	ChurnProbability int       `json:"churn_probability"`
	Reviews          []Review  `json:"reviews"`
}

type Review struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	MasterName  string    `json:"master_name"`
	ServiceName string    `json:"service_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Date        time.Time `json:"date"`
}
