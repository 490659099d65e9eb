package catalog

import (
	"strings"
	"time"

	"github.com/stilevo/stilevo-api/internal/domain/schedule"
)

type Service struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

// The salon's fixed offer. Prices in UAH.
var Services = []Service{
	{ID: 1, Name: "Haircut", Price: 600, DurationMin: 60},
	{ID: 2, Name: "Haircut + Beard", Price: 800, DurationMin: 90},
	{ID: 3, Name: "Beard Modeling", Price: 400, DurationMin: 45},
}

const (
	premiumPrice  = 800
	modelingPrice = 400
	defaultPrice  = 600
)

// InferPrice derives a price from a free-text service name. The appointment
// table does not persist a price column, so the read path reconstructs it
// from the name: a combined service carries "+", the modeling service carries
// its keyword, everything else bills as a plain haircut. Replace this with a
// persisted column before the catalog grows.
func InferPrice(serviceName string) float64 {
	if strings.Contains(serviceName, "+") {
		return premiumPrice
	}
	if strings.Contains(serviceName, "Modeling") {
		return modelingPrice
	}
	return defaultPrice
}

// Match finds the catalog service closest to free text collected by the
// phone assistant. The longest matching name wins, so "haircut + beard"
// resolves to the combined service rather than the plain haircut it also
// contains. Mentioning a beard without a full service name maps to the
// combined service; anything unrecognized falls back to a haircut.
func Match(freeText string) Service {
	lower := strings.ToLower(freeText)

	best := -1
	for i, s := range Services {
		if !strings.Contains(lower, strings.ToLower(s.Name)) {
			continue
		}
		if best < 0 || len(s.Name) > len(Services[best].Name) {
			best = i
		}
	}
	if best >= 0 {
		return Services[best]
	}

	if strings.Contains(lower, "beard") {
		return Services[1]
	}
	return Services[0]
}

// Slots is the bookable hour grid, 10:00 through 17:00.
var Slots = []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

// DateLabels lists the selectable relative dates: today, tomorrow, then the
// following four weekdays by short name.
func DateLabels(now time.Time, r *schedule.Resolver) []string {
	labels := []string{schedule.LabelToday, schedule.LabelTomorrow}
	for i := 2; i < 6; i++ {
		d := now.AddDate(0, 0, i)
		labels = append(labels, r.LabelFor(d, now))
	}
	return labels
}
