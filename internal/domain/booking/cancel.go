package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/stilevo/stilevo-api/internal/domain/schedule"
)

// Same-day cancellations close this many hours before the slot.
const cancelWindowHours = 3

// CanCancel implements the cancellation-window rule on view-model fields:
// any date other than today can always be cancelled; today requires the slot
// hour to be at least three full hours ahead of the current hour.
func CanCancel(dateLabel, hhmm string, now time.Time) bool {
	if dateLabel != schedule.LabelToday {
		return true
	}

	hourStr, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return false
	}
	slotHour, err := strconv.Atoi(hourStr)
	if err != nil {
		return false
	}

	return slotHour-now.Hour() >= cancelWindowHours
}
