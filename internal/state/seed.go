package state

import (
	"time"

	"github.com/stilevo/stilevo-api/internal/models"
)

// SeedDemo loads the demo roster and five months of ledger history so the
// dashboard and analytics have something to show out of the box.
func (s *Store) SeedDemo(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = append(s.clients,
		models.Client{
			ID:               "1",
			Name:             "Olena Rostova",
			AvatarURL:        "https://picsum.photos/200/200?random=1",
			Phone:            "+15550109988",
			Telegram:         "elenar_style",
			WhatsApp:         "+15550109988",
			VisitsCount:      12,
			Status:           models.ClientRisk,
			Notes:            "Mentioned moving to a new flat further away. Seemed unsettled.",
			LastVisit:        now.AddDate(0, 0, -45),
			FrequencyWeeks:   6,
			ChurnProbability: 85,
		},
		models.Client{
			ID:               "2",
			Name:             "Sara Chen",
			AvatarURL:        "https://picsum.photos/200/200?random=2",
			Phone:            "+15550123456",
			WhatsApp:         "+15550123456",
			VisitsCount:      5, // next visit is the free 6th
			Status:           models.ClientActive,
			Notes:            "Loves the new bob cut. Asked about coloring next time.",
			LastVisit:        now.AddDate(0, 0, -20),
			FrequencyWeeks:   4,
			ChurnProbability: 12,
		},
		models.Client{
			ID:               "3",
			Name:             "Marcus Thorne",
			AvatarURL:        "https://picsum.photos/200/200?random=3",
			Telegram:         "marcus_t",
			VisitsCount:      3,
			Status:           models.ClientActive,
			Notes:            "Missed his last slot because of a business trip.",
			LastVisit:        now.AddDate(0, 0, -60),
			FrequencyWeeks:   8,
			ChurnProbability: 45,
		},
		models.Client{
			ID:     "4",
			Name:   "New Client",
			Status: models.ClientActive,
		},
	)

	subDays := func(t time.Time, d int) time.Time { return t.AddDate(0, 0, -d) }
	monthsAgo := func(m int) time.Time {
		return time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, now.Location()).AddDate(0, -m, 0)
	}

	income := func(id string, amount float64, date time.Time, desc, client string) models.Transaction {
		return models.Transaction{ID: id, Amount: amount, Date: date, Type: models.TransactionIncome, Category: "Service", Description: desc, ClientName: client}
	}
	expense := func(id string, amount float64, date time.Time, category, desc string) models.Transaction {
		return models.Transaction{ID: id, Amount: amount, Date: date, Type: models.TransactionExpense, Category: category, Description: desc}
	}

	s.transactions = append(s.transactions,
		// this month
		income("1", 850, subDays(now, 2), "Haircut + Beard", "Marcus Thorne"),
		income("3", 1200, now, "Coloring", "Sara Chen"),
		expense("4", 450, subDays(now, 1), "Supplies", "Cosmetics restock"),
		expense("5", 3200, subDays(now, 5), "Rent", "Chair rent (week)"),
		// last month
		income("6", 15000, monthsAgo(1), "Aggregate service income", ""),
		expense("7", 8000, subDays(monthsAgo(1), 2), "Rent", "Studio rent"),
		expense("8", 2000, subDays(monthsAgo(1), 5), "Supplies", "Materials"),
		// two months ago
		income("9", 12500, monthsAgo(2), "Aggregate income", ""),
		expense("10", 8000, subDays(monthsAgo(2), 1), "Rent", "Rent"),
		// three months ago
		income("11", 18000, monthsAgo(3), "Aggregate income (holidays)", ""),
		expense("12", 8000, subDays(monthsAgo(3), 3), "Rent", "Rent"),
		expense("13", 3000, subDays(monthsAgo(3), 10), "Marketing", "Instagram ads"),
		// four months ago
		income("14", 11000, monthsAgo(4), "Aggregate income", ""),
		expense("15", 8000, subDays(monthsAgo(4), 3), "Rent", "Rent"),
	)
}
