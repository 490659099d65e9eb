package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stilevo/stilevo-api/internal/models"
)

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func income(amount float64, daysAgo int) models.Transaction {
	return models.Transaction{
		Amount: amount,
		Date:   now.AddDate(0, 0, -daysAgo),
		Type:   models.TransactionIncome,
	}
}

func expense(amount float64, daysAgo int) models.Transaction {
	return models.Transaction{
		Amount: amount,
		Date:   now.AddDate(0, 0, -daysAgo),
		Type:   models.TransactionExpense,
	}
}

func TestParseRange(t *testing.T) {
	for _, s := range []string{"1W", "1M", "3M", "1Y", "ALL"} {
		rng, ok := ParseRange(s)
		assert.True(t, ok)
		assert.Equal(t, Range(s), rng)
	}
	_, ok := ParseRange("2W")
	assert.False(t, ok)
	_, ok = ParseRange("")
	assert.False(t, ok)
}

func TestAggregateWeekUsesDailyBuckets(t *testing.T) {
	txs := []models.Transaction{
		income(600, 0),
		income(800, 0),
		income(400, 2),
		expense(100, 2),
		// outside the window, must not appear
		income(9999, 10),
	}

	buckets := Aggregate(txs, Range1W, now)
	require.Len(t, buckets, 2)

	// chronological: two days ago first
	assert.Equal(t, "2026-02-28", buckets[0].Key)
	assert.Equal(t, float64(400), buckets[0].Income)
	assert.Equal(t, float64(100), buckets[0].Expense)
	assert.Equal(t, float64(300), buckets[0].Profit)
	assert.Equal(t, 2, buckets[0].Count)

	assert.Equal(t, "2026-03-02", buckets[1].Key)
	assert.Equal(t, float64(1400), buckets[1].Income)
	assert.Equal(t, float64(1400), buckets[1].Profit)
}

func TestAggregateGrowthClassification(t *testing.T) {
	txs := []models.Transaction{
		income(1000, 3),
		income(1500, 2),
		income(1500, 1),
		income(600, 0),
	}

	buckets := Aggregate(txs, Range1W, now)
	require.Len(t, buckets, 4)

	// first bucket has no predecessor
	assert.Equal(t, float64(0), buckets[0].Growth)
	assert.Equal(t, GrowthNeutral, buckets[0].GrowthType)

	assert.Equal(t, float64(50), buckets[1].Growth)
	assert.Equal(t, GrowthPositive, buckets[1].GrowthType)

	assert.Equal(t, float64(0), buckets[2].Growth)
	assert.Equal(t, GrowthNeutral, buckets[2].GrowthType)

	assert.Equal(t, float64(-60), buckets[3].Growth)
	assert.Equal(t, GrowthNegative, buckets[3].GrowthType)
}

// Income appearing after a zero-income bucket counts as 100% growth rather
// than a division blowup.
func TestAggregateGrowthFromZero(t *testing.T) {
	txs := []models.Transaction{
		expense(100, 1),
		income(500, 0),
	}

	buckets := Aggregate(txs, Range1W, now)
	require.Len(t, buckets, 2)
	assert.Equal(t, float64(100), buckets[1].Growth)
	assert.Equal(t, GrowthPositive, buckets[1].GrowthType)
}

func TestAggregateQuarterUsesWeekBuckets(t *testing.T) {
	txs := []models.Transaction{
		income(600, 0),
		income(600, 20),
		income(600, 40),
	}

	buckets := Aggregate(txs, Range3M, now)
	require.Len(t, buckets, 3)
	for _, b := range buckets {
		assert.Contains(t, b.Key, "-W")
	}
	assert.True(t, buckets[0].SortKey < buckets[1].SortKey)
	assert.True(t, buckets[1].SortKey < buckets[2].SortKey)
}

func TestAggregateYearUsesMonthBuckets(t *testing.T) {
	txs := []models.Transaction{
		income(600, 0),
		income(600, 35),
		income(600, 70),
	}

	buckets := Aggregate(txs, Range1Y, now)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2025-12", buckets[0].Key)
	assert.Equal(t, "2026-01", buckets[1].Key)
	assert.Equal(t, "2026-03", buckets[2].Key)
}

func TestAggregateAllKeepsEverything(t *testing.T) {
	txs := []models.Transaction{
		income(600, 0),
		income(600, 400),
	}

	buckets := Aggregate(txs, RangeAll, now)
	assert.Len(t, buckets, 2)
}

func TestSummarize(t *testing.T) {
	buckets := []Bucket{
		{Income: 1000, Expense: 200},
		{Income: 500, Expense: 300},
	}

	s := Summarize(buckets)
	assert.Equal(t, float64(1500), s.TotalIncome)
	assert.Equal(t, float64(500), s.TotalExpense)
	assert.Equal(t, float64(1000), s.TotalProfit)
	assert.InDelta(t, 66.67, s.Margin, 0.01)

	empty := Summarize(nil)
	assert.Equal(t, float64(0), empty.Margin)
}

func TestWeekNumber(t *testing.T) {
	// 2026-01-01 is a Thursday, so week 1 starts immediately
	assert.Equal(t, 1, weekNumber(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, weekNumber(time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, weekNumber(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))

	// agrees with the standard library's ISO week across two full years
	for d := 0; d < 730; d++ {
		day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		_, isoWeek := day.ISOWeek()
		assert.Equal(t, isoWeek, weekNumber(day), "day %s", day.Format("2006-01-02"))
	}
}
