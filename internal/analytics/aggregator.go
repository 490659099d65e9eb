package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/stilevo/stilevo-api/internal/models"
)

type Range string

const (
	Range1W  Range = "1W"
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	Range1Y  Range = "1Y"
	RangeAll Range = "ALL"
)

func ParseRange(s string) (Range, bool) {
	switch Range(s) {
	case Range1W, Range1M, Range3M, Range1Y, RangeAll:
		return Range(s), true
	}
	return "", false
}

type GrowthType string

const (
	GrowthPositive GrowthType = "positive"
	GrowthNegative GrowthType = "negative"
	GrowthNeutral  GrowthType = "neutral"
)

// Bucket is one time window of the aggregated ledger. SortKey guarantees
// chronological order independent of label formatting; consumers reverse
// the sorted slice for display instead of re-aggregating.
type Bucket struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	SortKey    int64      `json:"-"`
	Income     float64    `json:"income"`
	Expense    float64    `json:"expense"`
	Profit     float64    `json:"profit"`
	Count      int        `json:"count"`
	Growth     float64    `json:"growth"`
	GrowthType GrowthType `json:"growth_type"`
}

type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	TotalProfit  float64 `json:"total_profit"`
	Margin       float64 `json:"margin"`
}

// Aggregate buckets the ledger for the selected range: daily buckets for a
// week or a month, week buckets for a quarter, month buckets beyond that.
// Growth compares each bucket's income to its predecessor in the sorted
// sequence.
func Aggregate(txs []models.Transaction, rng Range, now time.Time) []Bucket {
	start := cutoff(rng, now)

	byKey := make(map[string]*Bucket)
	for _, t := range txs {
		if t.Date.Before(start) {
			continue
		}

		key, label, sortKey := bucketOf(t.Date, rng)
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Key: key, Label: label, SortKey: sortKey}
			byKey[key] = b
		}

		if t.Type == models.TransactionIncome {
			b.Income += t.Amount
		} else {
			b.Expense += t.Amount
		}
		b.Count++
	}

	buckets := make([]Bucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].SortKey < buckets[j].SortKey })

	for i := range buckets {
		buckets[i].Profit = buckets[i].Income - buckets[i].Expense

		var growth float64
		if i > 0 {
			prev := buckets[i-1]
			if prev.Income > 0 {
				growth = (buckets[i].Income - prev.Income) / prev.Income * 100
			} else if buckets[i].Income > 0 {
				growth = 100
			}
		}
		buckets[i].Growth = growth
		switch {
		case growth > 0:
			buckets[i].GrowthType = GrowthPositive
		case growth < 0:
			buckets[i].GrowthType = GrowthNegative
		default:
			buckets[i].GrowthType = GrowthNeutral
		}
	}

	return buckets
}

func Summarize(buckets []Bucket) Summary {
	var s Summary
	for _, b := range buckets {
		s.TotalIncome += b.Income
		s.TotalExpense += b.Expense
	}
	s.TotalProfit = s.TotalIncome - s.TotalExpense
	if s.TotalIncome > 0 {
		s.Margin = s.TotalProfit / s.TotalIncome * 100
	}
	return s
}

func cutoff(rng Range, now time.Time) time.Time {
	switch rng {
	case Range1W:
		return now.AddDate(0, 0, -7)
	case Range1M:
		return now.AddDate(0, 0, -30)
	case Range3M:
		return now.AddDate(0, -3, 0)
	case Range1Y:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{} // epoch: everything qualifies
	}
}

func bucketOf(d time.Time, rng Range) (key, label string, sortKey int64) {
	switch rng {
	case Range1W, Range1M:
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		return day.Format("2006-01-02"), day.Format("2 Jan"), day.Unix()
	case Range3M:
		week := weekNumber(d)
		return fmt.Sprintf("%d-W%d", d.Year(), week),
			fmt.Sprintf("W%d", week),
			int64(d.Year()*100 + week)
	default:
		return d.Format("2006-01"), d.Format("Jan 06"),
			int64(d.Year()*100 + int(d.Month()))
	}
}

// weekNumber is the Thursday-anchored ISO week algorithm: shift the date to
// the Thursday of its week, then count weeks from that year's January 1st.
func weekNumber(t time.Time) int {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	d = d.AddDate(0, 0, 4-wd)

	yearStart := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(yearStart).Hours() / 24)
	return (days + 7) / 7
}
