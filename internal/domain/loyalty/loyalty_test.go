package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFreeVisit(t *testing.T) {
	tests := []struct {
		name   string
		visits int
		offset int
		want   bool
	}{
		{"fresh client first visit", 0, 1, false},
		{"fifth visit paid", 4, 1, false},
		{"sixth visit free", 5, 1, true},
		{"seventh visit paid again", 6, 1, false},
		{"twelfth visit free", 11, 1, true},
		{"batch lands on sixth", 3, 3, true},
		{"batch crosses the sixth", 3, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFreeVisit(tt.visits, tt.offset))
		})
	}
}

// Freeness must depend only on the running visit index: the visit at
// absolute position n is free exactly when n is a multiple of six.
func TestIsFreeVisitMatchesAbsoluteIndex(t *testing.T) {
	for visits := 0; visits <= 100; visits++ {
		for offset := 1; offset <= 10; offset++ {
			want := (visits+offset)%FreeEvery == 0
			require.Equal(t, want, IsFreeVisit(visits, offset),
				"visits=%d offset=%d", visits, offset)
		}
	}
}

func TestPriceForBatch(t *testing.T) {
	tests := []struct {
		name   string
		visits int
		unit   float64
		batch  int
		want   float64
	}{
		{"single paid date", 0, 600, 1, 600},
		{"single free date", 5, 600, 1, 0},
		{"six dates from zero include one free", 0, 600, 6, 3000},
		{"twelve dates include two free", 0, 600, 12, 6000},
		{"batch straddling a free visit", 4, 800, 3, 1600},
		{"empty batch", 10, 600, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceForBatch(tt.visits, tt.unit, tt.batch))
		})
	}
}

func TestStampCard(t *testing.T) {
	assert.Equal(t, 0, StampsFilled(0))
	assert.Equal(t, 5, StampsFilled(5))
	assert.Equal(t, 0, StampsFilled(6))
	assert.Equal(t, 2, StampsFilled(14))

	// five stamps filled means the next visit is the free one
	assert.Equal(t, 0, VisitsUntilFree(5))
	assert.Equal(t, 5, VisitsUntilFree(0))
	assert.Equal(t, 5, VisitsUntilFree(6))

	for visits := 0; visits <= 36; visits++ {
		if VisitsUntilFree(visits) == 0 {
			assert.True(t, IsFreeVisit(visits, 1), "visits=%d", visits)
		} else {
			assert.False(t, IsFreeVisit(visits, 1), "visits=%d", visits)
		}
	}
}
