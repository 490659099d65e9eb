package appointmentstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/models"
)

func TestMapRow(t *testing.T) {
	r := schedule.NewResolver(false)
	// Monday
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	row := models.AppointmentRow{
		ID:         42,
		ClientName: "Sara Chen",
		Phone:      "+380501112233",
		Service:    "Haircut + Beard",
		VisitTime:  time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
	}

	got := MapRow(row, r, now)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Sara Chen", got.ClientName)
	assert.Equal(t, "Tomorrow", got.Date)
	assert.Equal(t, "14:00", got.Time)
	assert.Equal(t, float64(800), got.Price)
	assert.False(t, got.IsFree)
	assert.Equal(t, models.AppointmentConfirmed, got.Status)
	assert.Contains(t, got.AvatarURL, "Sara+Chen")
}

func TestMapRowGuestFallback(t *testing.T) {
	r := schedule.NewResolver(false)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	got := MapRow(models.AppointmentRow{ID: 1, Service: "Haircut", VisitTime: now}, r, now)
	assert.Equal(t, "Guest", got.ClientName)
	assert.Equal(t, "Today", got.Date)
	assert.Equal(t, float64(600), got.Price)
}

func TestSubscribeRelaysChangeSignals(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewGormStore(nil, rdb, schedule.NewResolver(false))

	signals := make(chan struct{}, 10)
	stop, err := store.Subscribe(func() { signals <- struct{}{} })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, rdb.Publish(context.Background(), ChangeChannel, "changed").Err())

	select {
	case <-signals:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change signal")
	}
}

func TestSubscribeStopIsIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewGormStore(nil, rdb, schedule.NewResolver(false))

	stop, err := store.Subscribe(func() {})
	require.NoError(t, err)

	stop()
	stop()
}
