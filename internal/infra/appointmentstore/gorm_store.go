package appointmentstore

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/domain/catalog"
	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

// ChangeChannel carries invalidation signals for the appointments table.
// Subscribers get no deltas, only a nudge to re-list.
const ChangeChannel = "appointments:changes"

// GormStore is the sole component performing I/O against the remote
// appointment table. Writes publish an invalidation signal; reads project
// rows into the display view model.
type GormStore struct {
	db       *gorm.DB
	rdb      *redis.Client
	resolver *schedule.Resolver
}

func NewGormStore(db *gorm.DB, rdb *redis.Client, resolver *schedule.Resolver) *GormStore {
	return &GormStore{db: db, rdb: rdb, resolver: resolver}
}

func (s *GormStore) Create(ctx context.Context, row models.AppointmentRow) (uint, error) {
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("appointmentstore: create failed: %v", err)
		return 0, err
	}
	s.notify(ctx)
	return row.ID, nil
}

// Delete removes a row unconditionally; the cancellation window is the
// caller's rule, not the adapter's.
func (s *GormStore) Delete(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.AppointmentRow{}, id).Error; err != nil {
		log.Printf("appointmentstore: delete %d failed: %v", id, err)
		return err
	}
	s.notify(ctx)
	return nil
}

// List returns the whole table ordered by ascending visit time, projected
// into view models.
func (s *GormStore) List(ctx context.Context) ([]models.Appointment, error) {
	var rows []models.AppointmentRow
	if err := s.db.WithContext(ctx).
		Order("visit_time ASC").
		Find(&rows).Error; err != nil {
		log.Printf("appointmentstore: list failed: %v", err)
		return nil, err
	}

	now := timezone.Now()
	out := make([]models.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapRow(row, s.resolver, now))
	}
	return out, nil
}

// MapRow projects a store row into the appointment view model. Price is
// inferred from the service name because the table persists none, freeness
// is a write-time fact and always reads back false, and every stored row
// counts as confirmed.
func MapRow(row models.AppointmentRow, resolver *schedule.Resolver, now time.Time) models.Appointment {
	name := row.ClientName
	if name == "" {
		name = "Guest"
	}
	return models.Appointment{
		ID:          strconv.FormatUint(uint64(row.ID), 10),
		ClientName:  name,
		AvatarURL:   "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random",
		ServiceName: row.Service,
		Date:        resolver.LabelFor(row.VisitTime, now),
		Time:        schedule.TimeFor(row.VisitTime),
		Price:       catalog.InferPrice(row.Service),
		IsFree:      false,
		Status:      models.AppointmentConfirmed,
		CreatedAt:   row.CreatedAt,
	}
}

// Subscribe relays table-change signals to onChange until stop is called.
// Stopping twice is a no-op.
func (s *GormStore) Subscribe(onChange func()) (func(), error) {
	sub := s.rdb.Subscribe(context.Background(), ChangeChannel)
	if _, err := sub.Receive(context.Background()); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := sub.Channel()
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				onChange()
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return stop, nil
}

func (s *GormStore) notify(ctx context.Context) {
	if err := s.rdb.Publish(ctx, ChangeChannel, "changed").Err(); err != nil {
		log.Printf("appointmentstore: change notify failed: %v", err)
	}
}

// Compile-time check
var _ domain.Store = (*GormStore)(nil)
