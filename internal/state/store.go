package state

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stilevo/stilevo-api/internal/models"
)

// Store holds the process-local mutable state: the client roster, the
// transaction ledger and the reminder queue. All mutation funnels through
// its methods; nothing here is an ambient global. The design assumes a
// single logical writer, the mutex only guards against the notification
// goroutines reading mid-write.
type Store struct {
	mu            sync.Mutex
	clients       []models.Client
	transactions  []models.Transaction
	reminders     []models.AdminReminder
	reminderFlags map[string]bool
}

func New() *Store {
	return &Store{
		reminderFlags: make(map[string]bool),
	}
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (s *Store) ClientByID(id string) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

func (s *Store) Clients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

func (s *Store) AddClient(c models.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

// UpdateClient applies mutate to the matching client under the lock and
// reports whether the client existed.
func (s *Store) UpdateClient(id string, mutate func(*models.Client)) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.clients {
		if s.clients[i].ID == id {
			mutate(&s.clients[i])
			return s.clients[i], true
		}
	}
	return models.Client{}, false
}

// ProvisionTelegram returns the client matching an external Telegram
// identity, creating one on first sight with a zero visit count and the
// username mapped to the telegram contact field.
func (s *Store) ProvisionTelegram(tgID int64, firstName, lastName, username string) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("%d", tgID)
	for _, c := range s.clients {
		if c.ID == id || (username != "" && c.Telegram == username) {
			return c
		}
	}

	name := firstName
	if lastName != "" {
		name += " " + lastName
	}
	if name == "" {
		name = "Guest"
	}

	c := models.Client{
		ID:        id,
		Name:      name,
		AvatarURL: placeholderAvatar(name),
		Telegram:  username,
		Status:    models.ClientActive,
		Notes:     "Joined via Telegram Mini App",
		LastVisit: time.Now(),
	}
	s.clients = append(s.clients, c)
	return c
}

// EnsureClientByPhone resolves a client by phone number, creating a fresh
// one when the phone is unknown. The assistant path books through this.
func (s *Store) EnsureClientByPhone(name, phone string) models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phone != "" {
		for _, c := range s.clients {
			if c.Phone == phone {
				return c
			}
		}
	}

	c := models.Client{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		AvatarURL: placeholderAvatar(name),
		Status:    models.ClientActive,
	}
	s.clients = append(s.clients, c)
	return c
}

func (s *Store) AddReview(clientID string, review models.Review) bool {
	_, ok := s.UpdateClient(clientID, func(c *models.Client) {
		c.Reviews = append([]models.Review{review}, c.Reviews...)
	})
	return ok
}

// --------------------------------------------------
// Transaction ledger (append-only)
// --------------------------------------------------

func (s *Store) AppendTransaction(tx models.Transaction) models.Transaction {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// --------------------------------------------------
// Reminder queue
// --------------------------------------------------

func (s *Store) EnqueueReminder(r models.AdminReminder) models.AdminReminder {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.ReminderNew
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append([]models.AdminReminder{r}, s.reminders...)
	return r
}

func (s *Store) Reminders() []models.AdminReminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AdminReminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// DueReminders lists new reminders whose notify time has passed.
func (s *Store) DueReminders(now time.Time) []models.AdminReminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.AdminReminder
	for _, r := range s.reminders {
		if r.Status == models.ReminderNew && !r.NotifyAt.After(now) {
			due = append(due, r)
		}
	}
	return due
}

func (s *Store) MarkReminderProcessed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Status = models.ReminderProcessed
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Master-side appointment reminder toggles
// --------------------------------------------------

// ToggleReminder flips the master's reminder flag for an appointment. The
// flag is deliberately not persisted with the appointment row.
func (s *Store) ToggleReminder(appointmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminderFlags[appointmentID] = !s.reminderFlags[appointmentID]
	return s.reminderFlags[appointmentID]
}

func (s *Store) ReminderSet(appointmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminderFlags[appointmentID]
}

func placeholderAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
