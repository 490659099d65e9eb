package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stilevo/stilevo-api/internal/audit"
	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	ucBooking "github.com/stilevo/stilevo-api/internal/usecase/booking"
)

type memStore struct {
	nextID  uint
	rows    map[uint]models.AppointmentRow
	deleted []uint
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uint]models.AppointmentRow)}
}

func (s *memStore) Create(_ context.Context, row models.AppointmentRow) (uint, error) {
	s.nextID++
	row.ID = s.nextID
	s.rows[row.ID] = row
	return row.ID, nil
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	delete(s.rows, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *memStore) List(_ context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (s *memStore) Subscribe(func()) (func(), error) {
	return func() {}, nil
}

func setupBookingRouter(t *testing.T) (*gin.Engine, *state.Store, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := state.New()
	st.AddClient(models.Client{ID: "c1", Name: "Sara Chen", VisitsCount: 2, Status: models.ClientActive})

	store := newMemStore()
	submit := ucBooking.NewSubmitBooking(store, st, schedule.NewResolver(false), audit.NewDispatcher(audit.New(nil)))

	r := gin.New()
	r.POST("/api/bookings", NewBookingHandler(submit).Create)
	r.POST("/api/assistant/bookings", NewAssistantHandler(submit, st).CreateBooking)
	return r, st, store
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func patchJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBooking(t *testing.T) {
	r, st, store := setupBookingRouter(t)

	w := postJSON(t, r, "/api/bookings", gin.H{
		"service_name":     "Haircut",
		"dates":            []string{"Today", "Tomorrow"},
		"time":             "14:00",
		"target_client_id": "c1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Booked)
	assert.Equal(t, 2, resp.Requested)
	// price inferred, payment defaulted to card
	assert.Equal(t, float64(1200), resp.TotalCharged)
	assert.Equal(t, 4, resp.VisitsAfter)

	assert.Len(t, store.rows, 2)
	assert.Len(t, st.Reminders(), 2)
}

func TestCreateBookingUnknownClient(t *testing.T) {
	r, _, _ := setupBookingRouter(t)

	w := postJSON(t, r, "/api/bookings", gin.H{
		"service_name":     "Haircut",
		"dates":            []string{"Today"},
		"time":             "14:00",
		"target_client_id": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingRejectsEmptyDates(t *testing.T) {
	r, _, _ := setupBookingRouter(t)

	w := postJSON(t, r, "/api/bookings", gin.H{
		"service_name":     "Haircut",
		"dates":            []string{},
		"time":             "14:00",
		"target_client_id": "c1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// The assistant's tool call creates the client on the fly, books a single
// date and settles in cash.
func TestAssistantBooking(t *testing.T) {
	r, st, store := setupBookingRouter(t)

	w := postJSON(t, r, "/api/assistant/bookings", gin.H{
		"clientName":  "Marcus Thorne",
		"clientPhone": "+380671234567",
		"service":     "haircut and beard please",
		"date":        "Tomorrow",
		"time":        "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Result  string `json:"result"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Result)
	assert.NotEmpty(t, resp.Message)

	require.Len(t, store.rows, 1)
	assert.Equal(t, "haircut and beard please", store.rows[1].Service)

	// cash origin writes no ledger entry but notifies the master
	assert.Empty(t, st.Transactions())
	assert.Len(t, st.Reminders(), 1)
	assert.Len(t, st.Clients(), 2)
}

func TestAssistantBookingRequiresAllFields(t *testing.T) {
	r, _, _ := setupBookingRouter(t)

	w := postJSON(t, r, "/api/assistant/bookings", gin.H{
		"clientName": "Marcus",
		"service":    "haircut",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
