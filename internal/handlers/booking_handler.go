package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/domain/catalog"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/models"
	ucBooking "github.com/stilevo/stilevo-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	submit *ucBooking.SubmitBooking
}

func NewBookingHandler(submit *ucBooking.SubmitBooking) *BookingHandler {
	return &BookingHandler{submit: submit}
}

// ======================================================
// REQUEST / RESPONSE
// ======================================================

type CreateBookingRequest struct {
	ServiceName    string   `json:"service_name" binding:"required"`
	Dates          []string `json:"dates" binding:"required,min=1"`
	Time           string   `json:"time" binding:"required"`
	UnitPrice      float64  `json:"unit_price"`
	ClientName     string   `json:"client_name"`
	ClientPhone    string   `json:"client_phone"`
	PaymentMethod  string   `json:"payment_method"`
	TargetClientID string   `json:"target_client_id" binding:"required"`
}

type DateOutcomeResponse struct {
	Date          string `json:"date"`
	AppointmentID string `json:"appointment_id,omitempty"`
	IsFree        bool   `json:"is_free"`
	Error         string `json:"error,omitempty"`
}

type BookingResponse struct {
	Outcomes     []DateOutcomeResponse `json:"outcomes"`
	Booked       int                   `json:"booked"`
	Requested    int                   `json:"requested"`
	FreeCount    int                   `json:"free_count"`
	TotalCharged float64               `json:"total_charged"`
	VisitsAfter  int                   `json:"visits_after"`
}

func toBookingResponse(res *domain.Result) BookingResponse {
	out := BookingResponse{
		Outcomes:     make([]DateOutcomeResponse, 0, len(res.Outcomes)),
		Booked:       res.Booked,
		Requested:    len(res.Outcomes),
		FreeCount:    res.FreeCount,
		TotalCharged: res.TotalCharged,
		VisitsAfter:  res.VisitsAfter,
	}
	for _, o := range res.Outcomes {
		r := DateOutcomeResponse{
			Date:          o.Date,
			AppointmentID: o.AppointmentID,
			IsFree:        o.IsFree,
		}
		if o.Err != nil {
			r.Error = o.Err.Error()
		}
		out.Outcomes = append(out.Outcomes, r)
	}
	return out
}

// ======================================================
// CREATE
// ======================================================

// Create books one or more dates for a client. Partial success is a normal
// outcome: the response lists every date with its own result so the UI can
// say "3 of 4 dates booked".
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.MethodCard
	}

	if req.UnitPrice == 0 {
		req.UnitPrice = catalog.InferPrice(req.ServiceName)
	}

	res, err := h.submit.Execute(c.Request.Context(), domain.Request{
		ServiceName:    req.ServiceName,
		Dates:          req.Dates,
		Time:           req.Time,
		UnitPrice:      req.UnitPrice,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		PaymentMethod:  method,
		TargetClientID: req.TargetClientID,
		Origin:         domain.OriginHuman,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(res))
}

func writeBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "client_not_found":
		httperr.NotFound(c, code, "Client not found.")
	case "":
		httperr.Internal(c, "booking_failed", "Booking failed.")
	default:
		httperr.BadRequest(c, code, "Invalid booking request.")
	}
}
