package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/stilevo/stilevo-api/internal/domain/booking"
	"github.com/stilevo/stilevo-api/internal/domain/catalog"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	ucBooking "github.com/stilevo/stilevo-api/internal/usecase/booking"
)

// AssistantHandler receives the AI receptionist's tool call. The assistant
// collects name, phone, service, date and time over the conversation and
// then fires one structured action; it flows through the same booking
// engine as the mini-app, with payment defaulted to cash for this origin.
type AssistantHandler struct {
	submit *ucBooking.SubmitBooking
	state  *state.Store
}

func NewAssistantHandler(submit *ucBooking.SubmitBooking, st *state.Store) *AssistantHandler {
	return &AssistantHandler{submit: submit, state: st}
}

// ToolCallRequest mirrors the createAppointmentRequest function contract.
type ToolCallRequest struct {
	ClientName     string `json:"clientName" binding:"required"`
	ClientPhone    string `json:"clientPhone" binding:"required"`
	Service        string `json:"service" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	TargetClientID string `json:"targetClientId"`
}

func (h *AssistantHandler) CreateBooking(c *gin.Context) {
	var req ToolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Incomplete tool call payload.")
		return
	}

	targetID := req.TargetClientID
	if targetID == "" {
		targetID = h.state.EnsureClientByPhone(req.ClientName, req.ClientPhone).ID
	}

	// keep the caller's free text as the service name, bill by the closest
	// catalog match
	matched := catalog.Match(req.Service)

	res, err := h.submit.Execute(c.Request.Context(), domain.Request{
		ServiceName:    req.Service,
		Dates:          []string{req.Date},
		Time:           req.Time,
		UnitPrice:      matched.Price,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		PaymentMethod:  models.MethodCash,
		TargetClientID: targetID,
		Origin:         domain.OriginAssistant,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	if res.Booked == 0 {
		httperr.Internal(c, "booking_failed", "The appointment could not be stored.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result":  "success",
		"message": "Appointment created. The master has been notified.",
		"booking": toBookingResponse(res),
	})
}
