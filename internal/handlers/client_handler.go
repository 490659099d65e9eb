package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stilevo/stilevo-api/internal/domain/loyalty"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/httpresp"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

type ClientHandler struct {
	state *state.Store
}

func NewClientHandler(st *state.Store) *ClientHandler {
	return &ClientHandler{state: st}
}

func (h *ClientHandler) List(c *gin.Context) {
	httpresp.List(c, h.state.Clients())
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.state.ClientByID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "client_not_found", "Client does not exist.")
		return
	}
	httpresp.OK(c, client)
}

type UpdateClientRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update payload.")
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.ClientActive, models.ClientRisk, models.ClientChurned:
		default:
			httperr.BadRequest(c, "invalid_status", "Status must be active, risk or churned.")
			return
		}
	}

	client, ok := h.state.UpdateClient(c.Param("id"), func(cl *models.Client) {
		if req.Name != nil && *req.Name != "" {
			cl.Name = *req.Name
		}
		if req.Phone != nil {
			cl.Phone = *req.Phone
		}
		if req.Notes != nil {
			cl.Notes = *req.Notes
		}
		if req.Status != nil {
			cl.Status = *req.Status
		}
	})
	if !ok {
		httperr.NotFound(c, "client_not_found", "Client does not exist.")
		return
	}
	httpresp.OK(c, client)
}

// Loyalty projects the stamp card for one client. The card is derived from
// the visit counter alone; nothing is stored per stamp.
func (h *ClientHandler) Loyalty(c *gin.Context) {
	client, ok := h.state.ClientByID(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "client_not_found", "Client does not exist.")
		return
	}

	httpresp.OK(c, gin.H{
		"client_id":         client.ID,
		"visits_count":      client.VisitsCount,
		"stamps_filled":     loyalty.StampsFilled(client.VisitsCount),
		"is_next_free":      loyalty.IsFreeVisit(client.VisitsCount, 1),
		"visits_until_free": loyalty.VisitsUntilFree(client.VisitsCount),
		"free_every":        loyalty.FreeEvery,
	})
}

type AddReviewRequest struct {
	MasterName  string `json:"master_name"`
	ServiceName string `json:"service_name" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment"`
}

func (h *ClientHandler) AddReview(c *gin.Context) {
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review payload.")
		return
	}

	clientID := c.Param("id")
	review := models.Review{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		MasterName:  req.MasterName,
		ServiceName: req.ServiceName,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Date:        timezone.Now(),
	}
	if review.MasterName == "" {
		review.MasterName = "STILEVO"
	}

	if !h.state.AddReview(clientID, review) {
		httperr.NotFound(c, "client_not_found", "Client does not exist.")
		return
	}
	httpresp.Created(c, review)
}
