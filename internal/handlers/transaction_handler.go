package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/stilevo/stilevo-api/internal/analytics"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/httpresp"
	"github.com/stilevo/stilevo-api/internal/models"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

type TransactionHandler struct {
	state *state.Store
	rdb   *redis.Client
}

func NewTransactionHandler(st *state.Store, rdb *redis.Client) *TransactionHandler {
	return &TransactionHandler{state: st, rdb: rdb}
}

// List returns the ledger newest first. Storage order is append order, so
// reverse on the way out.
func (h *TransactionHandler) List(c *gin.Context) {
	txs := h.state.Transactions()
	for i, j := 0, len(txs)-1; i < j; i, j = i+1, j-1 {
		txs[i], txs[j] = txs[j], txs[i]
	}
	httpresp.List(c, txs)
}

type CreateTransactionRequest struct {
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name"`
	Amount      float64 `json:"amount" binding:"min=0"`
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description" binding:"required"`
	Method      string  `json:"method"`
}

// Create records a manual ledger entry from the dashboard, typically an
// expense or a walk-in cash payment.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid transaction payload.")
		return
	}

	switch req.Type {
	case models.TransactionIncome, models.TransactionExpense:
	default:
		httperr.BadRequest(c, "invalid_type", "Type must be income or expense.")
		return
	}
	switch req.Method {
	case "", models.MethodCard, models.MethodCash, models.MethodFree:
	default:
		httperr.BadRequest(c, "invalid_method", "Method must be card, cash or free.")
		return
	}
	if req.Method == models.MethodFree && req.Amount != 0 {
		httperr.BadRequest(c, "invalid_amount", "Free transactions carry amount 0.")
		return
	}

	tx := h.state.AppendTransaction(models.Transaction{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		Amount:      req.Amount,
		Date:        timezone.Now(),
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Method:      req.Method,
	})

	h.invalidateAnalytics()
	httpresp.Created(c, tx)
}

// invalidateAnalytics drops every cached range so the next dashboard read
// recomputes. Cache misses are harmless, so errors only log.
func (h *TransactionHandler) invalidateAnalytics() {
	keys := make([]string, 0, 5)
	for _, rng := range []analytics.Range{
		analytics.Range1W, analytics.Range1M, analytics.Range3M,
		analytics.Range1Y, analytics.RangeAll,
	} {
		keys = append(keys, analyticsCacheKey(rng))
	}

	ctx, cancel := timeout(2 * time.Second)
	defer cancel()
	if err := h.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("analytics: cache invalidation failed: %v", err)
	}
}
