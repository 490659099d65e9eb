package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/stilevo/stilevo-api/internal/analytics"
	"github.com/stilevo/stilevo-api/internal/config"
	"github.com/stilevo/stilevo-api/internal/httperr"
	"github.com/stilevo/stilevo-api/internal/state"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

// AnalyticsHandler serves the dashboard charts. Aggregation runs over the
// in-memory ledger and results are cached per range in redis; any ledger
// write drops the cache.
type AnalyticsHandler struct {
	state *state.Store
	rdb   *redis.Client
	cfg   *config.Config
}

func NewAnalyticsHandler(st *state.Store, rdb *redis.Client, cfg *config.Config) *AnalyticsHandler {
	return &AnalyticsHandler{state: st, rdb: rdb, cfg: cfg}
}

type AnalyticsResponse struct {
	Range   analytics.Range    `json:"range"`
	Buckets []analytics.Bucket `json:"buckets"`
	Summary analytics.Summary  `json:"summary"`
}

func (h *AnalyticsHandler) Get(c *gin.Context) {
	raw := c.DefaultQuery("range", string(analytics.Range3M))
	rng, ok := analytics.ParseRange(raw)
	if !ok {
		httperr.BadRequest(c, "invalid_range", "Range must be one of 1W, 1M, 3M, 1Y, ALL.")
		return
	}

	key := analyticsCacheKey(rng)
	ctx, cancel := timeout(2 * time.Second)
	defer cancel()

	if cached, err := h.rdb.Get(ctx, key).Result(); err == nil {
		var resp AnalyticsResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			c.JSON(200, resp)
			return
		}
	} else if err != redis.Nil {
		log.Printf("analytics: cache read failed: %v", err)
	}

	buckets := analytics.Aggregate(h.state.Transactions(), rng, timezone.Now())
	resp := AnalyticsResponse{
		Range:   rng,
		Buckets: buckets,
		Summary: analytics.Summarize(buckets),
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := h.rdb.Set(ctx, key, payload, h.cfg.AnalyticsCacheTTL).Err(); err != nil {
			log.Printf("analytics: cache write failed: %v", err)
		}
	}

	c.JSON(200, resp)
}

func analyticsCacheKey(rng analytics.Range) string {
	return "analytics:" + string(rng)
}

// timeout bounds redis round trips without tying them to the request's
// own cancellation. The cache is shared across requests, so a client
// hanging up must not abort a write the next reader benefits from.
func timeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
