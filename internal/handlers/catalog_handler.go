package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stilevo/stilevo-api/internal/domain/catalog"
	"github.com/stilevo/stilevo-api/internal/domain/schedule"
	"github.com/stilevo/stilevo-api/internal/httpresp"
	"github.com/stilevo/stilevo-api/internal/timezone"
)

// CatalogHandler serves the static booking vocabulary: the service list,
// the daily slot grid and the rolling date labels the resolver accepts.
type CatalogHandler struct {
	resolver *schedule.Resolver
}

func NewCatalogHandler(resolver *schedule.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

func (h *CatalogHandler) Get(c *gin.Context) {
	httpresp.OK(c, gin.H{
		"services": catalog.Services,
		"slots":    catalog.Slots,
		"dates":    catalog.DateLabels(timezone.Now(), h.resolver),
	})
}
