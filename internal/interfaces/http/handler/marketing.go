package handler

import (
	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// MarketingHandler handles marketing statistics API endpoints
type MarketingHandler struct {
	BaseHandler
	marketingService *crmapp.MarketingService
	resyncer         crmapp.Resyncer
}

// NewMarketingHandler creates a new MarketingHandler
func NewMarketingHandler(marketingService *crmapp.MarketingService, resyncer crmapp.Resyncer) *MarketingHandler {
	return &MarketingHandler{
		marketingService: marketingService,
		resyncer:         resyncer,
	}
}

// Stats handles GET /crm/marketing/stats
func (h *MarketingHandler) Stats(c *gin.Context) {
	stats, err := h.marketingService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// Resync handles POST /crm/sync. It recomputes customer profiles and
// follow-up tasks from the full booking set.
func (h *MarketingHandler) Resync(c *gin.Context) {
	if err := h.resyncer.Resync(c.Request.Context()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
