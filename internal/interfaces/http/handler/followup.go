package handler

import (
	"time"

	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// FollowUpHandler handles follow-up task API endpoints
type FollowUpHandler struct {
	BaseHandler
	followUpService *crmapp.FollowUpService
}

// NewFollowUpHandler creates a new FollowUpHandler
func NewFollowUpHandler(followUpService *crmapp.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{
		followUpService: followUpService,
	}
}

// GetByID handles GET /crm/follow-ups/:id
func (h *FollowUpHandler) GetByID(c *gin.Context) {
	taskID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid follow-up task ID")
		return
	}

	task, err := h.followUpService.GetByID(c.Request.Context(), taskID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// List handles GET /crm/follow-ups
func (h *FollowUpHandler) List(c *gin.Context) {
	var filter crmapp.FollowUpListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tasks, total, err := h.followUpService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, tasks, total, page, pageSize)
}

// ListPending handles GET /crm/follow-ups/pending
func (h *FollowUpHandler) ListPending(c *gin.Context) {
	tasks, err := h.followUpService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// ListByCustomer handles GET /crm/customers/:id/follow-ups
func (h *FollowUpHandler) ListByCustomer(c *gin.Context) {
	customerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	tasks, err := h.followUpService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// ListDue handles GET /crm/follow-ups/due
func (h *FollowUpHandler) ListDue(c *gin.Context) {
	tasks, err := h.followUpService.ListDue(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tasks)
}

// UpdateStatus handles PUT /crm/follow-ups/:id/status
func (h *FollowUpHandler) UpdateStatus(c *gin.Context) {
	taskID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid follow-up task ID")
		return
	}

	var req crmapp.UpdateFollowUpStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.followUpService.UpdateStatus(c.Request.Context(), taskID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}
