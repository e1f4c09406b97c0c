package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/fleet"
)

// InsuranceHandler serves insurance policy endpoints
type InsuranceHandler struct {
	BaseHandler
	service *fleet.InsuranceService
}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler(service *fleet.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{service: service}
}

// Create handles POST /api/v1/insurance
func (h *InsuranceHandler) Create(c *gin.Context) {
	var req fleet.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/insurance/:id
func (h *InsuranceHandler) Get(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/insurance
func (h *InsuranceHandler) List(c *gin.Context) {
	var filter fleet.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	policies, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, policies, total, filter.Page, filter.PageSize)
}

// Renew handles POST /api/v1/insurance/:id/renew
func (h *InsuranceHandler) Renew(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fleet.RenewInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Renew(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/insurance/:id
func (h *InsuranceHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
