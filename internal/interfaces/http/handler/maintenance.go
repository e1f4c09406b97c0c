package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/maintenance"
)

// MaintenanceHandler serves maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	service *maintenance.LedgerService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service *maintenance.LedgerService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// Create handles POST /api/v1/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req maintenance.CreateRequestRequest
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

// Get handles GET /api/v1/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/maintenance
func (h *MaintenanceHandler) List(c *gin.Context) {
	var filter maintenance.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	requests, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

// ListByCar handles GET /api/v1/cars/:uin/maintenance
func (h *MaintenanceHandler) ListByCar(c *gin.Context) {
	requests, err := h.service.GetByCarUin(c.Request.Context(), c.Param("uin"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// ListByClient handles GET /api/v1/clients/:id/maintenance
func (h *MaintenanceHandler) ListByClient(c *gin.Context) {
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	requests, err := h.service.GetByClientID(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, requests)
}

// Report handles GET /api/v1/maintenance/report
func (h *MaintenanceHandler) Report(c *gin.Context) {
	var filter maintenance.RangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	report, err := h.service.GetByDateRange(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Update handles PUT /api/v1/maintenance/:id
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req maintenance.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TransitionStatus handles POST /api/v1/maintenance/:id/status
func (h *MaintenanceHandler) TransitionStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req maintenance.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.TransitionStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MakePayment handles POST /api/v1/maintenance/:id/payments
func (h *MaintenanceHandler) MakePayment(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req maintenance.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.MakePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/maintenance/:id
func (h *MaintenanceHandler) Delete(c *gin.Context) {
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
