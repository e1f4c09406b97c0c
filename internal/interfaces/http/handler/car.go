package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/fleet"
)

// CarHandler serves car endpoints. Cars are addressed by their natural
// UIN rather than a surrogate ID.
type CarHandler struct {
	BaseHandler
	service *fleet.CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(service *fleet.CarService) *CarHandler {
	return &CarHandler{service: service}
}

// Create handles POST /api/v1/cars
func (h *CarHandler) Create(c *gin.Context) {
	var req fleet.CreateCarRequest
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

// Get handles GET /api/v1/cars/:uin
func (h *CarHandler) Get(c *gin.Context) {
	resp, err := h.service.GetByUIN(c.Request.Context(), c.Param("uin"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/cars
func (h *CarHandler) List(c *gin.Context) {
	var filter fleet.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	cars, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, cars, total, filter.Page, filter.PageSize)
}

// ListByClient handles GET /api/v1/clients/:id/cars
func (h *CarHandler) ListByClient(c *gin.Context) {
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	cars, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cars)
}

// Update handles PUT /api/v1/cars/:uin
func (h *CarHandler) Update(c *gin.Context) {
	var req fleet.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("uin"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/cars/:uin
func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uin")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
