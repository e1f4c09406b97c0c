package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/catalog"
)

// ShopServiceHandler serves shop service endpoints
type ShopServiceHandler struct {
	BaseHandler
	service *catalog.ShopServiceService
}

// NewShopServiceHandler creates a new shop service handler
func NewShopServiceHandler(service *catalog.ShopServiceService) *ShopServiceHandler {
	return &ShopServiceHandler{service: service}
}

// Create handles POST /api/v1/services
func (h *ShopServiceHandler) Create(c *gin.Context) {
	var req catalog.CreateShopServiceRequest
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

// Get handles GET /api/v1/services/:id
func (h *ShopServiceHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/services
func (h *ShopServiceHandler) List(c *gin.Context) {
	var filter catalog.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	services, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, services, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/services/:id
func (h *ShopServiceHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateShopServiceRequest
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

// Delete handles DELETE /api/v1/services/:id
func (h *ShopServiceHandler) Delete(c *gin.Context) {
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
