package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/finance"
)

// FinanceHandler serves finance category and record endpoints
type FinanceHandler struct {
	BaseHandler
	service *finance.Service
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(service *finance.Service) *FinanceHandler {
	return &FinanceHandler{service: service}
}

// CreateCategory handles POST /api/v1/finance/categories
func (h *FinanceHandler) CreateCategory(c *gin.Context) {
	var req finance.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories handles GET /api/v1/finance/categories
func (h *FinanceHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory handles DELETE /api/v1/finance/categories/:id
func (h *FinanceHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRecord handles POST /api/v1/finance/records
func (h *FinanceHandler) CreateRecord(c *gin.Context) {
	var req finance.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.CreateRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateRecord handles PUT /api/v1/finance/records/:id
func (h *FinanceHandler) UpdateRecord(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req finance.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.UpdateRecord(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteRecord handles DELETE /api/v1/finance/records/:id
func (h *FinanceHandler) DeleteRecord(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// recordRangeQuery selects the date window for record listings
type recordRangeQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}

// ListRecords handles GET /api/v1/finance/records
func (h *FinanceHandler) ListRecords(c *gin.Context) {
	var query recordRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err)
		return
	}

	records, err := h.service.ListRecords(c.Request.Context(), query.Start, query.End)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// Summary handles GET /api/v1/finance/summary
func (h *FinanceHandler) Summary(c *gin.Context) {
	var filter finance.SummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TimeSeries handles GET /api/v1/finance/timeseries
func (h *FinanceHandler) TimeSeries(c *gin.Context) {
	var filter finance.TimeSeriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	points, err := h.service.TimeSeries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}
