package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/audit"
)

// AuditHandler serves the read-only audit log endpoints
type AuditHandler struct {
	BaseHandler
	service *audit.Service
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(service *audit.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /api/v1/audit
func (h *AuditHandler) List(c *gin.Context) {
	var filter audit.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	entries, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Range handles GET /api/v1/audit/range
func (h *AuditHandler) Range(c *gin.Context) {
	var filter audit.RangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	entries, err := h.service.GetByDateRange(c.Request.Context(), filter.Start, filter.End)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ExportCSV handles GET /api/v1/audit/export
func (h *AuditHandler) ExportCSV(c *gin.Context) {
	var filter audit.RangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	filename := fmt.Sprintf("audit_%s_%s.csv",
		filter.Start.Format("2006-01-02"), filter.End.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer, filter.Start, filter.End); err != nil {
		// Headers are already sent; the truncated download is all we can signal.
		_ = c.Error(err)
	}
}
