package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/garage/backend/internal/interfaces/http/dto"
)

// SystemHandler serves health and readiness endpoints. The offline sync
// client polls /health to decide when to replay its queue.
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	appName string
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *gorm.DB, appName string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		started: time.Now(),
	}
}

// Health handles GET /health. It reports unhealthy when the database is
// unreachable so clients hold their queued writes.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	payload := gin.H{
		"status":   status,
		"app":      h.appName,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	}

	if status != "ok" {
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    payload,
			Error: &dto.ErrorInfo{
				Code:    dto.ErrCodeServiceUnavailable,
				Message: "Database is unreachable",
			},
		})
		return
	}
	h.Success(c, payload)
}
