package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/backup"
)

// BackupHandler serves full-database export, import, and archive endpoints
type BackupHandler struct {
	BaseHandler
	service *backup.Service
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(service *backup.Service) *BackupHandler {
	return &BackupHandler{service: service}
}

// Export handles GET /api/v1/backup/export and streams the snapshot as a
// JSON download
func (h *BackupHandler) Export(c *gin.Context) {
	filename := "garage_backup_" + time.Now().UTC().Format("20060102T150405Z") + ".json"
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.service.Export(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// Import handles POST /api/v1/backup/import. The request body is a
// snapshot previously produced by Export.
func (h *BackupHandler) Import(c *gin.Context) {
	if err := h.service.Import(c.Request.Context(), c.Request.Body); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"restored": true})
}

// Archive handles POST /api/v1/backup/archive and uploads a snapshot to
// the configured object store
func (h *BackupHandler) Archive(c *gin.Context) {
	key, err := h.service.ArchiveToStorage(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"key": key})
}

type restoreRequest struct {
	Key string `json:"key" binding:"required"`
}

// Restore handles POST /api/v1/backup/restore and replaces the database
// with the archived snapshot named by key
func (h *BackupHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	if err := h.service.RestoreFromStorage(c.Request.Context(), req.Key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"restored": true, "key": req.Key})
}
