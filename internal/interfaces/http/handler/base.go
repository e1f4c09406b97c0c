package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/infrastructure/logger"
	"github.com/garage/backend/internal/interfaces/http/dto"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// Success writes a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created writes a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 validation error
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(dto.ErrCodeValidationError, err.Error()))
}

// HandleError maps an error to its HTTP response. Domain errors carry
// their own code; anything else is logged and reported as a 500 without
// leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	logger.GetGinLogger(c).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternalError, "An internal error occurred"))
}

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure.
// The boolean reports whether parsing succeeded.
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeInvalidInput, "Invalid "+name+" parameter"))
		return uuid.Nil, false
	}
	return id, true
}
