package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/garage/backend/internal/application/hr"
)

// EmployeeHandler serves employee endpoints
type EmployeeHandler struct {
	BaseHandler
	service *hr.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(service *hr.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /api/v1/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req hr.CreateEmployeeRequest
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

// Get handles GET /api/v1/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
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

// List handles GET /api/v1/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var filter hr.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	employees, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req hr.UpdateEmployeeRequest
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

// Delete handles DELETE /api/v1/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
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

// SalaryHandler serves payroll endpoints
type SalaryHandler struct {
	BaseHandler
	service *hr.SalaryService
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(service *hr.SalaryService) *SalaryHandler {
	return &SalaryHandler{service: service}
}

// Create handles POST /api/v1/salaries
func (h *SalaryHandler) Create(c *gin.Context) {
	var req hr.CreateSalaryRequest
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

// Get handles GET /api/v1/salaries/:id
func (h *SalaryHandler) Get(c *gin.Context) {
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

// ListByEmployee handles GET /api/v1/employees/:id/salaries
func (h *SalaryHandler) ListByEmployee(c *gin.Context) {
	employeeID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	salaries, err := h.service.ListByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, salaries)
}

// Pay handles POST /api/v1/salaries/:id/pay
func (h *SalaryHandler) Pay(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Pay(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/salaries/:id
func (h *SalaryHandler) Delete(c *gin.Context) {
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
