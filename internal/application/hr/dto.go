package hr

import (
	"time"

	"github.com/garage/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to create an employee
type CreateEmployeeRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=255"`
	Position   string          `json:"position" binding:"max=100"`
	Contact    string          `json:"contact" binding:"max=50"`
	Email      string          `json:"email" binding:"omitempty,email,max=255"`
	HireDate   time.Time       `json:"hire_date" time_format:"2006-01-02"`
	BaseSalary decimal.Decimal `json:"base_salary"`
}

// UpdateEmployeeRequest represents a partial update to an employee
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Position   *string          `json:"position" binding:"omitempty,max=100"`
	Contact    *string          `json:"contact" binding:"omitempty,max=50"`
	Email      *string          `json:"email" binding:"omitempty,email,max=255"`
	BaseSalary *decimal.Decimal `json:"base_salary"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	Contact    string          `json:"contact"`
	Email      string          `json:"email"`
	HireDate   time.Time       `json:"hire_date"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToEmployeeResponse maps an employee aggregate to its API representation
func ToEmployeeResponse(employee *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         employee.ID,
		Name:       employee.Name,
		Position:   employee.Position,
		Contact:    employee.Contact,
		Email:      employee.Email,
		HireDate:   employee.HireDate,
		BaseSalary: employee.BaseSalary,
		CreatedAt:  employee.CreatedAt,
		UpdatedAt:  employee.UpdatedAt,
		Version:    employee.Version,
	}
}

// CreateSalaryRequest represents a request to register a salary payout.
// Amount defaults to the employee's base salary when omitted.
type CreateSalaryRequest struct {
	EmployeeID uuid.UUID        `json:"employee_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount"`
	Period     string           `json:"period" binding:"required,max=20"`
	Note       string           `json:"note" binding:"max=500"`
}

// SalaryResponse represents a salary payout in API responses
type SalaryResponse struct {
	ID         uuid.UUID       `json:"id"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
	Note       string          `json:"note"`
	Status     hr.SalaryStatus `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToSalaryResponse maps a salary payout to its API representation
func ToSalaryResponse(salary *hr.Salary) SalaryResponse {
	return SalaryResponse{
		ID:         salary.ID,
		EmployeeID: salary.EmployeeID,
		Amount:     salary.Amount,
		Period:     salary.Period,
		Note:       salary.Note,
		Status:     salary.Status,
		PaidAt:     salary.PaidAt,
		CreatedAt:  salary.CreatedAt,
	}
}

// ListFilter represents list query options for employees
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
