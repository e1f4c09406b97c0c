package hr

import (
	"context"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository defines persistence operations for employees
type EmployeeRepository interface {
	shared.Repository[Employee]
	SaveWithLock(ctx context.Context, employee *Employee) error
}

// SalaryRepository defines persistence operations for salary payouts
type SalaryRepository interface {
	shared.Repository[Salary]
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Salary, error)
	CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
}
