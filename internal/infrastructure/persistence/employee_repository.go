package persistence

import (
	"context"
	"errors"

	"github.com/garage/backend/internal/domain/hr"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var employeeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"position":   true,
	"hire_date":  true,
}

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Employee, error) {
	var employee hr.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindAll finds all employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Employee, error) {
	var employees []hr.Employee
	query := r.db.WithContext(ctx).Model(&hr.Employee{})
	query = applySearch(query, filter.Search, "name", "position", "email")
	query = applyOrdering(query, filter, employeeSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// SaveWithLock saves an employee with an optimistic version check
func (r *GormEmployeeRepository) SaveWithLock(ctx context.Context, employee *hr.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&hr.Employee{}).
		Where("id = ? AND version = ?", employee.ID, employee.Version).
		Updates(map[string]interface{}{
			"name":        employee.Name,
			"position":    employee.Position,
			"contact":     employee.Contact,
			"email":       employee.Email,
			"hire_date":   employee.HireDate,
			"base_salary": employee.BaseSalary,
			"version":     employee.Version + 1,
			"updated_at":  employee.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	employee.Version++
	return nil
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&hr.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&hr.Employee{})
	query = applySearch(query, filter.Search, "name", "position", "email")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ hr.EmployeeRepository = (*GormEmployeeRepository)(nil)
