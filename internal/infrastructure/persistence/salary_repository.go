package persistence

import (
	"context"
	"errors"

	"github.com/garage/backend/internal/domain/hr"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var salarySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"amount":     true,
	"status":     true,
	"paid_at":    true,
}

// GormSalaryRepository implements SalaryRepository using GORM
type GormSalaryRepository struct {
	db *gorm.DB
}

// NewGormSalaryRepository creates a new GormSalaryRepository
func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{db: db}
}

// FindByID finds a salary payout by ID
func (r *GormSalaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*hr.Salary, error) {
	var salary hr.Salary
	if err := r.db.WithContext(ctx).First(&salary, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &salary, nil
}

// FindAll finds all salary payouts matching the filter
func (r *GormSalaryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hr.Salary, error) {
	var salaries []hr.Salary
	query := r.db.WithContext(ctx).Model(&hr.Salary{})
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, salarySortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&salaries).Error; err != nil {
		return nil, err
	}
	return salaries, nil
}

// FindByEmployee finds all payouts for an employee
func (r *GormSalaryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]hr.Salary, error) {
	var salaries []hr.Salary
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at desc").
		Find(&salaries).Error; err != nil {
		return nil, err
	}
	return salaries, nil
}

// CountByEmployee counts payouts for an employee
func (r *GormSalaryRepository) CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&hr.Salary{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a salary payout
func (r *GormSalaryRepository) Save(ctx context.Context, salary *hr.Salary) error {
	return r.db.WithContext(ctx).Save(salary).Error
}

// Delete deletes a salary payout
func (r *GormSalaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&hr.Salary{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts salary payouts matching the filter
func (r *GormSalaryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&hr.Salary{})
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSalaryRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "employee_id":
			query = query.Where("employee_id = ?", value)
		}
	}
	return query
}

// Ensure GormSalaryRepository implements SalaryRepository
var _ hr.SalaryRepository = (*GormSalaryRepository)(nil)
