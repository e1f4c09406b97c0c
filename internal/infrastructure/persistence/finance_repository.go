package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFinanceCategoryRepository implements FinanceCategoryRepository using GORM
type GormFinanceCategoryRepository struct {
	db *gorm.DB
}

// NewGormFinanceCategoryRepository creates a new GormFinanceCategoryRepository
func NewGormFinanceCategoryRepository(db *gorm.DB) *GormFinanceCategoryRepository {
	return &GormFinanceCategoryRepository{db: db}
}

// FindByID finds a category by ID
func (r *GormFinanceCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinanceCategory, error) {
	var category finance.FinanceCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its unique name
func (r *GormFinanceCategoryRepository) FindByName(ctx context.Context, name string) (*finance.FinanceCategory, error) {
	var category finance.FinanceCategory
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormFinanceCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinanceCategory, error) {
	var categories []finance.FinanceCategory
	query := r.db.WithContext(ctx).Model(&finance.FinanceCategory{})
	query = applySearch(query, filter.Search, "name")
	if kind, ok := filter.Filters["kind"]; ok {
		query = query.Where("kind = ?", kind)
	}
	query = applyOrdering(query, filter, CommonSortFields, "name")
	query = applyPagination(query, filter)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormFinanceCategoryRepository) Save(ctx context.Context, category *finance.FinanceCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category
func (r *GormFinanceCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.FinanceCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormFinanceCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&finance.FinanceCategory{})
	query = applySearch(query, filter.Search, "name")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormFinanceRecordRepository implements FinanceRecordRepository using GORM,
// including the aggregated read side used by dashboards
type GormFinanceRecordRepository struct {
	db *gorm.DB
}

// NewGormFinanceRecordRepository creates a new GormFinanceRecordRepository
func NewGormFinanceRecordRepository(db *gorm.DB) *GormFinanceRecordRepository {
	return &GormFinanceRecordRepository{db: db}
}

var financeRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"amount":     true,
}

// FindByID finds a record by ID
func (r *GormFinanceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.FinanceRecord, error) {
	var record finance.FinanceRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds all records matching the filter
func (r *GormFinanceRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.FinanceRecord, error) {
	var records []finance.FinanceRecord
	query := r.db.WithContext(ctx).Model(&finance.FinanceRecord{})
	query = applySearch(query, filter.Search, "description")
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, financeRecordSortFields, "date")
	query = applyPagination(query, filter)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByCategory finds all records of a category
func (r *GormFinanceRecordRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]finance.FinanceRecord, error) {
	var records []finance.FinanceRecord
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("date desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDateRange finds records dated within [start, end]
func (r *GormFinanceRecordRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]finance.FinanceRecord, error) {
	var records []finance.FinanceRecord
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountByCategory counts records of a category
func (r *GormFinanceRecordRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&finance.FinanceRecord{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SummarizeByCategory aggregates record totals per category over a period
func (r *GormFinanceRecordRepository) SummarizeByCategory(ctx context.Context, start, end time.Time) ([]finance.CategorySummary, error) {
	var summaries []finance.CategorySummary
	err := r.db.WithContext(ctx).
		Table("finance_records").
		Select(`finance_categories.id AS category_id,
			finance_categories.name AS category_name,
			finance_categories.kind AS kind,
			SUM(finance_records.amount) AS total,
			COUNT(finance_records.id) AS record_count`).
		Joins("JOIN finance_categories ON finance_categories.id = finance_records.category_id").
		Where("finance_records.date >= ? AND finance_records.date <= ?", start, end).
		Group("finance_categories.id, finance_categories.name, finance_categories.kind").
		Order("total DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// TimeSeries aggregates income and expense per day or month over a period
func (r *GormFinanceRecordRepository) TimeSeries(ctx context.Context, start, end time.Time, granularity string) ([]finance.TimeSeriesPoint, error) {
	layout := "YYYY-MM"
	if granularity == "day" {
		layout = "YYYY-MM-DD"
	}

	var points []finance.TimeSeriesPoint
	err := r.db.WithContext(ctx).
		Table("finance_records").
		Select(`to_char(finance_records.date, ?) AS period,
			COALESCE(SUM(CASE WHEN finance_categories.kind = 'income' THEN finance_records.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN finance_categories.kind = 'expense' THEN finance_records.amount ELSE 0 END), 0) AS expense`, layout).
		Joins("JOIN finance_categories ON finance_categories.id = finance_records.category_id").
		Where("finance_records.date >= ? AND finance_records.date <= ?", start, end).
		Group("period").
		Order("period ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// Save creates or updates a record
func (r *GormFinanceRecordRepository) Save(ctx context.Context, record *finance.FinanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete deletes a record
func (r *GormFinanceRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.FinanceRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts records matching the filter
func (r *GormFinanceRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&finance.FinanceRecord{})
	query = applySearch(query, filter.Search, "description")
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFinanceRecordRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "reference_type":
			query = query.Where("reference_type = ?", value)
		case "reference_id":
			query = query.Where("reference_id = ?", value)
		}
	}
	return query
}

// Ensure implementations satisfy the domain contracts
var (
	_ finance.FinanceCategoryRepository = (*GormFinanceCategoryRepository)(nil)
	_ finance.FinanceRecordRepository   = (*GormFinanceRecordRepository)(nil)
)
