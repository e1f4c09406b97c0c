package persistence

import (
	"context"
	"errors"

	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShopServiceRepository implements ShopServiceRepository using GORM
type GormShopServiceRepository struct {
	db *gorm.DB
}

// NewGormShopServiceRepository creates a new GormShopServiceRepository
func NewGormShopServiceRepository(db *gorm.DB) *GormShopServiceRepository {
	return &GormShopServiceRepository{db: db}
}

// FindByID finds a service offering by its ID
func (r *GormShopServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ShopService, error) {
	var offering catalog.ShopService
	if err := r.db.WithContext(ctx).First(&offering, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offering, nil
}

// FindByIDs finds multiple service offerings by their IDs
func (r *GormShopServiceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ShopService, error) {
	if len(ids) == 0 {
		return []catalog.ShopService{}, nil
	}
	var offerings []catalog.ShopService
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&offerings).Error; err != nil {
		return nil, err
	}
	return offerings, nil
}

// FindAll finds all service offerings matching the filter
func (r *GormShopServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ShopService, error) {
	var offerings []catalog.ShopService
	query := r.db.WithContext(ctx).Model(&catalog.ShopService{})
	query = applySearch(query, filter.Search, "name", "description")
	query = applyOrdering(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&offerings).Error; err != nil {
		return nil, err
	}
	return offerings, nil
}

// Save creates or updates a service offering
func (r *GormShopServiceRepository) Save(ctx context.Context, offering *catalog.ShopService) error {
	return r.db.WithContext(ctx).Save(offering).Error
}

// Delete deletes a service offering
func (r *GormShopServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ShopService{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts service offerings matching the filter
func (r *GormShopServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.ShopService{})
	query = applySearch(query, filter.Search, "name", "description")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormShopServiceRepository implements ShopServiceRepository
var _ catalog.ShopServiceRepository = (*GormShopServiceRepository)(nil)
