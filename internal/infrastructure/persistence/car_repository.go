package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var carSortFields = map[string]bool{
	"uin":        true,
	"created_at": true,
	"updated_at": true,
	"make":       true,
	"model":      true,
	"year":       true,
}

// GormCarRepository implements CarRepository using GORM.
// Cars are keyed by their natural UIN, not a generated UUID.
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a new GormCarRepository
func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// FindByUIN finds a car by its UIN
func (r *GormCarRepository) FindByUIN(ctx context.Context, uin string) (*fleet.Car, error) {
	var car fleet.Car
	if err := r.db.WithContext(ctx).
		First(&car, "uin = ?", strings.ToUpper(strings.TrimSpace(uin))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &car, nil
}

// FindAll finds all cars matching the filter
func (r *GormCarRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Car, error) {
	var cars []fleet.Car
	query := r.db.WithContext(ctx).Model(&fleet.Car{})
	query = applySearch(query, filter.Search, "uin", "make", "model")
	query = applyOrdering(query, filter, carSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// FindByClient finds all cars owned by a client
func (r *GormCarRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]fleet.Car, error) {
	var cars []fleet.Car
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// CountByClient counts cars owned by a client
func (r *GormCarRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fleet.Car{}).
		Where("client_id = ?", clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a car
func (r *GormCarRepository) Save(ctx context.Context, car *fleet.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// SaveWithLock saves a car with an optimistic version check
func (r *GormCarRepository) SaveWithLock(ctx context.Context, car *fleet.Car) error {
	result := r.db.WithContext(ctx).
		Model(&fleet.Car{}).
		Where("uin = ? AND version = ?", car.UIN, car.Version).
		Updates(map[string]interface{}{
			"client_id":    car.ClientID,
			"insurance_id": car.InsuranceID,
			"make":         car.Make,
			"model":        car.Model,
			"year":         car.Year,
			"color":        car.Color,
			"version":      car.Version + 1,
			"updated_at":   car.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	car.Version++
	return nil
}

// Delete deletes a car by UIN
func (r *GormCarRepository) Delete(ctx context.Context, uin string) error {
	result := r.db.WithContext(ctx).
		Delete(&fleet.Car{}, "uin = ?", strings.ToUpper(strings.TrimSpace(uin)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts cars matching the filter
func (r *GormCarRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fleet.Car{})
	query = applySearch(query, filter.Search, "uin", "make", "model")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCarRepository implements CarRepository
var _ fleet.CarRepository = (*GormCarRepository)(nil)
