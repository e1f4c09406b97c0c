package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var maintenanceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"start_date": true,
	"status":     true,
	"total_cost": true,
}

// GormMaintenanceRequestRepository implements MaintenanceRequestRepository
// using GORM. Service and product lines are loaded and saved together with
// the request; on save the line set is replaced wholesale, which keeps the
// rows in sync with the aggregate after line replacement.
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a request with its lines by ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.MaintenanceRequest, error) {
	var request maintenance.MaintenanceRequest
	if err := r.preloaded(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindAll finds all requests matching the filter
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.MaintenanceRequest, error) {
	var requests []maintenance.MaintenanceRequest
	query := r.preloaded(ctx).Model(&maintenance.MaintenanceRequest{})
	query = applySearch(query, filter.Search, "car_uin")
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, maintenanceSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByCarUin finds all requests for a car
func (r *GormMaintenanceRequestRepository) FindByCarUin(ctx context.Context, uin string) ([]maintenance.MaintenanceRequest, error) {
	var requests []maintenance.MaintenanceRequest
	if err := r.preloaded(ctx).
		Where("car_uin = ?", strings.ToUpper(strings.TrimSpace(uin))).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByClient finds all requests for a client
func (r *GormMaintenanceRequestRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]maintenance.MaintenanceRequest, error) {
	var requests []maintenance.MaintenanceRequest
	if err := r.preloaded(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByDateRange finds requests whose start date falls within [start, end]
func (r *GormMaintenanceRequestRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]maintenance.MaintenanceRequest, error) {
	var requests []maintenance.MaintenanceRequest
	if err := r.preloaded(ctx).
		Where("start_date >= ? AND start_date <= ?", start, end).
		Order("start_date asc").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// CountByCarUin counts requests referencing a car
func (r *GormMaintenanceRequestRepository) CountByCarUin(ctx context.Context, uin string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&maintenance.MaintenanceRequest{}).
		Where("car_uin = ?", strings.ToUpper(strings.TrimSpace(uin))).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountReferencingService counts requests with a line for the given service
func (r *GormMaintenanceRequestRepository) CountReferencingService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&maintenance.ServiceLine{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountReferencingProduct counts requests with a line for the given product
func (r *GormMaintenanceRequestRepository) CountReferencingProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&maintenance.ProductLine{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a request, replacing its line set
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, request *maintenance.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ServiceLines", "ProductLines").Save(request).Error; err != nil {
			return err
		}
		return r.replaceLines(tx, request)
	})
}

// SaveWithLock saves a request with an optimistic version check
func (r *GormMaintenanceRequestRepository) SaveWithLock(ctx context.Context, request *maintenance.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&maintenance.MaintenanceRequest{}).
			Where("id = ? AND version = ?", request.ID, request.Version).
			Updates(map[string]interface{}{
				"car_uin":                request.CarUin,
				"client_id":              request.ClientID,
				"additional_fee":         request.AdditionalFee,
				"discount":               request.Discount,
				"discount_justification": request.DiscountJustification,
				"total_cost":             request.TotalCost,
				"paid_amount":            request.PaidAmount,
				"remaining_balance":      request.RemainingBalance,
				"payment_status":         request.PaymentStatus,
				"status":                 request.Status,
				"start_date":             request.StartDate,
				"end_date":               request.EndDate,
				"version":                request.Version + 1,
				"updated_at":             request.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		request.Version++
		return r.replaceLines(tx, request)
	})
}

// Delete deletes a request and its lines
func (r *GormMaintenanceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&maintenance.ServiceLine{}, "request_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&maintenance.ProductLine{}, "request_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&maintenance.MaintenanceRequest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts requests matching the filter
func (r *GormMaintenanceRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&maintenance.MaintenanceRequest{})
	query = applySearch(query, filter.Search, "car_uin")
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormMaintenanceRequestRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ServiceLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("ProductLines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		})
}

func (r *GormMaintenanceRequestRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "car_uin":
			query = query.Where("car_uin = ?", value)
		}
	}
	return query
}

func (r *GormMaintenanceRequestRepository) replaceLines(tx *gorm.DB, request *maintenance.MaintenanceRequest) error {
	if err := tx.Delete(&maintenance.ServiceLine{}, "request_id = ?", request.ID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&maintenance.ProductLine{}, "request_id = ?", request.ID).Error; err != nil {
		return err
	}
	if len(request.ServiceLines) > 0 {
		if err := tx.Create(&request.ServiceLines).Error; err != nil {
			return err
		}
	}
	if len(request.ProductLines) > 0 {
		if err := tx.Create(&request.ProductLines).Error; err != nil {
			return err
		}
	}
	return nil
}

// Ensure GormMaintenanceRequestRepository implements MaintenanceRequestRepository
var _ maintenance.MaintenanceRequestRepository = (*GormMaintenanceRequestRepository)(nil)
