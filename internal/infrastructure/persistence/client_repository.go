package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var clientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
}

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var client partner.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindByEmail finds a client by email
func (r *GormClientRepository) FindByEmail(ctx context.Context, email string) (*partner.Client, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var client partner.Client
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	var clients []partner.Client
	query := r.db.WithContext(ctx).Model(&partner.Client{})
	query = applySearch(query, filter.Search, "name", "contact", "email")
	query = applyOrdering(query, filter, clientSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// SaveWithLock saves a client with an optimistic version check
func (r *GormClientRepository) SaveWithLock(ctx context.Context, client *partner.Client) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Client{}).
		Where("id = ? AND version = ?", client.ID, client.Version).
		Updates(map[string]interface{}{
			"name":       client.Name,
			"contact":    client.Contact,
			"email":      client.Email,
			"address":    client.Address,
			"notes":      client.Notes,
			"version":    client.Version + 1,
			"updated_at": client.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	client.Version++
	return nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Client{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.Client{})
	query = applySearch(query, filter.Search, "name", "contact", "email")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormClientRepository implements ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
