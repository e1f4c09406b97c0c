package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEntryRepository implements the append-only EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

var auditSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"action_type": true,
	"table_name":  true,
	"actor_name":  true,
}

// Append persists a new audit entry. Entries are never updated, so a
// plain insert is used instead of Save.
func (r *GormEntryRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByID finds an entry by ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.Entry, error) {
	var entry audit.Entry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds entries matching the filter, newest first by default
func (r *GormEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	var entries []audit.Entry
	query := r.db.WithContext(ctx).Model(&audit.Entry{})
	query = applySearch(query, filter.Search, "actor_name", "record_id")
	query = r.applyFilters(query, filter)
	query = applyOrdering(query, filter, auditSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDateRange finds entries created within [start, end], oldest first
func (r *GormEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]audit.Entry, error) {
	var entries []audit.Entry
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts entries matching the filter
func (r *GormEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&audit.Entry{})
	query = applySearch(query, filter.Search, "actor_name", "record_id")
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistingIDs reports which of the given IDs are already present. The
// restore flow uses this to append only entries it has not seen before.
func (r *GormEntryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	existing := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&audit.Entry{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// SaveAll inserts entries in batches. Used only by backup restore.
func (r *GormEntryRepository) SaveAll(ctx context.Context, entries []audit.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&entries, 100).Error
}

func (r *GormEntryRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action_type":
			query = query.Where("action_type = ?", value)
		case "table_name":
			query = query.Where("table_name = ?", value)
		case "record_id":
			query = query.Where("record_id = ?", value)
		case "actor_name":
			query = query.Where("actor_name = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "car_uin":
			query = query.Where("car_uin = ?", value)
		case "maintenance_id":
			query = query.Where("maintenance_id = ?", value)
		}
	}
	return query
}

var _ audit.EntryRepository = (*GormEntryRepository)(nil)
