package persistence

import (
	"context"

	"github.com/garage/backend/internal/application/backup"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormDatastore implements the backup Datastore on top of GORM. Dump reads
// every collection in full; Replace truncates and re-creates them inside a
// single transaction. The audit log is read for export but never truncated.
type GormDatastore struct {
	db *gorm.DB
}

// NewGormDatastore creates a new GormDatastore
func NewGormDatastore(db *gorm.DB) *GormDatastore {
	return &GormDatastore{db: db}
}

const insertBatchSize = 100

// Dump reads every collection into a snapshot payload
func (s *GormDatastore) Dump(ctx context.Context) (*backup.SnapshotData, error) {
	data := &backup.SnapshotData{}
	db := s.db.WithContext(ctx)

	if err := db.Order("created_at asc").Find(&data.Clients).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Cars).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Insurance).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Services).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Suppliers).Error; err != nil {
		return nil, err
	}
	if err := db.
		Preload("ServiceLines", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at asc") }).
		Preload("ProductLines", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at asc") }).
		Order("created_at asc").
		Find(&data.Maintenance).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at asc").Find(&data.Logs).Error; err != nil {
		return nil, err
	}
	return data, nil
}

// Replace truncates every collection except the audit log and re-creates it
// from the payload. Deletion runs child-first so foreign keys never block.
func (s *GormDatastore) Replace(ctx context.Context, data *backup.SnapshotData) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		truncations := []any{
			&maintenance.ProductLine{},
			&maintenance.ServiceLine{},
			&maintenance.MaintenanceRequest{},
			&catalog.Product{},
			&catalog.ShopService{},
			&fleet.Car{},
			&fleet.InsurancePolicy{},
			&partner.Client{},
			&partner.Supplier{},
		}
		for _, model := range truncations {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if err := createAll(tx, data.Clients); err != nil {
			return err
		}
		if err := createAll(tx, data.Insurance); err != nil {
			return err
		}
		if err := createAll(tx, data.Cars); err != nil {
			return err
		}
		if err := createAll(tx, data.Services); err != nil {
			return err
		}
		if err := createAll(tx, data.Suppliers); err != nil {
			return err
		}
		if err := createAll(tx, data.Products); err != nil {
			return err
		}
		// GORM association handling inserts the service and product lines
		// together with their parent requests.
		if err := createAll(tx, data.Maintenance); err != nil {
			return err
		}
		return nil
	})
}

func createAll[T any](tx *gorm.DB, items []T) error {
	if len(items) == 0 {
		return nil
	}
	return tx.CreateInBatches(&items, insertBatchSize).Error
}

var _ backup.Datastore = (*GormDatastore)(nil)
