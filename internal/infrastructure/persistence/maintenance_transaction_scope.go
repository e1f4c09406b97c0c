package persistence

import (
	"context"

	appmaintenance "github.com/garage/backend/internal/application/maintenance"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/maintenance"
	"gorm.io/gorm"
)

// GormTransactionScope implements the maintenance TransactionScope using
// GORM transactions. Every repository handed to the callback is bound to
// the same *gorm.DB transaction handle.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back, otherwise it
// is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appmaintenance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories builds repositories on demand from the
// transaction handle. The repositories are cheap to construct, so no
// caching is needed.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) RequestRepo() maintenance.MaintenanceRequestRepository {
	return NewGormMaintenanceRequestRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) AuditRepo() audit.EntryRepository {
	return NewGormEntryRepository(r.tx)
}

var (
	_ appmaintenance.TransactionScope          = (*GormTransactionScope)(nil)
	_ appmaintenance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
