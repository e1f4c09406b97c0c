package maintenance

import (
	"context"

	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/maintenance"
)

// TransactionScope provides transactional access to the repositories a
// maintenance request mutation touches. When a function is executed within a
// transaction scope, all repository operations are part of the same database
// transaction and are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories involved in a
// maintenance request mutation. All repositories returned share the same
// underlying database transaction.
//
// Aggregate boundary notes:
//   - RequestRepo: the MaintenanceRequest aggregate root, including its service
//     and product lines, which are persisted through GORM association handling.
//   - ProductRepo: the Product aggregate, whose stock counters every request
//     mutation must move in lockstep with the product lines.
//   - AuditRepo: append-only audit entries, written in the same transaction so
//     a rolled-back mutation leaves no trace.
type TransactionalRepositories interface {
	// RequestRepo returns the maintenance request repository scoped to the current transaction
	RequestRepo() maintenance.MaintenanceRequestRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// AuditRepo returns the audit entry repository scoped to the current transaction
	AuditRepo() audit.EntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	requestRepo maintenance.MaintenanceRequestRepository
	productRepo catalog.ProductRepository
	auditRepo   audit.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	requestRepo maintenance.MaintenanceRequestRepository,
	productRepo catalog.ProductRepository,
	auditRepo audit.EntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		requestRepo: requestRepo,
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RequestRepo returns the maintenance request repository.
func (s *NoOpTransactionScope) RequestRepo() maintenance.MaintenanceRequestRepository {
	return s.requestRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// AuditRepo returns the audit entry repository.
func (s *NoOpTransactionScope) AuditRepo() audit.EntryRepository {
	return s.auditRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
