package catalog

import (
	"context"
	"time"

	financeapp "github.com/garage/backend/internal/application/finance"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockShopServiceRepository is a mock implementation of catalog.ShopServiceRepository
type MockShopServiceRepository struct {
	mock.Mock
}

func (m *MockShopServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ShopService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ShopService), args.Error(1)
}

func (m *MockShopServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ShopService, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ShopService), args.Error(1)
}

func (m *MockShopServiceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ShopService, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ShopService), args.Error(1)
}

func (m *MockShopServiceRepository) Save(ctx context.Context, offering *catalog.ShopService) error {
	args := m.Called(ctx, offering)
	return args.Error(0)
}

func (m *MockShopServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShopServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBelowThreshold(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepository is a mock implementation of maintenance.MaintenanceRequestRepository
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByCarUin(ctx context.Context, uin string) ([]maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, uin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]maintenance.MaintenanceRequest, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]maintenance.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) CountByCarUin(ctx context.Context, uin string) (int64, error) {
	args := m.Called(ctx, uin)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) CountReferencingService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) CountReferencingProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) Save(ctx context.Context, request *maintenance.MaintenanceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) SaveWithLock(ctx context.Context, request *maintenance.MaintenanceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEntryRepository is a mock implementation of audit.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]audit.Entry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockEntryRepository) SaveAll(ctx context.Context, entries []audit.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// MockFinanceRecorder is a mock implementation of FinanceRecorder
type MockFinanceRecorder struct {
	mock.Mock
}

func (m *MockFinanceRecorder) RecordDerived(ctx context.Context, categoryName string, kind finance.CategoryKind, amount valueobject.Money, description string, refType finance.ReferenceType, refID string, date time.Time) (*financeapp.RecordResponse, error) {
	args := m.Called(ctx, categoryName, kind, amount, description, refType, refID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*financeapp.RecordResponse), args.Error(1)
}
