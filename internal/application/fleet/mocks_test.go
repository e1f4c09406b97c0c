package fleet

import (
	"context"
	"time"

	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCarRepository is a mock implementation of fleet.CarRepository
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) FindByUIN(ctx context.Context, uin string) (*fleet.Car, error) {
	args := m.Called(ctx, uin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Car), args.Error(1)
}

func (m *MockCarRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.Car, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Car), args.Error(1)
}

func (m *MockCarRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]fleet.Car, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Car), args.Error(1)
}

func (m *MockCarRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCarRepository) Save(ctx context.Context, car *fleet.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) SaveWithLock(ctx context.Context, car *fleet.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(ctx context.Context, uin string) error {
	args := m.Called(ctx, uin)
	return args.Error(0)
}

func (m *MockCarRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByEmail(ctx context.Context, email string) (*partner.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SaveWithLock(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockInsuranceRepository is a mock implementation of fleet.InsurancePolicyRepository
type MockInsuranceRepository struct {
	mock.Mock
}

func (m *MockInsuranceRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.InsurancePolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.InsurancePolicy), args.Error(1)
}

func (m *MockInsuranceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.InsurancePolicy, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.InsurancePolicy), args.Error(1)
}

func (m *MockInsuranceRepository) FindByPolicyNumber(ctx context.Context, policyNumber string) (*fleet.InsurancePolicy, error) {
	args := m.Called(ctx, policyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.InsurancePolicy), args.Error(1)
}

func (m *MockInsuranceRepository) Save(ctx context.Context, policy *fleet.InsurancePolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockInsuranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInsuranceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
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
