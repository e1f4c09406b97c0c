package fleet

import (
	"context"
	"testing"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type carServiceFixture struct {
	carRepo         *MockCarRepository
	clientRepo      *MockClientRepository
	insuranceRepo   *MockInsuranceRepository
	maintenanceRepo *MockRequestRepository
	entries         *MockEntryRepository
	service         *CarService
}

func newCarServiceFixture() *carServiceFixture {
	f := &carServiceFixture{
		carRepo:         new(MockCarRepository),
		clientRepo:      new(MockClientRepository),
		insuranceRepo:   new(MockInsuranceRepository),
		maintenanceRepo: new(MockRequestRepository),
		entries:         new(MockEntryRepository),
	}
	f.service = NewCarService(f.carRepo, f.clientRepo, f.insuranceRepo, f.maintenanceRepo,
		auditapp.NewService(f.entries, nil))
	return f
}

func TestCarService_Create(t *testing.T) {
	f := newCarServiceFixture()

	client, err := partner.NewClient("Ana Driver", "", "", "")
	require.NoError(t, err)

	f.clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	f.carRepo.On("FindByUIN", mock.Anything, "VIN-001").Return(nil, shared.ErrNotFound)
	f.carRepo.On("Save", mock.Anything, mock.AnythingOfType("*fleet.Car")).Return(nil)
	f.entries.On("Append", mock.Anything, mock.MatchedBy(func(entry *audit.Entry) bool {
		return entry.ActionType == audit.ActionCreate && *entry.CarUin == "VIN-001"
	})).Return(nil)

	response, err := f.service.Create(context.Background(), CreateCarRequest{
		UIN:      "vin-001",
		ClientID: client.ID,
		Make:     "Toyota",
		Model:    "Corolla",
		Year:     2021,
	})

	require.NoError(t, err)
	assert.Equal(t, "VIN-001", response.UIN, "UIN is normalized to upper case")
	f.entries.AssertExpectations(t)
}

func TestCarService_Create_UnknownClient(t *testing.T) {
	f := newCarServiceFixture()

	clientID := uuid.New()
	f.clientRepo.On("FindByID", mock.Anything, clientID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Create(context.Background(), CreateCarRequest{UIN: "VIN-001", ClientID: clientID})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.carRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCarService_Create_DuplicateUIN(t *testing.T) {
	f := newCarServiceFixture()

	client, err := partner.NewClient("Ana Driver", "", "", "")
	require.NoError(t, err)
	existing, err := fleet.NewCar("VIN-001", client.ID, "Honda", "Civic", 2019)
	require.NoError(t, err)

	f.clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	f.carRepo.On("FindByUIN", mock.Anything, "VIN-001").Return(existing, nil)

	// A differently-cased UIN must still hit the duplicate guard.
	_, err = f.service.Create(context.Background(), CreateCarRequest{UIN: " vin-001 ", ClientID: client.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCarService_Delete_BlockedByMaintenance(t *testing.T) {
	f := newCarServiceFixture()

	car, err := fleet.NewCar("VIN-001", uuid.New(), "Toyota", "Corolla", 2021)
	require.NoError(t, err)

	f.carRepo.On("FindByUIN", mock.Anything, "VIN-001").Return(car, nil)
	f.maintenanceRepo.On("CountByCarUin", mock.Anything, "VIN-001").Return(int64(3), nil)

	err = f.service.Delete(context.Background(), "VIN-001")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "REFERENTIAL_INTEGRITY", domainErr.Code)
	f.carRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCarService_Update_TransferAndInsurance(t *testing.T) {
	f := newCarServiceFixture()

	car, err := fleet.NewCar("VIN-001", uuid.New(), "Toyota", "Corolla", 2021)
	require.NoError(t, err)
	newOwner, err := partner.NewClient("New Owner", "", "", "")
	require.NoError(t, err)
	policy, err := fleet.NewInsurancePolicy("AXA", "POL-9", time.Now(), time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)

	f.carRepo.On("FindByUIN", mock.Anything, "VIN-001").Return(car, nil)
	f.clientRepo.On("FindByID", mock.Anything, newOwner.ID).Return(newOwner, nil)
	f.insuranceRepo.On("FindByID", mock.Anything, policy.ID).Return(policy, nil)
	f.carRepo.On("SaveWithLock", mock.Anything, car).Return(nil)
	f.entries.On("Append", mock.Anything, mock.Anything).Return(nil)

	response, err := f.service.Update(context.Background(), "VIN-001", UpdateCarRequest{
		ClientID:    &newOwner.ID,
		InsuranceID: &policy.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, newOwner.ID, response.ClientID)
	require.NotNil(t, response.InsuranceID)
	assert.Equal(t, policy.ID, *response.InsuranceID)
}

func TestInsuranceService_Renew(t *testing.T) {
	insuranceRepo := new(MockInsuranceRepository)
	entries := new(MockEntryRepository)
	service := NewInsuranceService(insuranceRepo, auditapp.NewService(entries, nil))

	policy, err := fleet.NewInsurancePolicy("AXA", "POL-9", time.Now(), time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)

	insuranceRepo.On("FindByID", mock.Anything, policy.ID).Return(policy, nil)
	insuranceRepo.On("Save", mock.Anything, policy).Return(nil)
	entries.On("Append", mock.Anything, mock.Anything).Return(nil)

	extended := time.Now().AddDate(2, 0, 0)
	response, err := service.Renew(context.Background(), policy.ID, RenewInsuranceRequest{ExpiryDate: extended})
	require.NoError(t, err)
	assert.Equal(t, extended, response.ExpiryDate)

	// shrinking the policy is rejected
	_, err = service.Renew(context.Background(), policy.ID, RenewInsuranceRequest{ExpiryDate: time.Now()})
	assert.Error(t, err)
}
