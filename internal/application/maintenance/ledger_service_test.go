package maintenance

import (
	"context"
	"testing"
	"time"

	financeapp "github.com/garage/backend/internal/application/finance"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ledgerFixture struct {
	requests *MockRequestRepository
	products *MockProductRepository
	services *MockShopServiceRepository
	cars     *MockCarRepository
	entries  *MockEntryRepository
	recorder *MockFinanceRecorder
	service  *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		requests: new(MockRequestRepository),
		products: new(MockProductRepository),
		services: new(MockShopServiceRepository),
		cars:     new(MockCarRepository),
		entries:  new(MockEntryRepository),
		recorder: new(MockFinanceRecorder),
	}
	scope := NewNoOpTransactionScope(f.requests, f.products, f.entries)
	f.service = NewLedgerService(scope, f.requests, f.cars, f.services, f.recorder, zap.NewNop())
	return f
}

func (f *ledgerFixture) expectAudit() {
	f.entries.On("Append", mock.Anything, mock.Anything).Return(nil)
}

func newTestCar(t *testing.T) *fleet.Car {
	t.Helper()
	car, err := fleet.NewCar("VIN-001", uuid.New(), "Toyota", "Corolla", 2020)
	require.NoError(t, err)
	return car
}

func newOffering(t *testing.T, name string, fee int64) *catalog.ShopService {
	t.Helper()
	offering, err := catalog.NewShopService(name, "", valueobject.NewMoneyUSD(decimal.NewFromInt(fee)))
	require.NoError(t, err)
	return offering
}

func newStockedProduct(t *testing.T, name string, salePrice int64, warehouse, shop int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), name, "",
		valueobject.NewMoneyUSDFromFloat(10), valueobject.NewMoneyUSD(decimal.NewFromInt(salePrice)))
	require.NoError(t, err)
	if warehouse > 0 {
		require.NoError(t, product.Restock(catalog.StockLocationWarehouse, decimal.NewFromInt(warehouse), valueobject.NewMoneyUSDFromFloat(10)))
	}
	if shop > 0 {
		require.NoError(t, product.Restock(catalog.StockLocationShop, decimal.NewFromInt(shop), valueobject.NewMoneyUSDFromFloat(10)))
	}
	product.ClearDomainEvents()
	return product
}

func TestLedgerService_Create_ComputesTotalAndDeductsStock(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	car := newTestCar(t)
	offering := newOffering(t, "Engine Diagnostics", 50)
	product := newStockedProduct(t, "Oil Filter", 20, 10, 0)

	f.cars.On("FindByUIN", mock.Anything, "VIN-001").Return(car, nil)
	f.services.On("FindByIDs", mock.Anything, []uuid.UUID{offering.ID}).Return([]catalog.ShopService{*offering}, nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("SaveWithLock", mock.Anything, product).Return(nil)
	f.requests.On("Save", mock.Anything, mock.Anything).Return(nil)

	response, err := f.service.Create(context.Background(), CreateRequestRequest{
		CarUin: "vin-001",
		Services: []ServiceLineInput{
			{ServiceID: offering.ID, Quantity: decimal.NewFromInt(2)},
		},
		Products: []ProductLineInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(3), StockSource: "warehouse"},
		},
		AdditionalFee:         decimal.NewFromInt(5),
		Discount:              decimal.NewFromInt(10),
		DiscountJustification: "loyal customer",
	})

	require.NoError(t, err)
	// 2*50 + 3*20 + 5 - 10
	assert.True(t, response.TotalCost.Equal(decimal.NewFromInt(155)), "total was %s", response.TotalCost)
	assert.True(t, response.RemainingBalance.Equal(decimal.NewFromInt(155)))
	assert.Equal(t, maintenance.PaymentPending, response.PaymentStatus)
	assert.Equal(t, maintenance.StatusPending, response.Status)
	assert.Equal(t, car.ClientID, response.ClientID)
	assert.True(t, product.WarehouseStock.Equal(decimal.NewFromInt(7)))
	f.entries.AssertNumberOfCalls(t, "Append", 1)
}

func TestLedgerService_Create_InsufficientStockAbortsWholeRequest(t *testing.T) {
	f := newLedgerFixture()
	car := newTestCar(t)
	offering := newOffering(t, "Engine Diagnostics", 50)
	product := newStockedProduct(t, "Oil Filter", 20, 2, 0)

	f.cars.On("FindByUIN", mock.Anything, "VIN-001").Return(car, nil)
	f.services.On("FindByIDs", mock.Anything, []uuid.UUID{offering.ID}).Return([]catalog.ShopService{*offering}, nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := f.service.Create(context.Background(), CreateRequestRequest{
		CarUin:   "VIN-001",
		Services: []ServiceLineInput{{ServiceID: offering.ID, Quantity: decimal.NewFromInt(1)}},
		Products: []ProductLineInput{{ProductID: product.ID, Quantity: decimal.NewFromInt(5), StockSource: "warehouse"}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Oil Filter")
	assert.Contains(t, domainErr.Message, "warehouse")
	f.requests.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestLedgerService_Create_UnknownCarRejected(t *testing.T) {
	f := newLedgerFixture()
	f.cars.On("FindByUIN", mock.Anything, "VIN-404").Return(nil, shared.ErrNotFound)

	_, err := f.service.Create(context.Background(), CreateRequestRequest{
		CarUin:   "VIN-404",
		Services: []ServiceLineInput{{ServiceID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestLedgerService_Create_UnknownServiceRejected(t *testing.T) {
	f := newLedgerFixture()
	f.cars.On("FindByUIN", mock.Anything, "VIN-001").Return(newTestCar(t), nil)
	missing := uuid.New()
	f.services.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).Return([]catalog.ShopService{}, nil)

	_, err := f.service.Create(context.Background(), CreateRequestRequest{
		CarUin:   "VIN-001",
		Services: []ServiceLineInput{{ServiceID: missing, Quantity: decimal.NewFromInt(1)}},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Contains(t, domainErr.Message, missing.String())
}

func newOpenRequest(t *testing.T, f *ledgerFixture, total int64) *maintenance.MaintenanceRequest {
	t.Helper()
	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusInProgress)
	require.NoError(t, err)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1),
		valueobject.NewMoneyUSD(decimal.NewFromInt(total))))
	request.ClearDomainEvents()
	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	return request
}

func TestLedgerService_MakePayment_PartialThenPaid(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	request := newOpenRequest(t, f, 155)

	f.requests.On("SaveWithLock", mock.Anything, request).Return(nil)
	f.recorder.On("RecordDerived", mock.Anything,
		finance.CategoryMaintenancePayments, finance.KindIncome,
		mock.Anything, mock.Anything, finance.ReferenceMaintenance, request.ID.String(), mock.Anything).
		Return(&financeapp.RecordResponse{}, nil)

	response, err := f.service.MakePayment(context.Background(), request.ID, PaymentRequest{Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, maintenance.PaymentPartial, response.PaymentStatus)
	assert.True(t, response.RemainingBalance.Equal(decimal.NewFromInt(55)))

	response, err = f.service.MakePayment(context.Background(), request.ID, PaymentRequest{Amount: decimal.NewFromInt(55)})
	require.NoError(t, err)
	assert.Equal(t, maintenance.PaymentPaid, response.PaymentStatus)
	assert.True(t, response.RemainingBalance.IsZero())
	f.recorder.AssertNumberOfCalls(t, "RecordDerived", 2)
}

func TestLedgerService_MakePayment_RejectsNonPositive(t *testing.T) {
	f := newLedgerFixture()
	request := newOpenRequest(t, f, 100)

	_, err := f.service.MakePayment(context.Background(), request.ID, PaymentRequest{Amount: decimal.Zero})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	f.requests.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	f.recorder.AssertNotCalled(t, "RecordDerived", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerService_MakePayment_FinanceFailureDoesNotFail(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	request := newOpenRequest(t, f, 100)

	f.requests.On("SaveWithLock", mock.Anything, request).Return(nil)
	f.recorder.On("RecordDerived", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	response, err := f.service.MakePayment(context.Background(), request.ID, PaymentRequest{Amount: decimal.NewFromInt(40)})

	require.NoError(t, err)
	assert.True(t, response.PaidAmount.Equal(decimal.NewFromInt(40)))
}

func TestLedgerService_TransitionStatus_RejectsIllegalEdge(t *testing.T) {
	f := newLedgerFixture()
	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusPending)
	require.NoError(t, err)
	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err = f.service.TransitionStatus(context.Background(), request.ID, StatusRequest{Status: "completed"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	f.requests.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestLedgerService_TransitionStatus_CompletionSetsEndDate(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	request := newOpenRequest(t, f, 100)
	f.requests.On("SaveWithLock", mock.Anything, request).Return(nil)

	response, err := f.service.TransitionStatus(context.Background(), request.ID, StatusRequest{Status: "completed"})

	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusCompleted, response.Status)
	require.NotNil(t, response.EndDate)
}

func TestLedgerService_Update_ReplaceProductLinesConservesStock(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	oldProduct := newStockedProduct(t, "Oil Filter", 20, 7, 0)
	newProduct := newStockedProduct(t, "Air Filter", 15, 0, 4)

	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusInProgress)
	require.NoError(t, err)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(50)))
	require.NoError(t, request.AddProductLine(oldProduct.ID, oldProduct.Name, decimal.NewFromInt(3),
		oldProduct.GetSalePriceMoney(), maintenance.SourceWarehouse))
	request.ClearDomainEvents()

	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.requests.On("SaveWithLock", mock.Anything, request).Return(nil)
	f.products.On("FindByID", mock.Anything, oldProduct.ID).Return(oldProduct, nil)
	f.products.On("FindByID", mock.Anything, newProduct.ID).Return(newProduct, nil)
	f.products.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	newLines := []ProductLineInput{{ProductID: newProduct.ID, Quantity: decimal.NewFromInt(2), StockSource: "shop"}}
	response, err := f.service.Update(context.Background(), request.ID, UpdateRequestRequest{Products: &newLines})

	require.NoError(t, err)
	// old line restored in full, new line deducted from its own location
	assert.True(t, oldProduct.WarehouseStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, newProduct.ShopStock.Equal(decimal.NewFromInt(2)))
	// 1*50 + 2*15
	assert.True(t, response.TotalCost.Equal(decimal.NewFromInt(80)))
}

func TestLedgerService_Update_ShortfallOnNewLinesAborts(t *testing.T) {
	f := newLedgerFixture()
	product := newStockedProduct(t, "Air Filter", 15, 0, 1)

	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusInProgress)
	require.NoError(t, err)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(50)))
	request.ClearDomainEvents()

	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	newLines := []ProductLineInput{{ProductID: product.ID, Quantity: decimal.NewFromInt(5), StockSource: "shop"}}
	_, err = f.service.Update(context.Background(), request.ID, UpdateRequestRequest{Products: &newLines})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	f.requests.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	f.products.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestLedgerService_Update_ReopensCancelledRequest(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusCancelled)
	require.NoError(t, err)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(50)))
	request.ClearDomainEvents()

	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.requests.On("SaveWithLock", mock.Anything, request).Return(nil)

	status := "pending"
	response, err := f.service.Update(context.Background(), request.ID, UpdateRequestRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusPending, response.Status)
}

func TestLedgerService_Delete_RestoresStock(t *testing.T) {
	f := newLedgerFixture()
	f.expectAudit()
	product := newStockedProduct(t, "Oil Filter", 20, 7, 0)

	request, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Now(), maintenance.StatusPending)
	require.NoError(t, err)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(50)))
	require.NoError(t, request.AddProductLine(product.ID, product.Name, decimal.NewFromInt(3),
		product.GetSalePriceMoney(), maintenance.SourceWarehouse))
	request.ClearDomainEvents()

	f.requests.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	f.requests.On("Delete", mock.Anything, request.ID).Return(nil)
	f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.products.On("SaveWithLock", mock.Anything, product).Return(nil)

	require.NoError(t, f.service.Delete(context.Background(), request.ID))

	assert.True(t, product.WarehouseStock.Equal(decimal.NewFromInt(10)))
	f.entries.AssertNumberOfCalls(t, "Append", 1)
}

func TestLedgerService_Delete_SecondDeleteNotFound(t *testing.T) {
	f := newLedgerFixture()
	id := uuid.New()
	f.requests.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	err := f.service.Delete(context.Background(), id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.requests.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLedgerService_GetByDateRange_BucketsByMonth(t *testing.T) {
	f := newLedgerFixture()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	first, err := maintenance.NewMaintenanceRequest("VIN-001", uuid.New(), time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), maintenance.StatusPending)
	require.NoError(t, err)
	require.NoError(t, first.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(100)))
	second, err := maintenance.NewMaintenanceRequest("VIN-002", uuid.New(), time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), maintenance.StatusPending)
	require.NoError(t, err)
	require.NoError(t, second.AddServiceLine(uuid.New(), "Wash", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(30)))
	third, err := maintenance.NewMaintenanceRequest("VIN-003", uuid.New(), time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), maintenance.StatusPending)
	require.NoError(t, err)
	require.NoError(t, third.AddServiceLine(uuid.New(), "Repair", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(70)))

	f.requests.On("FindByDateRange", mock.Anything, start, end).
		Return([]maintenance.MaintenanceRequest{*first, *second, *third}, nil)

	report, err := f.service.GetByDateRange(context.Background(), RangeFilter{Start: start, End: end})

	require.NoError(t, err)
	require.Len(t, report.Requests, 3)
	require.Len(t, report.Buckets, 2)
	assert.Equal(t, "2026-06", report.Buckets[0].Period)
	assert.Equal(t, 2, report.Buckets[0].Count)
	assert.True(t, report.Buckets[0].TotalCost.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, "2026-08", report.Buckets[1].Period)
	assert.True(t, report.Buckets[1].TotalCost.Equal(decimal.NewFromInt(70)))
}
