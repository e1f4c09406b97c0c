package maintenance

import (
	"testing"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) *MaintenanceRequest {
	t.Helper()
	request, err := NewMaintenanceRequest("VIN-12345", uuid.New(), time.Now(), StatusPending)
	require.NoError(t, err)
	return request
}

func TestNewMaintenanceRequest_Validation(t *testing.T) {
	_, err := NewMaintenanceRequest("", uuid.New(), time.Now(), StatusPending)
	assert.Error(t, err)

	_, err = NewMaintenanceRequest("VIN-12345", uuid.Nil, time.Now(), StatusPending)
	assert.Error(t, err)

	_, err = NewMaintenanceRequest("VIN-12345", uuid.New(), time.Time{}, StatusPending)
	assert.Error(t, err)

	_, err = NewMaintenanceRequest("VIN-12345", uuid.New(), time.Now(), RequestStatus("done"))
	assert.Error(t, err)

	// requests may be created directly in any valid status
	request, err := NewMaintenanceRequest("VIN-12345", uuid.New(), time.Now(), StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, request.Status)
}

func TestMaintenanceRequest_CostComputation(t *testing.T) {
	request := newTestRequest(t)

	require.NoError(t, request.AddServiceLine(uuid.New(), "Oil Change", decimal.NewFromInt(2), valueobject.NewMoneyUSDFromFloat(50)))
	require.NoError(t, request.AddProductLine(uuid.New(), "Oil Filter", decimal.NewFromInt(3), valueobject.NewMoneyUSDFromFloat(20), SourceShop))
	require.NoError(t, request.SetAdditionalFee(valueobject.NewMoneyUSDFromFloat(5)))
	require.NoError(t, request.SetDiscount(valueobject.NewMoneyUSDFromFloat(10), "loyal customer"))

	// 100 + 60 + 5 - 10
	assert.True(t, request.TotalCost.Equal(decimal.NewFromInt(155)), "got %s", request.TotalCost)
	assert.True(t, request.RemainingBalance.Equal(decimal.NewFromInt(155)))
	assert.Equal(t, PaymentPending, request.PaymentStatus)
}

func TestMaintenanceRequest_DiscountJustificationLength(t *testing.T) {
	request := newTestRequest(t)

	err := request.SetDiscount(valueobject.NewMoneyUSDFromFloat(5), "this justification is far too long to be accepted")
	require.Error(t, err)

	assert.NoError(t, request.SetDiscount(valueobject.NewMoneyUSDFromFloat(5), "returning customer"))
}

func TestMaintenanceRequest_PaymentLifecycle(t *testing.T) {
	request := newTestRequest(t)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Brake Job", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(155)))

	err := request.MakePayment(valueobject.ZeroUSD())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)

	require.NoError(t, request.MakePayment(valueobject.NewMoneyUSDFromFloat(100)))
	assert.True(t, request.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, request.RemainingBalance.Equal(decimal.NewFromInt(55)))
	assert.Equal(t, PaymentPartial, request.PaymentStatus)

	require.NoError(t, request.MakePayment(valueobject.NewMoneyUSDFromFloat(55)))
	assert.True(t, request.RemainingBalance.IsZero())
	assert.Equal(t, PaymentPaid, request.PaymentStatus)
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name string
		paid int64
		cost int64
		want PaymentStatus
	}{
		{"nothing paid", 0, 100, PaymentPending},
		{"partially paid", 40, 100, PaymentPartial},
		{"fully paid", 100, 100, PaymentPaid},
		{"overpaid", 120, 100, PaymentPaid},
		{"zero cost", 0, 0, PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePaymentStatus(decimal.NewFromInt(tt.paid), decimal.NewFromInt(tt.cost))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{StatusPending, StatusPending, true},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusInProgress, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusCancelled, true},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestMaintenanceRequest_TransitionTo(t *testing.T) {
	request := newTestRequest(t)

	err := request.TransitionTo(StatusCompleted)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	require.NoError(t, request.TransitionTo(StatusInProgress))
	require.NoError(t, request.TransitionTo(StatusCompleted))
	assert.NotNil(t, request.EndDate, "completing sets the end date")

	assert.Error(t, request.TransitionTo(StatusInProgress))

	// cancelled requests can be reopened
	reopened := newTestRequest(t)
	require.NoError(t, reopened.TransitionTo(StatusCancelled))
	require.NoError(t, reopened.TransitionTo(StatusPending))
}

func TestMaintenanceRequest_ReplaceLines(t *testing.T) {
	request := newTestRequest(t)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Oil Change", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(50)))
	require.NoError(t, request.AddProductLine(uuid.New(), "Oil Filter", decimal.NewFromInt(2), valueobject.NewMoneyUSDFromFloat(20), SourceWarehouse))
	assert.True(t, request.TotalCost.Equal(decimal.NewFromInt(90)))

	newService, err := NewServiceLine(request.ID, uuid.New(), "Brake Job", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(120))
	require.NoError(t, err)
	require.NoError(t, request.ReplaceServiceLines([]ServiceLine{*newService}))
	assert.True(t, request.TotalCost.Equal(decimal.NewFromInt(160)))

	request.ReplaceProductLines(nil)
	assert.True(t, request.TotalCost.Equal(decimal.NewFromInt(120)))

	assert.Error(t, request.ReplaceServiceLines(nil))
}

func TestMaintenanceRequest_DiscountExceedingTotalRejected(t *testing.T) {
	request := newTestRequest(t)
	require.NoError(t, request.AddServiceLine(uuid.New(), "Inspection", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(10)))
	require.NoError(t, request.SetDiscount(valueobject.NewMoneyUSDFromFloat(50), ""))

	assert.True(t, request.TotalCost.Equal(decimal.NewFromInt(-40)))

	var domainErr *shared.DomainError
	require.ErrorAs(t, request.Validate(), &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)

	require.NoError(t, request.SetDiscount(valueobject.NewMoneyUSDFromFloat(10), ""))
	assert.NoError(t, request.Validate())
	assert.True(t, request.TotalCost.IsZero())
}

func TestMaintenanceRequest_EndDate(t *testing.T) {
	request := newTestRequest(t)

	before := request.StartDate.Add(-time.Hour)
	assert.Error(t, request.SetEndDate(&before))

	after := request.StartDate.Add(time.Hour)
	require.NoError(t, request.SetEndDate(&after))
	assert.Equal(t, after, *request.EndDate)
}
