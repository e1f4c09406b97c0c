package finance

import (
	"testing"
	"time"

	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinanceCategory(t *testing.T) {
	category, err := NewFinanceCategory(CategoryMaintenancePayments, KindIncome)
	require.NoError(t, err)
	assert.Equal(t, KindIncome, category.Kind)

	_, err = NewFinanceCategory("", KindIncome)
	assert.Error(t, err)

	_, err = NewFinanceCategory("Misc", CategoryKind("transfer"))
	assert.Error(t, err)
}

func TestNewFinanceRecord(t *testing.T) {
	record, err := NewFinanceRecord(uuid.New(), valueobject.NewMoneyUSDFromFloat(100), "Payment for work order", time.Now())
	require.NoError(t, err)
	assert.False(t, record.Date.IsZero())

	_, err = NewFinanceRecord(uuid.Nil, valueobject.NewMoneyUSDFromFloat(100), "", time.Now())
	assert.Error(t, err)

	_, err = NewFinanceRecord(uuid.New(), valueobject.ZeroUSD(), "", time.Now())
	assert.Error(t, err)

	// zero date defaults to now
	record, err = NewFinanceRecord(uuid.New(), valueobject.NewMoneyUSDFromFloat(1), "", time.Time{})
	require.NoError(t, err)
	assert.False(t, record.Date.IsZero())
}

func TestFinanceRecord_LinkReference(t *testing.T) {
	record, err := NewFinanceRecord(uuid.New(), valueobject.NewMoneyUSDFromFloat(100), "", time.Now())
	require.NoError(t, err)

	requestID := uuid.New().String()
	require.NoError(t, record.LinkReference(ReferenceMaintenance, requestID))
	assert.Equal(t, ReferenceMaintenance, *record.ReferenceType)
	assert.Equal(t, requestID, *record.ReferenceID)

	assert.Error(t, record.LinkReference(ReferenceType("invoice"), requestID))
	assert.Error(t, record.LinkReference(ReferenceSalary, ""))
}

func TestFinanceRecord_Update(t *testing.T) {
	record, err := NewFinanceRecord(uuid.New(), valueobject.NewMoneyUSDFromFloat(100), "old", time.Now())
	require.NoError(t, err)

	amount := valueobject.NewMoneyUSDFromFloat(250)
	description := "corrected"
	require.NoError(t, record.Update(&amount, &description, nil))
	assert.True(t, record.GetAmountMoney().Equals(amount))
	assert.Equal(t, "corrected", record.Description)

	negative := valueobject.NewMoneyUSDFromFloat(-5)
	assert.Error(t, record.Update(&negative, nil, nil))
}
