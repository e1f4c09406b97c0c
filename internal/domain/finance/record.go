package finance

import (
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferenceType names the entity a finance record was derived from
type ReferenceType string

const (
	ReferenceMaintenance ReferenceType = "maintenance"
	ReferenceSalary      ReferenceType = "salary"
	ReferenceProduct     ReferenceType = "product"
)

// IsValid checks if the type is a valid ReferenceType
func (t ReferenceType) IsValid() bool {
	switch t {
	case ReferenceMaintenance, ReferenceSalary, ReferenceProduct:
		return true
	}
	return false
}

// FinanceRecord is a single dated money movement under a category.
// Records for payments, restocks and salary payouts are derived by the
// application services, never posted directly.
type FinanceRecord struct {
	shared.BaseEntity
	CategoryID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description   string          `gorm:"type:varchar(500)"`
	Date          time.Time       `gorm:"index;not null"`
	ReferenceType *ReferenceType  `gorm:"type:varchar(20)"`
	ReferenceID   *string         `gorm:"type:varchar(100)"`
}

// TableName returns the database table name
func (FinanceRecord) TableName() string {
	return "finance_records"
}

// NewFinanceRecord creates a finance record
func NewFinanceRecord(categoryID uuid.UUID, amount valueobject.Money, description string, date time.Time) (*FinanceRecord, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &FinanceRecord{
		BaseEntity:  shared.NewBaseEntity(),
		CategoryID:  categoryID,
		Amount:      amount.Amount(),
		Description: description,
		Date:        date,
	}, nil
}

// LinkReference attaches the source entity the record was derived from
func (r *FinanceRecord) LinkReference(refType ReferenceType, refID string) error {
	if !refType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Invalid reference type")
	}
	if refID == "" {
		return shared.NewDomainError("INVALID_INPUT", "Reference ID cannot be empty")
	}
	r.ReferenceType = &refType
	r.ReferenceID = &refID
	r.UpdatedAt = time.Now()
	return nil
}

// Update changes the amount, description and date of a manual record
func (r *FinanceRecord) Update(amount *valueobject.Money, description *string, date *time.Time) error {
	if amount != nil {
		if !amount.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
		}
		r.Amount = amount.Amount()
	}
	if description != nil {
		r.Description = *description
	}
	if date != nil && !date.IsZero() {
		r.Date = *date
	}
	r.UpdatedAt = time.Now()
	return nil
}

// GetAmountMoney returns the amount as Money
func (r *FinanceRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.Amount)
}
