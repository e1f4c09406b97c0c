package hr

import (
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStatus tracks whether a payout record has been paid out
type SalaryStatus string

const (
	SalaryUnpaid SalaryStatus = "unpaid"
	SalaryPaid   SalaryStatus = "paid"
)

// Salary is a single payout record for an employee. Paying it out emits an
// expense finance record; that derivation is handled by the application
// service.
type Salary struct {
	shared.BaseEntity
	EmployeeID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Period     string          `gorm:"type:varchar(20);not null"`
	Note       string          `gorm:"type:varchar(500)"`
	Status     SalaryStatus    `gorm:"type:varchar(20);not null;default:'unpaid'"`
	PaidAt     *time.Time
}

// TableName returns the database table name
func (Salary) TableName() string {
	return "salaries"
}

// NewSalary creates an unpaid salary record for a period like "2026-08"
func NewSalary(employeeID uuid.UUID, amount valueobject.Money, period, note string) (*Salary, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Salary amount must be positive")
	}
	if period == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Salary period cannot be empty")
	}

	return &Salary{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		Amount:     amount.Amount(),
		Period:     period,
		Note:       note,
		Status:     SalaryUnpaid,
	}, nil
}

// Pay marks the salary as paid out
func (s *Salary) Pay() error {
	if s.Status == SalaryPaid {
		return shared.NewDomainError("INVALID_STATE", "Salary has already been paid")
	}
	now := time.Now()
	s.Status = SalaryPaid
	s.PaidAt = &now
	s.UpdatedAt = now
	return nil
}

// GetAmountMoney returns the amount as Money
func (s *Salary) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.Amount)
}
