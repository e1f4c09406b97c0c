package hr

import (
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Employee represents a garage staff member
type Employee struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(255);not null"`
	Position   string          `gorm:"type:varchar(100)"`
	Contact    string          `gorm:"type:varchar(50)"`
	Email      string          `gorm:"type:varchar(255)"`
	HireDate   time.Time       `gorm:"not null"`
	BaseSalary decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the database table name
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an employee
func NewEmployee(name, position, contact, email string, hireDate time.Time, baseSalary valueobject.Money) (*Employee, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee name cannot exceed 255 characters")
	}
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	if baseSalary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Base salary cannot be negative")
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Position:          position,
		Contact:           contact,
		Email:             email,
		HireDate:          hireDate,
		BaseSalary:        baseSalary.Amount(),
	}, nil
}

// Update merges a partial field set into the employee
func (e *Employee) Update(name, position, contact, email *string, baseSalary *valueobject.Money) error {
	if name != nil {
		if *name == "" {
			return shared.NewDomainError("INVALID_INPUT", "Employee name cannot be empty")
		}
		e.Name = *name
	}
	if position != nil {
		e.Position = *position
	}
	if contact != nil {
		e.Contact = *contact
	}
	if email != nil {
		e.Email = *email
	}
	if baseSalary != nil {
		if baseSalary.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Base salary cannot be negative")
		}
		e.BaseSalary = baseSalary.Amount()
	}
	e.UpdatedAt = time.Now()
	return nil
}

// GetBaseSalaryMoney returns the base salary as Money
func (e *Employee) GetBaseSalaryMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(e.BaseSalary)
}
