package finance

import (
	"time"

	"github.com/garage/backend/internal/domain/shared"
)

// CategoryKind separates money coming in from money going out
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

// IsValid checks if the kind is a valid CategoryKind
func (k CategoryKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// String returns the string representation of CategoryKind
func (k CategoryKind) String() string {
	return string(k)
}

// Well-known categories auto-created by the derivation flows.
const (
	CategoryMaintenancePayments = "Maintenance Payments"
	CategoryInventoryPurchases  = "Inventory Purchases"
	CategorySalaries            = "Salaries"
)

// FinanceCategory groups finance records by purpose and direction
type FinanceCategory struct {
	shared.BaseEntity
	Name string       `gorm:"type:varchar(100);uniqueIndex;not null"`
	Kind CategoryKind `gorm:"type:varchar(20);not null"`
}

// TableName returns the database table name
func (FinanceCategory) TableName() string {
	return "finance_categories"
}

// NewFinanceCategory creates a finance category
func NewFinanceCategory(name string, kind CategoryKind) (*FinanceCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category kind must be income or expense")
	}

	return &FinanceCategory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Kind:       kind,
	}, nil
}

// Rename changes the category name
func (c *FinanceCategory) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}
