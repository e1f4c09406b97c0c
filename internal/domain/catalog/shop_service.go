package catalog

import (
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ShopService represents a billable labor item offered by the garage,
// priced at a standard fee per unit.
type ShopService struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	StandardFee decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShopService) TableName() string {
	return "shop_services"
}

// NewShopService creates a new service offering
func NewShopService(name, description string, standardFee valueobject.Money) (*ShopService, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if standardFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Standard fee cannot be negative")
	}

	return &ShopService{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
		StandardFee:       standardFee.Amount(),
	}, nil
}

// UpdateFee changes the standard fee
func (s *ShopService) UpdateFee(fee valueobject.Money) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Standard fee cannot be negative")
	}
	s.StandardFee = fee.Amount()
	s.UpdatedAt = time.Now()
	return nil
}

// Rename changes the service name and description
func (s *ShopService) Rename(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	s.Name = name
	s.Description = strings.TrimSpace(description)
	s.UpdatedAt = time.Now()
	return nil
}

// GetStandardFeeMoney returns the standard fee as Money
func (s *ShopService) GetStandardFeeMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.StandardFee)
}
