package catalog

import (
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLocation identifies one of the two independent stock counters kept
// per product. Deductions, restorations and transfers always name exactly
// one location.
type StockLocation string

const (
	StockLocationWarehouse StockLocation = "warehouse"
	StockLocationShop      StockLocation = "shop"
)

// IsValid checks if the location is a known StockLocation
func (l StockLocation) IsValid() bool {
	return l == StockLocationWarehouse || l == StockLocationShop
}

// String returns the string representation of StockLocation
func (l StockLocation) String() string {
	return string(l)
}

// Product represents a stocked part. Stock is partitioned into a warehouse
// counter and a shop-floor counter; neither may ever go negative.
type Product struct {
	shared.BaseAggregateRoot
	SupplierID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(200);not null"`
	SKU               string          `gorm:"type:varchar(50);uniqueIndex"`
	PurchasePrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WarehouseStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShopStock         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product for a supplier
func NewProduct(supplierID uuid.UUID, name, sku string, purchasePrice, salePrice valueobject.Money) (*Product, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		Name:              name,
		SKU:               strings.TrimSpace(sku),
		PurchasePrice:     purchasePrice.Amount(),
		SalePrice:         salePrice.Amount(),
		WarehouseStock:    decimal.Zero,
		ShopStock:         decimal.Zero,
		LowStockThreshold: decimal.Zero,
	}, nil
}

// StockAt returns the stock level at the given location
func (p *Product) StockAt(location StockLocation) decimal.Decimal {
	if location == StockLocationWarehouse {
		return p.WarehouseStock
	}
	return p.ShopStock
}

// TotalStock returns warehouse plus shop stock
func (p *Product) TotalStock() decimal.Decimal {
	return p.WarehouseStock.Add(p.ShopStock)
}

// CanFulfill returns true if the location holds at least the requested quantity
func (p *Product) CanFulfill(location StockLocation, quantity decimal.Decimal) bool {
	return p.StockAt(location).GreaterThanOrEqual(quantity)
}

// Deduct removes quantity from the named location. The check and the write
// happen on the in-memory aggregate; the repository's versioned save makes
// the read-modify-write safe against concurrent mutations.
func (p *Product) Deduct(location StockLocation, quantity decimal.Decimal) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown stock location: "+string(location))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}

	available := p.StockAt(location)
	if available.LessThan(quantity) {
		return shared.NewInsufficientStockError(p.Name, location.String(), quantity.String(), available.String())
	}

	wasAbove := !p.IsBelowThreshold()
	p.setStockAt(location, available.Sub(quantity))
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewStockDeductedEvent(p, location, quantity))
	if wasAbove && p.IsBelowThreshold() {
		p.AddDomainEvent(NewLowStockEvent(p))
	}

	return nil
}

// Restore adds quantity back to the named location. It mirrors Deduct and is
// used when maintenance product lines are replaced or removed.
func (p *Product) Restore(location StockLocation, quantity decimal.Decimal) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown stock location: "+string(location))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restoration quantity must be positive")
	}

	p.setStockAt(location, p.StockAt(location).Add(quantity))
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewStockRestoredEvent(p, location, quantity))

	return nil
}

// Transfer moves quantity between the two stock locations
func (p *Product) Transfer(from, to StockLocation, quantity decimal.Decimal) error {
	if !from.IsValid() || !to.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown stock location")
	}
	if from == to {
		return shared.NewDomainError("INVALID_LOCATION", "Transfer source and destination must differ")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be positive")
	}

	available := p.StockAt(from)
	if available.LessThan(quantity) {
		return shared.NewInsufficientStockError(p.Name, from.String(), quantity.String(), available.String())
	}

	p.setStockAt(from, available.Sub(quantity))
	p.setStockAt(to, p.StockAt(to).Add(quantity))
	p.UpdatedAt = time.Now()

	return nil
}

// Restock receives purchased inventory into a location at the given unit
// cost. The cost basis is recorded at purchase time; usage in maintenance
// requests does not re-recognize it.
func (p *Product) Restock(location StockLocation, quantity decimal.Decimal, unitCost valueobject.Money) error {
	if !location.IsValid() {
		return shared.NewDomainError("INVALID_LOCATION", "Unknown stock location: "+string(location))
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	p.PurchasePrice = unitCost.Amount()
	p.setStockAt(location, p.StockAt(location).Add(quantity))
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductRestockedEvent(p, location, quantity, unitCost.Amount()))

	return nil
}

// Update applies partial changes to the product's descriptive fields
func (p *Product) Update(name, sku *string) error {
	if name != nil {
		if *name == "" {
			return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
		}
		p.Name = *name
	}
	if sku != nil {
		p.SKU = *sku
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetLowStockThreshold sets the level below which a low-stock alert fires
func (p *Product) SetLowStockThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Threshold cannot be negative")
	}
	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePricing changes the purchase and sale prices
func (p *Product) UpdatePricing(purchasePrice, salePrice *valueobject.Money) error {
	if purchasePrice != nil {
		if purchasePrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
		}
		p.PurchasePrice = purchasePrice.Amount()
	}
	if salePrice != nil {
		if salePrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
		}
		p.SalePrice = salePrice.Amount()
	}
	p.UpdatedAt = time.Now()
	return nil
}

// IsBelowThreshold returns true if total stock has fallen below the
// low-stock threshold
func (p *Product) IsBelowThreshold() bool {
	return p.LowStockThreshold.GreaterThan(decimal.Zero) && p.TotalStock().LessThan(p.LowStockThreshold)
}

// GetSalePriceMoney returns the sale price as Money
func (p *Product) GetSalePriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.SalePrice)
}

// GetPurchasePriceMoney returns the purchase price as Money
func (p *Product) GetPurchasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.PurchasePrice)
}

func (p *Product) setStockAt(location StockLocation, value decimal.Decimal) {
	if location == StockLocationWarehouse {
		p.WarehouseStock = value
	} else {
		p.ShopStock = value
	}
}
