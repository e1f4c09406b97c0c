package catalog

import (
	"github.com/garage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product event types
const (
	EventTypeStockDeducted    = "catalog.product.stock_deducted"
	EventTypeStockRestored    = "catalog.product.stock_restored"
	EventTypeProductRestocked = "catalog.product.restocked"
	EventTypeLowStock         = "catalog.product.low_stock"
)

// StockDeductedEvent is emitted when stock is deducted from a location
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ProductName string          `json:"product_name"`
	Location    StockLocation   `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(product *Product, location StockLocation, quantity decimal.Decimal) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, "Product", product.ID),
		ProductName:     product.Name,
		Location:        location,
		Quantity:        quantity,
		Remaining:       product.StockAt(location),
	}
}

// StockRestoredEvent is emitted when previously deducted stock is returned
type StockRestoredEvent struct {
	shared.BaseDomainEvent
	ProductName string          `json:"product_name"`
	Location    StockLocation   `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NewStockRestoredEvent creates a new StockRestoredEvent
func NewStockRestoredEvent(product *Product, location StockLocation, quantity decimal.Decimal) *StockRestoredEvent {
	return &StockRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRestored, "Product", product.ID),
		ProductName:     product.Name,
		Location:        location,
		Quantity:        quantity,
	}
}

// ProductRestockedEvent is emitted when purchased inventory is received
type ProductRestockedEvent struct {
	shared.BaseDomainEvent
	ProductName string          `json:"product_name"`
	Location    StockLocation   `json:"location"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// NewProductRestockedEvent creates a new ProductRestockedEvent
func NewProductRestockedEvent(product *Product, location StockLocation, quantity, unitCost decimal.Decimal) *ProductRestockedEvent {
	return &ProductRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRestocked, "Product", product.ID),
		ProductName:     product.Name,
		Location:        location,
		Quantity:        quantity,
		UnitCost:        unitCost,
	}
}

// LowStockEvent is emitted when total stock crosses below the threshold
type LowStockEvent struct {
	shared.BaseDomainEvent
	ProductName string          `json:"product_name"`
	Total       decimal.Decimal `json:"total"`
	Threshold   decimal.Decimal `json:"threshold"`
}

// NewLowStockEvent creates a new LowStockEvent
func NewLowStockEvent(product *Product) *LowStockEvent {
	return &LowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStock, "Product", product.ID),
		ProductName:     product.Name,
		Total:           product.TotalStock(),
		Threshold:       product.LowStockThreshold,
	}
}
