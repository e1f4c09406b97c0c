package catalog

import (
	"time"

	"github.com/garage/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateShopServiceRequest represents a request to create a service offering
type CreateShopServiceRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description"`
	StandardFee decimal.Decimal `json:"standard_fee" binding:"required"`
}

// UpdateShopServiceRequest represents a partial update to a service offering
type UpdateShopServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	StandardFee *decimal.Decimal `json:"standard_fee"`
}

// ShopServiceResponse represents a service offering in API responses
type ShopServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StandardFee decimal.Decimal `json:"standard_fee"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToShopServiceResponse maps a service offering to its API representation
func ToShopServiceResponse(offering *catalog.ShopService) ShopServiceResponse {
	return ShopServiceResponse{
		ID:          offering.ID,
		Name:        offering.Name,
		Description: offering.Description,
		StandardFee: offering.StandardFee,
		CreatedAt:   offering.CreatedAt,
		UpdatedAt:   offering.UpdatedAt,
		Version:     offering.Version,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SupplierID        uuid.UUID       `json:"supplier_id" binding:"required"`
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	SKU               string          `json:"sku" binding:"max=50"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SalePrice         decimal.Decimal `json:"sale_price" binding:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a partial update to a product
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	SKU               *string          `json:"sku" binding:"omitempty,max=50"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	SalePrice         *decimal.Decimal `json:"sale_price"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
}

// RestockRequest adds stock to one location and records the purchase cost
type RestockRequest struct {
	Location string          `json:"location" binding:"required,oneof=warehouse shop"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	UnitCost decimal.Decimal `json:"unit_cost" binding:"required,gt=0"`
}

// TransferRequest moves stock between the two locations
type TransferRequest struct {
	From     string          `json:"from" binding:"required,oneof=warehouse shop"`
	To       string          `json:"to" binding:"required,oneof=warehouse shop"`
	Quantity decimal.Decimal `json:"quantity" binding:"required,gt=0"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	SupplierID        uuid.UUID       `json:"supplier_id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	WarehouseStock    decimal.Decimal `json:"warehouse_stock"`
	ShopStock         decimal.Decimal `json:"shop_stock"`
	TotalStock        decimal.Decimal `json:"total_stock"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	BelowThreshold    bool            `json:"below_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	Version           int             `json:"version"`
}

// ToProductResponse maps a product aggregate to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                product.ID,
		SupplierID:        product.SupplierID,
		Name:              product.Name,
		SKU:               product.SKU,
		PurchasePrice:     product.PurchasePrice,
		SalePrice:         product.SalePrice,
		WarehouseStock:    product.WarehouseStock,
		ShopStock:         product.ShopStock,
		TotalStock:        product.TotalStock(),
		LowStockThreshold: product.LowStockThreshold,
		BelowThreshold:    product.IsBelowThreshold(),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
		Version:           product.Version,
	}
}

// ListFilter represents list query options for catalog entities
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
