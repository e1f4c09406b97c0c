package catalog

import (
	"context"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShopServiceRepository defines persistence operations for service offerings
type ShopServiceRepository interface {
	shared.Repository[ShopService]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]ShopService, error)
}

// ProductRepository defines persistence operations for the Product aggregate
type ProductRepository interface {
	shared.Repository[Product]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Product, error)
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
	FindBelowThreshold(ctx context.Context) ([]Product, error)
	SaveWithLock(ctx context.Context, product *Product) error
}
