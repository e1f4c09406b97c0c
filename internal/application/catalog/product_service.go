package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditapp "github.com/garage/backend/internal/application/audit"
	financeapp "github.com/garage/backend/internal/application/finance"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/finance"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinanceRecorder posts derived finance records for stock purchases
type FinanceRecorder interface {
	RecordDerived(ctx context.Context, categoryName string, kind finance.CategoryKind, amount valueobject.Money, description string, refType finance.ReferenceType, refID string, date time.Time) (*financeapp.RecordResponse, error)
}

// ProductService manages products and their two-location stock
type ProductService struct {
	productRepo     catalog.ProductRepository
	supplierRepo    partner.SupplierRepository
	maintenanceRepo maintenance.MaintenanceRequestRepository
	financeRecorder FinanceRecorder
	auditor         *auditapp.Service
	logger          *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	maintenanceRepo maintenance.MaintenanceRequestRepository,
	financeRecorder FinanceRecorder,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		supplierRepo:    supplierRepo,
		maintenanceRepo: maintenanceRepo,
		financeRecorder: financeRecorder,
		auditor:         auditor,
		logger:          logger,
	}
}

// Create creates a new product under an existing supplier
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Supplier does not exist")
		}
		return nil, err
	}

	if req.SKU != "" {
		existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}

	product, err := catalog.NewProduct(req.SupplierID, req.Name, req.SKU,
		valueobject.NewMoneyUSD(req.PurchasePrice), valueobject.NewMoneyUSD(req.SalePrice))
	if err != nil {
		return nil, err
	}
	if !req.LowStockThreshold.IsZero() {
		if err := product.SetLowStockThreshold(req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: product.TableName(),
		RecordID:  product.ID.String(),
		After:     auditapp.Snapshot(ToProductResponse(product)),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and search
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// ListBySupplier retrieves all products supplied by one supplier
func (s *ProductService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// LowStockReport returns every product whose total stock has fallen below
// its threshold
func (s *ProductService) LowStockReport(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// Update applies partial changes to a product's descriptive fields and prices
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToProductResponse(product))

	if req.SKU != nil && *req.SKU != product.SKU && *req.SKU != "" {
		existing, err := s.productRepo.FindBySKU(ctx, *req.SKU)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}

	if err := product.Update(req.Name, req.SKU); err != nil {
		return nil, err
	}
	if req.PurchasePrice != nil || req.SalePrice != nil {
		var purchase, sale *valueobject.Money
		if req.PurchasePrice != nil {
			m := valueobject.NewMoneyUSD(*req.PurchasePrice)
			purchase = &m
		}
		if req.SalePrice != nil {
			m := valueobject.NewMoneyUSD(*req.SalePrice)
			sale = &m
		}
		if err := product.UpdatePricing(purchase, sale); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: product.TableName(),
		RecordID:  product.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToProductResponse(product)),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Restock adds stock at one location and posts the purchase as a derived
// expense record. A failed finance posting is logged, not propagated: the
// stock movement has already been committed.
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, req RestockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToProductResponse(product))
	location := catalog.StockLocation(req.Location)
	unitCost := valueobject.NewMoneyUSD(req.UnitCost)

	if err := product.Restock(location, req.Quantity, unitCost); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.logLowStock(product)

	totalCost := valueobject.NewMoneyUSD(req.Quantity.Mul(unitCost.Amount()))
	description := fmt.Sprintf("Restock %s x%s at %s", product.Name, req.Quantity.String(), location)
	if _, err := s.financeRecorder.RecordDerived(ctx,
		finance.CategoryInventoryPurchases, finance.KindExpense,
		totalCost, description, finance.ReferenceProduct, product.ID.String(), time.Now()); err != nil {
		s.logger.Error("failed to record restock expense",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: product.TableName(),
		RecordID:  product.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToProductResponse(product)),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Transfer moves stock between the warehouse and the shop
func (s *ProductService) Transfer(ctx context.Context, id uuid.UUID, req TransferRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToProductResponse(product))

	if err := product.Transfer(catalog.StockLocation(req.From), catalog.StockLocation(req.To), req.Quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.logLowStock(product)

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: product.TableName(),
		RecordID:  product.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToProductResponse(product)),
	}); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product unless maintenance requests reference it
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.maintenanceRepo.CountReferencingProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return shared.NewReferentialIntegrityError("product", "maintenance requests")
	}

	before := auditapp.Snapshot(ToProductResponse(product))
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: product.TableName(),
		RecordID:  product.ID.String(),
		Before:    before,
	})
}

func (s *ProductService) logLowStock(product *catalog.Product) {
	for _, event := range product.GetDomainEvents() {
		if event.EventType() == catalog.EventTypeLowStock {
			s.logger.Warn("product stock below threshold",
				zap.String("product_id", product.ID.String()),
				zap.String("product_name", product.Name),
				zap.String("total_stock", product.TotalStock().String()),
				zap.String("threshold", product.LowStockThreshold.String()))
		}
	}
	product.ClearDomainEvents()
}
