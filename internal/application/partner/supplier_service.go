package partner

import (
	"context"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	auditor      *auditapp.Service
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, productRepo catalog.ProductRepository, auditor *auditapp.Service) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		auditor:      auditor,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Contact, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: supplier.TableName(),
		RecordID:  supplier.ID.String(),
		After:     auditapp.Snapshot(ToSupplierResponse(supplier)),
	}); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditapp.Snapshot(ToSupplierResponse(supplier))

	if err := supplier.Update(req.Name, req.Contact, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: supplier.TableName(),
		RecordID:  supplier.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToSupplierResponse(supplier)),
	}); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. Blocked while products still reference it.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	productCount, err := s.productRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewReferentialIntegrityError("supplier", "products")
	}

	before := auditapp.Snapshot(ToSupplierResponse(supplier))
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: supplier.TableName(),
		RecordID:  supplier.ID.String(),
		Before:    before,
	})
}
