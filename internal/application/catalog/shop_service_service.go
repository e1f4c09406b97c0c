package catalog

import (
	"context"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/catalog"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ShopServiceService manages the catalog of service offerings
type ShopServiceService struct {
	serviceRepo     catalog.ShopServiceRepository
	maintenanceRepo maintenance.MaintenanceRequestRepository
	auditor         *auditapp.Service
}

// NewShopServiceService creates a new ShopServiceService
func NewShopServiceService(serviceRepo catalog.ShopServiceRepository, maintenanceRepo maintenance.MaintenanceRequestRepository, auditor *auditapp.Service) *ShopServiceService {
	return &ShopServiceService{
		serviceRepo:     serviceRepo,
		maintenanceRepo: maintenanceRepo,
		auditor:         auditor,
	}
}

// Create creates a new service offering
func (s *ShopServiceService) Create(ctx context.Context, req CreateShopServiceRequest) (*ShopServiceResponse, error) {
	offering, err := catalog.NewShopService(req.Name, req.Description, valueobject.NewMoneyUSD(req.StandardFee))
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, offering); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: offering.TableName(),
		RecordID:  offering.ID.String(),
		After:     auditapp.Snapshot(ToShopServiceResponse(offering)),
	}); err != nil {
		return nil, err
	}

	response := ToShopServiceResponse(offering)
	return &response, nil
}

// GetByID retrieves a service offering by ID
func (s *ShopServiceService) GetByID(ctx context.Context, id uuid.UUID) (*ShopServiceResponse, error) {
	offering, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToShopServiceResponse(offering)
	return &response, nil
}

// List retrieves service offerings with pagination and search
func (s *ShopServiceService) List(ctx context.Context, filter ListFilter) ([]ShopServiceResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	offerings, err := s.serviceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.serviceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ShopServiceResponse, len(offerings))
	for i := range offerings {
		responses[i] = ToShopServiceResponse(&offerings[i])
	}
	return responses, total, nil
}

// Update applies partial changes to a service offering
func (s *ShopServiceService) Update(ctx context.Context, id uuid.UUID, req UpdateShopServiceRequest) (*ShopServiceResponse, error) {
	offering, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := auditapp.Snapshot(ToShopServiceResponse(offering))

	name := offering.Name
	description := offering.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := offering.Rename(name, description); err != nil {
		return nil, err
	}
	if req.StandardFee != nil {
		if err := offering.UpdateFee(valueobject.NewMoneyUSD(*req.StandardFee)); err != nil {
			return nil, err
		}
	}

	if err := s.serviceRepo.Save(ctx, offering); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: offering.TableName(),
		RecordID:  offering.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToShopServiceResponse(offering)),
	}); err != nil {
		return nil, err
	}

	response := ToShopServiceResponse(offering)
	return &response, nil
}

// Delete removes a service offering unless maintenance requests reference it
func (s *ShopServiceService) Delete(ctx context.Context, id uuid.UUID) error {
	offering, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.maintenanceRepo.CountReferencingService(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		return shared.NewReferentialIntegrityError("service", "maintenance requests")
	}

	before := auditapp.Snapshot(ToShopServiceResponse(offering))
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: offering.TableName(),
		RecordID:  offering.ID.String(),
		Before:    before,
	})
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
