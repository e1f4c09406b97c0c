package fleet

import (
	"context"
	"errors"
	"strings"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CarService handles car registration and lifecycle
type CarService struct {
	carRepo         fleet.CarRepository
	clientRepo      partner.ClientRepository
	insuranceRepo   fleet.InsurancePolicyRepository
	maintenanceRepo maintenance.MaintenanceRequestRepository
	auditor         *auditapp.Service
}

// NewCarService creates a new CarService
func NewCarService(
	carRepo fleet.CarRepository,
	clientRepo partner.ClientRepository,
	insuranceRepo fleet.InsurancePolicyRepository,
	maintenanceRepo maintenance.MaintenanceRequestRepository,
	auditor *auditapp.Service,
) *CarService {
	return &CarService{
		carRepo:         carRepo,
		clientRepo:      clientRepo,
		insuranceRepo:   insuranceRepo,
		maintenanceRepo: maintenanceRepo,
		auditor:         auditor,
	}
}

// Create registers a car under an existing client
func (s *CarService) Create(ctx context.Context, req CreateCarRequest) (*CarResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	// Normalize before the existence check so the duplicate guard matches
	// the key the aggregate will store.
	uin := strings.ToUpper(strings.TrimSpace(req.UIN))
	existing, err := s.carRepo.FindByUIN(ctx, uin)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Car with this UIN already exists")
	}

	car, err := fleet.NewCar(uin, req.ClientID, req.Make, req.Model, req.Year)
	if err != nil {
		return nil, err
	}
	if req.Color != "" {
		color := req.Color
		car.Update(nil, nil, &color, nil)
	}
	if req.InsuranceID != nil {
		if _, err := s.insuranceRepo.FindByID(ctx, *req.InsuranceID); err != nil {
			return nil, err
		}
		if err := car.LinkInsurance(*req.InsuranceID); err != nil {
			return nil, err
		}
	}

	if err := s.carRepo.Save(ctx, car); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: car.TableName(),
		RecordID:  car.UIN,
		After:     auditapp.Snapshot(ToCarResponse(car)),
		ClientID:  &car.ClientID,
		CarUin:    &car.UIN,
	}); err != nil {
		return nil, err
	}

	response := ToCarResponse(car)
	return &response, nil
}

// GetByUIN retrieves a car by its UIN
func (s *CarService) GetByUIN(ctx context.Context, uin string) (*CarResponse, error) {
	car, err := s.carRepo.FindByUIN(ctx, strings.ToUpper(strings.TrimSpace(uin)))
	if err != nil {
		return nil, err
	}
	response := ToCarResponse(car)
	return &response, nil
}

// List retrieves cars with filtering and pagination
func (s *CarService) List(ctx context.Context, filter ListFilter) ([]CarResponse, int64, error) {
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

	cars, err := s.carRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.carRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CarResponse, 0, len(cars))
	for i := range cars {
		responses = append(responses, ToCarResponse(&cars[i]))
	}
	return responses, total, nil
}

// ListByClient retrieves all cars owned by a client
func (s *CarService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]CarResponse, error) {
	cars, err := s.carRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]CarResponse, 0, len(cars))
	for i := range cars {
		responses = append(responses, ToCarResponse(&cars[i]))
	}
	return responses, nil
}

// Update applies a partial update to a car, including ownership transfer and
// insurance re-linking
func (s *CarService) Update(ctx context.Context, uin string, req UpdateCarRequest) (*CarResponse, error) {
	car, err := s.carRepo.FindByUIN(ctx, strings.ToUpper(strings.TrimSpace(uin)))
	if err != nil {
		return nil, err
	}
	before := auditapp.Snapshot(ToCarResponse(car))

	if req.ClientID != nil && *req.ClientID != car.ClientID {
		if _, err := s.clientRepo.FindByID(ctx, *req.ClientID); err != nil {
			return nil, err
		}
		if err := car.TransferTo(*req.ClientID); err != nil {
			return nil, err
		}
	}
	if req.InsuranceID != nil {
		if *req.InsuranceID == uuid.Nil {
			car.UnlinkInsurance()
		} else {
			if _, err := s.insuranceRepo.FindByID(ctx, *req.InsuranceID); err != nil {
				return nil, err
			}
			if err := car.LinkInsurance(*req.InsuranceID); err != nil {
				return nil, err
			}
		}
	}
	car.Update(req.Make, req.Model, req.Color, req.Year)

	if err := s.carRepo.SaveWithLock(ctx, car); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: car.TableName(),
		RecordID:  car.UIN,
		Before:    before,
		After:     auditapp.Snapshot(ToCarResponse(car)),
		ClientID:  &car.ClientID,
		CarUin:    &car.UIN,
	}); err != nil {
		return nil, err
	}

	response := ToCarResponse(car)
	return &response, nil
}

// Delete removes a car. Blocked while maintenance requests reference the UIN.
func (s *CarService) Delete(ctx context.Context, uin string) error {
	car, err := s.carRepo.FindByUIN(ctx, strings.ToUpper(strings.TrimSpace(uin)))
	if err != nil {
		return err
	}

	requestCount, err := s.maintenanceRepo.CountByCarUin(ctx, car.UIN)
	if err != nil {
		return err
	}
	if requestCount > 0 {
		return shared.NewReferentialIntegrityError("car", "maintenance requests")
	}

	before := auditapp.Snapshot(ToCarResponse(car))
	if err := s.carRepo.Delete(ctx, car.UIN); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: car.TableName(),
		RecordID:  car.UIN,
		Before:    before,
		ClientID:  &car.ClientID,
		CarUin:    &car.UIN,
	})
}
