package partner

import (
	"context"
	"errors"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
	carRepo    fleet.CarRepository
	auditor    *auditapp.Service
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, carRepo fleet.CarRepository, auditor *auditapp.Service) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		carRepo:    carRepo,
		auditor:    auditor,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	if req.Email != "" {
		existing, err := s.clientRepo.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this email already exists")
		}
	}

	client, err := partner.NewClient(req.Name, req.Contact, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		notes := req.Notes
		if err := client.Update(nil, nil, nil, nil, &notes); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: client.TableName(),
		RecordID:  client.ID.String(),
		After:     auditapp.Snapshot(ToClientResponse(client)),
		ClientID:  &client.ID,
	}); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ListFilter) ([]ClientResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditapp.Snapshot(ToClientResponse(client))

	if req.Email != nil && *req.Email != "" && *req.Email != client.Email {
		existing, err := s.clientRepo.FindByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != client.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Client with this email already exists")
		}
	}

	if err := client.Update(req.Name, req.Contact, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.clientRepo.SaveWithLock(ctx, client); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: client.TableName(),
		RecordID:  client.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToClientResponse(client)),
		ClientID:  &client.ID,
	}); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client. Blocked while the client still owns cars.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	carCount, err := s.carRepo.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if carCount > 0 {
		return shared.NewReferentialIntegrityError("client", "cars")
	}

	before := auditapp.Snapshot(ToClientResponse(client))
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: client.TableName(),
		RecordID:  client.ID.String(),
		Before:    before,
		ClientID:  &client.ID,
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
