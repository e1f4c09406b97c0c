package fleet

import (
	"context"
	"errors"

	auditapp "github.com/garage/backend/internal/application/audit"
	"github.com/garage/backend/internal/domain/audit"
	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InsuranceService handles insurance policy operations
type InsuranceService struct {
	insuranceRepo fleet.InsurancePolicyRepository
	auditor       *auditapp.Service
}

// NewInsuranceService creates a new InsuranceService
func NewInsuranceService(insuranceRepo fleet.InsurancePolicyRepository, auditor *auditapp.Service) *InsuranceService {
	return &InsuranceService{
		insuranceRepo: insuranceRepo,
		auditor:       auditor,
	}
}

// Create registers an insurance policy
func (s *InsuranceService) Create(ctx context.Context, req CreateInsuranceRequest) (*InsuranceResponse, error) {
	existing, err := s.insuranceRepo.FindByPolicyNumber(ctx, req.PolicyNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Policy with this number already exists")
	}

	policy, err := fleet.NewInsurancePolicy(req.Provider, req.PolicyNumber, req.StartDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if err := s.insuranceRepo.Save(ctx, policy); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionCreate,
		TableName: policy.TableName(),
		RecordID:  policy.ID.String(),
		After:     auditapp.Snapshot(ToInsuranceResponse(policy)),
	}); err != nil {
		return nil, err
	}

	response := ToInsuranceResponse(policy)
	return &response, nil
}

// GetByID retrieves a policy by ID
func (s *InsuranceService) GetByID(ctx context.Context, id uuid.UUID) (*InsuranceResponse, error) {
	policy, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInsuranceResponse(policy)
	return &response, nil
}

// List retrieves policies with pagination
func (s *InsuranceService) List(ctx context.Context, filter ListFilter) ([]InsuranceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	policies, err := s.insuranceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.insuranceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InsuranceResponse, 0, len(policies))
	for i := range policies {
		responses = append(responses, ToInsuranceResponse(&policies[i]))
	}
	return responses, total, nil
}

// Renew extends a policy to a new expiry date
func (s *InsuranceService) Renew(ctx context.Context, id uuid.UUID, req RenewInsuranceRequest) (*InsuranceResponse, error) {
	policy, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := auditapp.Snapshot(ToInsuranceResponse(policy))

	if err := policy.Renew(req.ExpiryDate); err != nil {
		return nil, err
	}
	if err := s.insuranceRepo.Save(ctx, policy); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionUpdate,
		TableName: policy.TableName(),
		RecordID:  policy.ID.String(),
		Before:    before,
		After:     auditapp.Snapshot(ToInsuranceResponse(policy)),
	}); err != nil {
		return nil, err
	}

	response := ToInsuranceResponse(policy)
	return &response, nil
}

// Delete removes a policy
func (s *InsuranceService) Delete(ctx context.Context, id uuid.UUID) error {
	policy, err := s.insuranceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	before := auditapp.Snapshot(ToInsuranceResponse(policy))
	if err := s.insuranceRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.auditor.Record(ctx, auditapp.RecordInput{
		Action:    audit.ActionDelete,
		TableName: policy.TableName(),
		RecordID:  policy.ID.String(),
		Before:    before,
	})
}
