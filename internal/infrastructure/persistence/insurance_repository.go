package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/garage/backend/internal/domain/fleet"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var insuranceSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"provider":      true,
	"policy_number": true,
	"expiry_date":   true,
}

// GormInsurancePolicyRepository implements InsurancePolicyRepository using GORM
type GormInsurancePolicyRepository struct {
	db *gorm.DB
}

// NewGormInsurancePolicyRepository creates a new GormInsurancePolicyRepository
func NewGormInsurancePolicyRepository(db *gorm.DB) *GormInsurancePolicyRepository {
	return &GormInsurancePolicyRepository{db: db}
}

// FindByID finds a policy by its ID
func (r *GormInsurancePolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.InsurancePolicy, error) {
	var policy fleet.InsurancePolicy
	if err := r.db.WithContext(ctx).First(&policy, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

// FindByPolicyNumber finds a policy by its unique policy number
func (r *GormInsurancePolicyRepository) FindByPolicyNumber(ctx context.Context, policyNumber string) (*fleet.InsurancePolicy, error) {
	policyNumber = strings.TrimSpace(policyNumber)
	if policyNumber == "" {
		return nil, shared.NewDomainError("INVALID_POLICY_NUMBER", "Policy number cannot be empty")
	}
	var policy fleet.InsurancePolicy
	if err := r.db.WithContext(ctx).
		Where("policy_number = ?", policyNumber).
		First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

// FindAll finds all policies matching the filter
func (r *GormInsurancePolicyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fleet.InsurancePolicy, error) {
	var policies []fleet.InsurancePolicy
	query := r.db.WithContext(ctx).Model(&fleet.InsurancePolicy{})
	query = applySearch(query, filter.Search, "provider", "policy_number")
	query = applyOrdering(query, filter, insuranceSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// Save creates or updates a policy
func (r *GormInsurancePolicyRepository) Save(ctx context.Context, policy *fleet.InsurancePolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

// Delete deletes a policy
func (r *GormInsurancePolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&fleet.InsurancePolicy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts policies matching the filter
func (r *GormInsurancePolicyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fleet.InsurancePolicy{})
	query = applySearch(query, filter.Search, "provider", "policy_number")
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormInsurancePolicyRepository implements InsurancePolicyRepository
var _ fleet.InsurancePolicyRepository = (*GormInsurancePolicyRepository)(nil)
