package fleet

import (
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
)

// InsurancePolicy represents an insurance policy that may cover one or more
// cars in the fleet.
type InsurancePolicy struct {
	shared.BaseAggregateRoot
	Provider     string    `gorm:"type:varchar(200);not null"`
	PolicyNumber string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	StartDate    time.Time `gorm:"not null"`
	ExpiryDate   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

// NewInsurancePolicy creates a new insurance policy
func NewInsurancePolicy(provider, policyNumber string, startDate, expiryDate time.Time) (*InsurancePolicy, error) {
	provider = strings.TrimSpace(provider)
	policyNumber = strings.TrimSpace(policyNumber)
	if provider == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Insurance provider cannot be empty")
	}
	if policyNumber == "" {
		return nil, shared.NewDomainError("INVALID_POLICY_NUMBER", "Policy number cannot be empty")
	}
	if !expiryDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Policy expiry date must be after start date")
	}

	return &InsurancePolicy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Provider:          provider,
		PolicyNumber:      policyNumber,
		StartDate:         startDate,
		ExpiryDate:        expiryDate,
	}, nil
}

// IsExpired returns true if the policy has expired
func (p *InsurancePolicy) IsExpired() bool {
	return time.Now().After(p.ExpiryDate)
}

// Renew extends the policy to a new expiry date
func (p *InsurancePolicy) Renew(expiryDate time.Time) error {
	if !expiryDate.After(p.ExpiryDate) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "New expiry date must extend the policy")
	}
	p.ExpiryDate = expiryDate
	p.UpdatedAt = time.Now()
	return nil
}
