package fleet

import (
	"context"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CarRepository defines persistence operations for the Car aggregate.
// Cars are keyed by UIN rather than a generated UUID.
type CarRepository interface {
	FindByUIN(ctx context.Context, uin string) (*Car, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Car, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Car, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	Save(ctx context.Context, car *Car) error
	SaveWithLock(ctx context.Context, car *Car) error
	Delete(ctx context.Context, uin string) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InsurancePolicyRepository defines persistence operations for insurance policies
type InsurancePolicyRepository interface {
	shared.Repository[InsurancePolicy]
	FindByPolicyNumber(ctx context.Context, policyNumber string) (*InsurancePolicy, error)
}
