package maintenance

import (
	"context"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaintenanceRequestRepository defines persistence operations for the
// maintenance request aggregate. Implementations must load and save the
// service and product lines together with the request.
type MaintenanceRequestRepository interface {
	shared.Repository[MaintenanceRequest]
	SaveWithLock(ctx context.Context, request *MaintenanceRequest) error
	FindByCarUin(ctx context.Context, uin string) ([]MaintenanceRequest, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]MaintenanceRequest, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]MaintenanceRequest, error)
	CountByCarUin(ctx context.Context, uin string) (int64, error)
	CountReferencingService(ctx context.Context, serviceID uuid.UUID) (int64, error)
	CountReferencingProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
