package partner

import (
	"context"

	"github.com/garage/backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for the Client aggregate
type ClientRepository interface {
	shared.Repository[Client]
	FindByEmail(ctx context.Context, email string) (*Client, error)
	SaveWithLock(ctx context.Context, client *Client) error
}

// SupplierRepository defines persistence operations for the Supplier aggregate
type SupplierRepository interface {
	shared.Repository[Supplier]
}
