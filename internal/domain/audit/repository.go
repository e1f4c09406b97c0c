package audit

import (
	"context"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntryRepository is the append-only persistence contract for the audit
// trail. There is deliberately no update or single-entry delete; SaveAll
// exists solely for the backup restore's append-merge.
type EntryRepository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Entry, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Entry, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	SaveAll(ctx context.Context, entries []Entry) error
}
