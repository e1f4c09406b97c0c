package finance

import (
	"context"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategorySummary is an aggregated total for one category over a period
type CategorySummary struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Kind         CategoryKind    `json:"kind"`
	Total        decimal.Decimal `json:"total"`
	RecordCount  int64           `json:"record_count"`
}

// TimeSeriesPoint is one bucket of a dated income/expense aggregation
type TimeSeriesPoint struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// FinanceCategoryRepository defines persistence operations for categories
type FinanceCategoryRepository interface {
	shared.Repository[FinanceCategory]
	FindByName(ctx context.Context, name string) (*FinanceCategory, error)
}

// FinanceRecordRepository defines persistence operations for records,
// including the aggregated read side used by dashboards
type FinanceRecordRepository interface {
	shared.Repository[FinanceRecord]
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]FinanceRecord, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]FinanceRecord, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	SummarizeByCategory(ctx context.Context, start, end time.Time) ([]CategorySummary, error)
	TimeSeries(ctx context.Context, start, end time.Time, granularity string) ([]TimeSeriesPoint, error)
}
