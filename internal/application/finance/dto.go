package finance

import (
	"time"

	"github.com/garage/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a finance category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Kind string `json:"kind" binding:"required,oneof=income expense"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse maps a category to its API representation
func ToCategoryResponse(category *finance.FinanceCategory) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Kind:      category.Kind.String(),
		CreatedAt: category.CreatedAt,
	}
}

// CreateRecordRequest represents a manually posted finance record
type CreateRecordRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Date        time.Time       `json:"date"`
}

// UpdateRecordRequest represents a partial update to a finance record
type UpdateRecordRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Date        *time.Time       `json:"date"`
}

// RecordResponse represents a finance record in API responses
type RecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	ReferenceType *string         `json:"reference_type,omitempty"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToRecordResponse maps a record to its API representation
func ToRecordResponse(record *finance.FinanceRecord) RecordResponse {
	var refType *string
	if record.ReferenceType != nil {
		value := string(*record.ReferenceType)
		refType = &value
	}
	return RecordResponse{
		ID:            record.ID,
		CategoryID:    record.CategoryID,
		Amount:        record.Amount,
		Description:   record.Description,
		Date:          record.Date,
		ReferenceType: refType,
		ReferenceID:   record.ReferenceID,
		CreatedAt:     record.CreatedAt,
	}
}

// SummaryFilter represents the period for category summaries
type SummaryFilter struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}

// TimeSeriesFilter represents the period and bucket size for time series
type TimeSeriesFilter struct {
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
	Granularity string    `form:"granularity" binding:"omitempty,oneof=day month"`
}
