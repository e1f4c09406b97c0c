package maintenance

import (
	"time"

	"github.com/garage/backend/internal/domain/maintenance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceLineInput selects a service offering and a quantity. Pricing comes
// from the catalog at request time.
type ServiceLineInput struct {
	ServiceID uuid.UUID       `json:"service_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required,gt=0"`
}

// ProductLineInput selects a product, a quantity and the stock location the
// quantity is drawn from.
type ProductLineInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	StockSource string          `json:"stock_source" binding:"required,oneof=warehouse shop"`
}

// CreateRequestRequest represents a request to open a maintenance work order
type CreateRequestRequest struct {
	CarUin                string             `json:"car_uin" binding:"required,max=50"`
	Services              []ServiceLineInput `json:"services" binding:"required,min=1,dive"`
	Products              []ProductLineInput `json:"products" binding:"omitempty,dive"`
	AdditionalFee         decimal.Decimal    `json:"additional_fee"`
	Discount              decimal.Decimal    `json:"discount"`
	DiscountJustification string             `json:"discount_justification" binding:"max=30"`
	Status                string             `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	StartDate             time.Time          `json:"start_date"`
}

// UpdateRequestRequest represents a partial update to a maintenance request.
// Replacing line lists restores the old stock and deducts the new, all within
// one transaction.
type UpdateRequestRequest struct {
	Services              *[]ServiceLineInput `json:"services" binding:"omitempty,min=1,dive"`
	Products              *[]ProductLineInput `json:"products" binding:"omitempty,dive"`
	AdditionalFee         *decimal.Decimal    `json:"additional_fee"`
	Discount              *decimal.Decimal    `json:"discount"`
	DiscountJustification *string             `json:"discount_justification" binding:"omitempty,max=30"`
	Status                *string             `json:"status" binding:"omitempty,oneof=pending in-progress completed cancelled"`
	StartDate             *time.Time          `json:"start_date"`
	EndDate               *time.Time          `json:"end_date"`
	PaidAmount            *decimal.Decimal    `json:"paid_amount"`
}

// PaymentRequest applies a payment against a request's remaining balance
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// StatusRequest moves a request to a new workshop status
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in-progress completed cancelled"`
}

// ServiceLineResponse represents a billed service line
type ServiceLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   uuid.UUID       `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitFee     decimal.Decimal `json:"unit_fee"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProductLineResponse represents a consumed product line
type ProductLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockSource string          `json:"stock_source"`
	Amount      decimal.Decimal `json:"amount"`
}

// RequestResponse represents a maintenance request in API responses
type RequestResponse struct {
	ID                    uuid.UUID                 `json:"id"`
	CarUin                string                    `json:"car_uin"`
	ClientID              uuid.UUID                 `json:"client_id"`
	Services              []ServiceLineResponse     `json:"services"`
	Products              []ProductLineResponse     `json:"products"`
	AdditionalFee         decimal.Decimal           `json:"additional_fee"`
	Discount              decimal.Decimal           `json:"discount"`
	DiscountJustification string                    `json:"discount_justification,omitempty"`
	TotalCost             decimal.Decimal           `json:"total_cost"`
	PaidAmount            decimal.Decimal           `json:"paid_amount"`
	RemainingBalance      decimal.Decimal           `json:"remaining_balance"`
	PaymentStatus         maintenance.PaymentStatus `json:"payment_status"`
	Status                maintenance.RequestStatus `json:"status"`
	StartDate             time.Time                 `json:"start_date"`
	EndDate               *time.Time                `json:"end_date,omitempty"`
	CreatedAt             time.Time                 `json:"created_at"`
	UpdatedAt             time.Time                 `json:"updated_at"`
	Version               int                       `json:"version"`
}

// ToRequestResponse maps a maintenance request aggregate to its API representation
func ToRequestResponse(request *maintenance.MaintenanceRequest) RequestResponse {
	services := make([]ServiceLineResponse, len(request.ServiceLines))
	for i, line := range request.ServiceLines {
		services[i] = ServiceLineResponse{
			ID:          line.ID,
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			UnitFee:     line.UnitFee,
			Amount:      line.Amount,
		}
	}
	products := make([]ProductLineResponse, len(request.ProductLines))
	for i, line := range request.ProductLines {
		products[i] = ProductLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			StockSource: line.StockSource.String(),
			Amount:      line.Amount,
		}
	}

	return RequestResponse{
		ID:                    request.ID,
		CarUin:                request.CarUin,
		ClientID:              request.ClientID,
		Services:              services,
		Products:              products,
		AdditionalFee:         request.AdditionalFee,
		Discount:              request.Discount,
		DiscountJustification: request.DiscountJustification,
		TotalCost:             request.TotalCost,
		PaidAmount:            request.PaidAmount,
		RemainingBalance:      request.RemainingBalance,
		PaymentStatus:         request.PaymentStatus,
		Status:                request.Status,
		StartDate:             request.StartDate,
		EndDate:               request.EndDate,
		CreatedAt:             request.CreatedAt,
		UpdatedAt:             request.UpdatedAt,
		Version:               request.Version,
	}
}

// ListFilter represents list query options for maintenance requests
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RangeFilter selects requests whose start date falls in [Start, End],
// bucketed by the requested granularity
type RangeFilter struct {
	Start       time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End         time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
	Granularity string    `form:"granularity" binding:"omitempty,oneof=day month"`
}

// PeriodBucket aggregates the requests that started in one period
type PeriodBucket struct {
	Period    string          `json:"period"`
	Count     int             `json:"count"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Paid      decimal.Decimal `json:"paid"`
}

// DateRangeReport is the result of a date-range query: the matching requests
// plus per-period totals
type DateRangeReport struct {
	Requests []RequestResponse `json:"requests"`
	Buckets  []PeriodBucket    `json:"buckets"`
}
