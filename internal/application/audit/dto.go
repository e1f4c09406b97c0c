package audit

import (
	"time"

	"github.com/garage/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordInput carries everything needed to append one audit entry
type RecordInput struct {
	Action    audit.ActionType
	TableName string
	RecordID  string
	Before    map[string]any
	After     map[string]any

	PaymentAmount    *decimal.Decimal
	Discount         *decimal.Decimal
	AdditionalFees   *decimal.Decimal
	RemainingBalance *decimal.Decimal

	ClientID      *uuid.UUID
	CarUin        *string
	MaintenanceID *uuid.UUID
}

// EntryResponse represents an audit entry in API responses
type EntryResponse struct {
	ID               uuid.UUID        `json:"id"`
	ActionType       string           `json:"action_type"`
	TableName        string           `json:"table_name"`
	RecordID         string           `json:"record_id"`
	ActorName        string           `json:"actor_name"`
	ClientName       string           `json:"client_name,omitempty"`
	Before           map[string]any   `json:"before,omitempty"`
	After            map[string]any   `json:"after,omitempty"`
	PaymentAmount    *decimal.Decimal `json:"payment_amount,omitempty"`
	Discount         *decimal.Decimal `json:"discount,omitempty"`
	AdditionalFees   *decimal.Decimal `json:"additional_fees,omitempty"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance,omitempty"`
	ClientID         *uuid.UUID       `json:"client_id,omitempty"`
	CarUin           *string          `json:"car_uin,omitempty"`
	MaintenanceID    *uuid.UUID       `json:"maintenance_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ListFilter represents filter options for the audit list
type ListFilter struct {
	TableName string `form:"table_name"`
	Action    string `form:"action" binding:"omitempty,oneof=create update delete"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// RangeFilter represents a date-range query
type RangeFilter struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02"`
}

// ToEntryResponse maps a domain entry to its API representation
func ToEntryResponse(entry *audit.Entry, clientName string) EntryResponse {
	return EntryResponse{
		ID:               entry.ID,
		ActionType:       entry.ActionType.String(),
		TableName:        entry.EntityTable,
		RecordID:         entry.RecordID,
		ActorName:        entry.ActorName,
		ClientName:       clientName,
		Before:           entry.Before,
		After:            entry.After,
		PaymentAmount:    entry.PaymentAmount,
		Discount:         entry.Discount,
		AdditionalFees:   entry.AdditionalFees,
		RemainingBalance: entry.RemainingBalance,
		ClientID:         entry.ClientID,
		CarUin:           entry.CarUin,
		MaintenanceID:    entry.MaintenanceID,
		CreatedAt:        entry.CreatedAt,
	}
}
