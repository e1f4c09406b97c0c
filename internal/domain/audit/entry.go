package audit

import (
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActionType classifies a mutation recorded in the audit trail
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
)

// IsValid checks if the action is a valid ActionType
func (a ActionType) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

// Entry is one append-only audit trail record. Entries are never updated or
// deleted; the only path that touches existing entries is a full backup
// restore, which append-merges by id.
type Entry struct {
	shared.BaseEntity
	ActionType  ActionType     `gorm:"type:varchar(20);index;not null"`
	EntityTable string         `gorm:"column:table_name;type:varchar(100);index;not null"`
	RecordID    string         `gorm:"type:varchar(100);index;not null"`
	ActorName   string         `gorm:"type:varchar(255);not null"`
	Before      map[string]any `gorm:"type:jsonb;serializer:json"`
	After       map[string]any `gorm:"type:jsonb;serializer:json"`

	// Financial traceability, present only for money-bearing mutations
	PaymentAmount    *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Discount         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	AdditionalFees   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	RemainingBalance *decimal.Decimal `gorm:"type:decimal(18,4)"`

	// Entity links for cross-referencing from detail views
	ClientID      *uuid.UUID `gorm:"type:uuid"`
	CarUin        *string    `gorm:"type:varchar(50)"`
	MaintenanceID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the database table name
func (Entry) TableName() string {
	return "audit_entries"
}

// NewEntry creates an audit entry for a mutation on the named table
func NewEntry(action ActionType, tableName, recordID, actorName string) (*Entry, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid audit action")
	}
	if tableName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Table name cannot be empty")
	}
	if recordID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Record ID cannot be empty")
	}
	if actorName == "" {
		actorName = shared.SystemActor.Name
	}

	return &Entry{
		BaseEntity:  shared.NewBaseEntity(),
		ActionType:  action,
		EntityTable: tableName,
		RecordID:    recordID,
		ActorName:   actorName,
	}, nil
}

// WithSnapshots attaches before/after state captures
func (e *Entry) WithSnapshots(before, after map[string]any) *Entry {
	e.Before = before
	e.After = after
	return e
}

// WithFinancials attaches the money fields of the mutation
func (e *Entry) WithFinancials(paymentAmount, discount, additionalFees, remainingBalance *decimal.Decimal) *Entry {
	e.PaymentAmount = paymentAmount
	e.Discount = discount
	e.AdditionalFees = additionalFees
	e.RemainingBalance = remainingBalance
	return e
}

// WithLinks attaches the related entity identifiers
func (e *Entry) WithLinks(clientID *uuid.UUID, carUin *string, maintenanceID *uuid.UUID) *Entry {
	e.ClientID = clientID
	e.CarUin = carUin
	e.MaintenanceID = maintenanceID
	return e
}
