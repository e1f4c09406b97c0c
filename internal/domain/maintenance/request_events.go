package maintenance

import (
	"github.com/garage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventTypeRequestCreated       = "maintenance.request.created"
	EventTypeRequestUpdated       = "maintenance.request.updated"
	EventTypeRequestDeleted       = "maintenance.request.deleted"
	EventTypeRequestStatusChanged = "maintenance.request.status_changed"
	EventTypePaymentMade          = "maintenance.request.payment_made"
)

// RequestCreatedEvent is emitted when a maintenance request is created
type RequestCreatedEvent struct {
	shared.BaseDomainEvent
	CarUin    string          `json:"car_uin"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Status    RequestStatus   `json:"status"`
}

func NewRequestCreatedEvent(request *MaintenanceRequest) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestCreated, "MaintenanceRequest", request.ID),
		CarUin:          request.CarUin,
		TotalCost:       request.TotalCost,
		Status:          request.Status,
	}
}

// RequestStatusChangedEvent is emitted on every status transition
type RequestStatusChangedEvent struct {
	shared.BaseDomainEvent
	From RequestStatus `json:"from"`
	To   RequestStatus `json:"to"`
}

func NewRequestStatusChangedEvent(request *MaintenanceRequest, from, to RequestStatus) *RequestStatusChangedEvent {
	return &RequestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequestStatusChanged, "MaintenanceRequest", request.ID),
		From:            from,
		To:              to,
	}
}

// PaymentMadeEvent is emitted when a payment is applied to a request
type PaymentMadeEvent struct {
	shared.BaseDomainEvent
	Amount           decimal.Decimal `json:"amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
}

func NewPaymentMadeEvent(request *MaintenanceRequest, amount decimal.Decimal) *PaymentMadeEvent {
	return &PaymentMadeEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypePaymentMade, "MaintenanceRequest", request.ID),
		Amount:           amount,
		PaidAmount:       request.PaidAmount,
		RemainingBalance: request.RemainingBalance,
		PaymentStatus:    request.PaymentStatus,
	}
}
