package maintenance

import (
	"fmt"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/garage/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestStatus represents the workshop status of a maintenance request
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in-progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Self-transitions are allowed everywhere except out of completed, which is
// terminal; cancelled requests may be reopened to pending.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusPending || target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusInProgress || target == StatusCompleted || target == StatusCancelled
	case StatusCompleted:
		return target == StatusCompleted
	case StatusCancelled:
		return target == StatusCancelled || target == StatusPending
	}
	return false
}

// PaymentStatus is derived from paidAmount versus totalCost, never stored
// independently of them.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// DerivePaymentStatus computes the payment status as a pure function of the
// paid amount and the total cost.
func DerivePaymentStatus(paidAmount, totalCost decimal.Decimal) PaymentStatus {
	remaining := totalCost.Sub(paidAmount)
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return PaymentPaid
	case paidAmount.GreaterThan(decimal.Zero):
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// StockSource names the stock location a product line draws from
type StockSource string

const (
	SourceWarehouse StockSource = "warehouse"
	SourceShop      StockSource = "shop"
)

// IsValid checks if the source is a valid StockSource
func (s StockSource) IsValid() bool {
	return s == SourceWarehouse || s == SourceShop
}

// String returns the string representation of StockSource
func (s StockSource) String() string {
	return string(s)
}

// ServiceLine is a billed service on a maintenance request
type ServiceLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null"`
	ServiceName string          `gorm:"type:varchar(255)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitFee     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// NewServiceLine creates a service line priced at the service's standard fee
func NewServiceLine(requestID, serviceID uuid.UUID, serviceName string, quantity decimal.Decimal, unitFee valueobject.Money) (*ServiceLine, error) {
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service quantity must be positive")
	}
	if unitFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service fee cannot be negative")
	}

	return &ServiceLine{
		ID:          uuid.New(),
		RequestID:   requestID,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Quantity:    quantity,
		UnitFee:     unitFee.Amount(),
		Amount:      quantity.Mul(unitFee.Amount()),
		CreatedAt:   time.Now(),
	}, nil
}

// ProductLine is a part consumed by a maintenance request, drawn from a
// specific stock location
type ProductLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockSource StockSource     `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
}

// NewProductLine creates a product line priced at the product's sale price
func NewProductLine(requestID, productID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money, source StockSource) (*ProductLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid stock source %q", source))
	}

	return &ProductLine{
		ID:          uuid.New(),
		RequestID:   requestID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		StockSource: source,
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   time.Now(),
	}, nil
}

const maxDiscountJustificationLen = 30

// MaintenanceRequest is the work-order aggregate root. It owns the cost
// computation, the payment balance, and the status machine; stock movement
// against the product lines is coordinated by the application service within
// the same transaction.
type MaintenanceRequest struct {
	shared.BaseAggregateRoot
	CarUin                string          `gorm:"type:varchar(50);index;not null"`
	ClientID              uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceLines          []ServiceLine   `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	ProductLines          []ProductLine   `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	AdditionalFee         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountJustification string          `gorm:"type:varchar(30)"`
	TotalCost             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingBalance      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus         PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	Status                RequestStatus   `gorm:"type:varchar(20);index;not null"`
	StartDate             time.Time       `gorm:"index;not null"`
	EndDate               *time.Time
}

// TableName returns the database table name
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// NewMaintenanceRequest creates a maintenance request. Requests may start in
// any valid status; pricing is zero until lines are attached.
func NewMaintenanceRequest(carUin string, clientID uuid.UUID, startDate time.Time, status RequestStatus) (*MaintenanceRequest, error) {
	if carUin == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Car UIN cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Start date is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid status %q", status))
	}

	request := &MaintenanceRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CarUin:            carUin,
		ClientID:          clientID,
		ServiceLines:      make([]ServiceLine, 0),
		ProductLines:      make([]ProductLine, 0),
		AdditionalFee:     decimal.Zero,
		Discount:          decimal.Zero,
		TotalCost:         decimal.Zero,
		PaidAmount:        decimal.Zero,
		RemainingBalance:  decimal.Zero,
		PaymentStatus:     PaymentPending,
		Status:            status,
		StartDate:         startDate,
	}

	request.AddDomainEvent(NewRequestCreatedEvent(request))

	return request, nil
}

// AddServiceLine appends a service line and recomputes the totals
func (r *MaintenanceRequest) AddServiceLine(serviceID uuid.UUID, serviceName string, quantity decimal.Decimal, unitFee valueobject.Money) error {
	line, err := NewServiceLine(r.ID, serviceID, serviceName, quantity, unitFee)
	if err != nil {
		return err
	}
	r.ServiceLines = append(r.ServiceLines, *line)
	r.recalculate()
	return nil
}

// AddProductLine appends a product line and recomputes the totals
func (r *MaintenanceRequest) AddProductLine(productID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money, source StockSource) error {
	line, err := NewProductLine(r.ID, productID, productName, quantity, unitPrice, source)
	if err != nil {
		return err
	}
	r.ProductLines = append(r.ProductLines, *line)
	r.recalculate()
	return nil
}

// ReplaceServiceLines swaps the full service list and recomputes the totals
func (r *MaintenanceRequest) ReplaceServiceLines(lines []ServiceLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one service is required")
	}
	r.ServiceLines = lines
	r.recalculate()
	return nil
}

// ReplaceProductLines swaps the full product list and recomputes the totals.
// Stock restoration for the old lines and deduction for the new ones is the
// caller's responsibility, inside the same transaction.
func (r *MaintenanceRequest) ReplaceProductLines(lines []ProductLine) {
	if lines == nil {
		lines = make([]ProductLine, 0)
	}
	r.ProductLines = lines
	r.recalculate()
}

// SetAdditionalFee sets the flat additional fee
func (r *MaintenanceRequest) SetAdditionalFee(fee valueobject.Money) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Additional fee cannot be negative")
	}
	r.AdditionalFee = fee.Amount()
	r.recalculate()
	return nil
}

// SetDiscount sets the discount and its justification
func (r *MaintenanceRequest) SetDiscount(discount valueobject.Money, justification string) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if len(justification) > maxDiscountJustificationLen {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Discount justification cannot exceed %d characters", maxDiscountJustificationLen))
	}
	r.Discount = discount.Amount()
	r.DiscountJustification = justification
	r.recalculate()
	return nil
}

// SetPaidAmount overwrites the paid amount and re-derives the balance and
// payment status. Used by full-request updates that carry a paid amount.
func (r *MaintenanceRequest) SetPaidAmount(paid decimal.Decimal) error {
	if paid.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Paid amount cannot be negative")
	}
	r.PaidAmount = paid
	r.recalculate()
	return nil
}

// TransitionTo moves the request to the target status, enforcing the
// transition table
func (r *MaintenanceRequest) TransitionTo(target RequestStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid status %q", target))
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition maintenance request from %s to %s", r.Status, target))
	}
	if r.Status == target {
		return nil
	}

	from := r.Status
	now := time.Now()
	r.Status = target
	if target == StatusCompleted && r.EndDate == nil {
		r.EndDate = &now
	}
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequestStatusChangedEvent(r, from, target))

	return nil
}

// MakePayment applies a payment against the remaining balance. Overpayment is
// accepted; the status simply stays paid.
func (r *MaintenanceRequest) MakePayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}

	r.PaidAmount = r.PaidAmount.Add(amount.Amount())
	r.recalculate()

	r.AddDomainEvent(NewPaymentMadeEvent(r, amount.Amount()))

	return nil
}

// SetStartDate moves the start date, keeping it ahead of any end date
func (r *MaintenanceRequest) SetStartDate(startDate time.Time) error {
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Start date is required")
	}
	if r.EndDate != nil && r.EndDate.Before(startDate) {
		return shared.NewDomainError("INVALID_INPUT", "Start date cannot follow the end date")
	}
	r.StartDate = startDate
	r.UpdatedAt = time.Now()
	return nil
}

// SetEndDate sets or clears the completion date
func (r *MaintenanceRequest) SetEndDate(endDate *time.Time) error {
	if endDate != nil && endDate.Before(r.StartDate) {
		return shared.NewDomainError("INVALID_INPUT", "End date cannot precede the start date")
	}
	r.EndDate = endDate
	r.UpdatedAt = time.Now()
	return nil
}

// Validate checks the invariants that only hold once the request is fully
// assembled
func (r *MaintenanceRequest) Validate() error {
	if len(r.ServiceLines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one service is required")
	}
	if r.TotalCost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot exceed the pre-discount total")
	}
	return nil
}

// ServiceSubtotal returns the sum of service line amounts
func (r *MaintenanceRequest) ServiceSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range r.ServiceLines {
		total = total.Add(line.Amount)
	}
	return total
}

// ProductSubtotal returns the sum of product line amounts
func (r *MaintenanceRequest) ProductSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range r.ProductLines {
		total = total.Add(line.Amount)
	}
	return total
}

// GetTotalCostMoney returns the total cost as Money
func (r *MaintenanceRequest) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.TotalCost)
}

// GetRemainingBalanceMoney returns the remaining balance as Money
func (r *MaintenanceRequest) GetRemainingBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.RemainingBalance)
}

// IsTerminal returns true when no further status change is possible
func (r *MaintenanceRequest) IsTerminal() bool {
	return r.Status == StatusCompleted
}

// recalculate re-derives totalCost, remainingBalance and paymentStatus.
// totalCost = services + products + additionalFee - discount. A discount
// larger than the rest of the formula leaves the total negative; Validate
// rejects that state before any save.
func (r *MaintenanceRequest) recalculate() {
	r.TotalCost = r.ServiceSubtotal().Add(r.ProductSubtotal()).Add(r.AdditionalFee).Sub(r.Discount)
	r.RemainingBalance = r.TotalCost.Sub(r.PaidAmount)
	r.PaymentStatus = DerivePaymentStatus(r.PaidAmount, r.TotalCost)
	r.UpdatedAt = time.Now()
}
