package fleet

import (
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Car represents a vehicle registered with the garage. Unlike the other
// aggregates, its identity is the caller-supplied UIN (the vehicle
// identification number), not a generated UUID. A car belongs to exactly one
// client and may be linked to at most one insurance policy.
type Car struct {
	UIN         string     `gorm:"type:varchar(50);primaryKey"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	InsuranceID *uuid.UUID `gorm:"type:uuid;index"`
	Make        string     `gorm:"type:varchar(100)"`
	Model       string     `gorm:"type:varchar(100)"`
	Year        int        `gorm:"not null;default:0"`
	Color       string     `gorm:"type:varchar(50)"`
	Version     int        `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	domainEvents []shared.DomainEvent `gorm:"-"`
}

// TableName returns the table name for GORM
func (Car) TableName() string {
	return "cars"
}

// NewCar creates a new car keyed by its UIN
func NewCar(uin string, clientID uuid.UUID, make, model string, year int) (*Car, error) {
	uin = strings.ToUpper(strings.TrimSpace(uin))
	if uin == "" {
		return nil, shared.NewDomainError("INVALID_UIN", "Car UIN cannot be empty")
	}
	if len(uin) > 50 {
		return nil, shared.NewDomainError("INVALID_UIN", "Car UIN cannot exceed 50 characters")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	now := time.Now()
	return &Car{
		UIN:       uin,
		ClientID:  clientID,
		Make:      strings.TrimSpace(make),
		Model:     strings.TrimSpace(model),
		Year:      year,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetVersion returns the car version for optimistic locking
func (c *Car) GetVersion() int {
	return c.Version
}

// IncrementVersion increments the version number
func (c *Car) IncrementVersion() {
	c.Version++
}

// AddDomainEvent adds a domain event to be published
func (c *Car) AddDomainEvent(event shared.DomainEvent) {
	c.domainEvents = append(c.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (c *Car) GetDomainEvents() []shared.DomainEvent {
	return c.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (c *Car) ClearDomainEvents() {
	c.domainEvents = nil
}

// TransferTo reassigns the car to a different client
func (c *Car) TransferTo(clientID uuid.UUID) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	c.ClientID = clientID
	c.UpdatedAt = time.Now()
	return nil
}

// LinkInsurance attaches an insurance policy to the car
func (c *Car) LinkInsurance(insuranceID uuid.UUID) error {
	if insuranceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INSURANCE", "Insurance ID cannot be empty")
	}
	c.InsuranceID = &insuranceID
	c.UpdatedAt = time.Now()
	return nil
}

// UnlinkInsurance detaches the insurance policy
func (c *Car) UnlinkInsurance() {
	c.InsuranceID = nil
	c.UpdatedAt = time.Now()
}

// Update applies a partial update to the car's descriptive fields
func (c *Car) Update(make, model, color *string, year *int) {
	if make != nil {
		c.Make = strings.TrimSpace(*make)
	}
	if model != nil {
		c.Model = strings.TrimSpace(*model)
	}
	if color != nil {
		c.Color = strings.TrimSpace(*color)
	}
	if year != nil {
		c.Year = *year
	}
	c.UpdatedAt = time.Now()
}
