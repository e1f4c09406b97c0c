package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client represents a garage customer who owns one or more cars.
// It is the aggregate root for client-related operations.
type Client struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Contact string `gorm:"type:varchar(50);index"`
	Email   string `gorm:"type:varchar(200);index"`
	Address string `gorm:"type:text"`
	Notes   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(name, contact, email, address string) (*Client, error) {
	if err := validateClientName(name); err != nil {
		return nil, err
	}
	if err := validateClientEmail(email); err != nil {
		return nil, err
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Contact:           strings.TrimSpace(contact),
		Email:             strings.TrimSpace(email),
		Address:           strings.TrimSpace(address),
	}

	client.AddDomainEvent(NewClientCreatedEvent(client))

	return client, nil
}

// Update applies a partial update to the client's mutable fields.
// Nil pointers leave the corresponding field unchanged.
func (c *Client) Update(name, contact, email, address, notes *string) error {
	if name != nil {
		if err := validateClientName(*name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		if err := validateClientEmail(*email); err != nil {
			return err
		}
		c.Email = strings.TrimSpace(*email)
	}
	if contact != nil {
		c.Contact = strings.TrimSpace(*contact)
	}
	if address != nil {
		c.Address = strings.TrimSpace(*address)
	}
	if notes != nil {
		c.Notes = *notes
	}

	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewClientUpdatedEvent(c))

	return nil
}

func validateClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}
	return nil
}

func validateClientEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil // email is optional
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Client email format is invalid")
	}
	return nil
}
