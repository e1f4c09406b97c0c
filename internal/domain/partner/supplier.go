package partner

import (
	"strings"
	"time"

	"github.com/garage/backend/internal/domain/shared"
)

// Supplier represents a parts supplier. Products reference exactly one
// supplier; a supplier cannot be deleted while referenced.
type Supplier struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Contact string `gorm:"type:varchar(50)"`
	Email   string `gorm:"type:varchar(200)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contact, email, address string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if err := validateClientEmail(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Supplier email format is invalid")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Contact:           strings.TrimSpace(contact),
		Email:             strings.TrimSpace(email),
		Address:           strings.TrimSpace(address),
	}, nil
}

// Update applies a partial update to the supplier
func (s *Supplier) Update(name, contact, email, address *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
		}
		s.Name = trimmed
	}
	if email != nil {
		if err := validateClientEmail(*email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Supplier email format is invalid")
		}
		s.Email = strings.TrimSpace(*email)
	}
	if contact != nil {
		s.Contact = strings.TrimSpace(*contact)
	}
	if address != nil {
		s.Address = strings.TrimSpace(*address)
	}

	s.UpdatedAt = time.Now()
	return nil
}
