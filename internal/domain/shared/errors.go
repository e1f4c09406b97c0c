package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrReferentialIntegrity = NewDomainError("REFERENTIAL_INTEGRITY", "Dependent records exist")
)

// NewInsufficientStockError builds an INSUFFICIENT_STOCK error that names the
// product and stock location, as required for user-facing rejection messages.
func NewInsufficientStockError(productName, location string, requested, available string) *DomainError {
	return NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for product %q at %s: requested %s, available %s",
			productName, location, requested, available))
}

// NewReferentialIntegrityError builds a REFERENTIAL_INTEGRITY error describing
// the blocking dependency.
func NewReferentialIntegrityError(entity, dependents string) *DomainError {
	return NewDomainError("REFERENTIAL_INTEGRITY",
		fmt.Sprintf("Cannot delete %s while %s exist", entity, dependents))
}
