package partner

import (
	"time"

	"github.com/garage/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Contact string `json:"contact" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest represents a partial update to a client
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Contact *string `json:"contact" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Notes   *string `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToClientResponse maps a client aggregate to its API representation
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Contact:   client.Contact,
		Email:     client.Email,
		Address:   client.Address,
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
		Version:   client.Version,
	}
}

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Contact string `json:"contact" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateSupplierRequest represents a partial update to a supplier
type UpdateSupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Contact *string `json:"contact" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToSupplierResponse maps a supplier aggregate to its API representation
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Contact:   supplier.Contact,
		Email:     supplier.Email,
		Address:   supplier.Address,
		CreatedAt: supplier.CreatedAt,
		UpdatedAt: supplier.UpdatedAt,
		Version:   supplier.Version,
	}
}

// ListFilter represents list query options shared by clients and suppliers
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
