package fleet

import (
	"time"

	"github.com/garage/backend/internal/domain/fleet"
	"github.com/google/uuid"
)

// CreateCarRequest represents a request to register a car
type CreateCarRequest struct {
	UIN         string     `json:"uin" binding:"required,min=1,max=50"`
	ClientID    uuid.UUID  `json:"client_id" binding:"required"`
	InsuranceID *uuid.UUID `json:"insurance_id"`
	Make        string     `json:"make" binding:"max=100"`
	Model       string     `json:"model" binding:"max=100"`
	Year        int        `json:"year" binding:"omitempty,min=1900,max=2100"`
	Color       string     `json:"color" binding:"max=50"`
}

// UpdateCarRequest represents a partial update to a car
type UpdateCarRequest struct {
	ClientID    *uuid.UUID `json:"client_id"`
	InsuranceID *uuid.UUID `json:"insurance_id"`
	Make        *string    `json:"make" binding:"omitempty,max=100"`
	Model       *string    `json:"model" binding:"omitempty,max=100"`
	Year        *int       `json:"year" binding:"omitempty,min=1900,max=2100"`
	Color       *string    `json:"color" binding:"omitempty,max=50"`
}

// CarResponse represents a car in API responses
type CarResponse struct {
	UIN         string     `json:"uin"`
	ClientID    uuid.UUID  `json:"client_id"`
	InsuranceID *uuid.UUID `json:"insurance_id,omitempty"`
	Make        string     `json:"make"`
	Model       string     `json:"model"`
	Year        int        `json:"year"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToCarResponse maps a car aggregate to its API representation
func ToCarResponse(car *fleet.Car) CarResponse {
	return CarResponse{
		UIN:         car.UIN,
		ClientID:    car.ClientID,
		InsuranceID: car.InsuranceID,
		Make:        car.Make,
		Model:       car.Model,
		Year:        car.Year,
		Color:       car.Color,
		CreatedAt:   car.CreatedAt,
		UpdatedAt:   car.UpdatedAt,
		Version:     car.Version,
	}
}

// CreateInsuranceRequest represents a request to register an insurance policy
type CreateInsuranceRequest struct {
	Provider     string    `json:"provider" binding:"required,min=1,max=200"`
	PolicyNumber string    `json:"policy_number" binding:"required,min=1,max=100"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	ExpiryDate   time.Time `json:"expiry_date" binding:"required"`
}

// RenewInsuranceRequest represents a policy renewal
type RenewInsuranceRequest struct {
	ExpiryDate time.Time `json:"expiry_date" binding:"required"`
}

// InsuranceResponse represents an insurance policy in API responses
type InsuranceResponse struct {
	ID           uuid.UUID `json:"id"`
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	StartDate    time.Time `json:"start_date"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Expired      bool      `json:"expired"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToInsuranceResponse maps a policy to its API representation
func ToInsuranceResponse(policy *fleet.InsurancePolicy) InsuranceResponse {
	return InsuranceResponse{
		ID:           policy.ID,
		Provider:     policy.Provider,
		PolicyNumber: policy.PolicyNumber,
		StartDate:    policy.StartDate,
		ExpiryDate:   policy.ExpiryDate,
		Expired:      policy.IsExpired(),
		CreatedAt:    policy.CreatedAt,
		UpdatedAt:    policy.UpdatedAt,
	}
}

// ListFilter represents list query options for cars and policies
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
