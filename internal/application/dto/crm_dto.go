package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest alta de cliente del tenant.
type CreateClientRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
}

// ClientResponse cliente.
type ClientResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateEmployeeRequest alta de ficha de empleado.
type CreateEmployeeRequest struct {
	UserID     string          `json:"user_id"`
	Position   string          `json:"position"`
	Skills     []string        `json:"skills"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// EmployeeResponse ficha de empleado.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	UserID     string          `json:"user_id"`
	Position   string          `json:"position,omitempty"`
	Skills     []string        `json:"skills,omitempty"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CreateVehicleRequest alta de vehículo.
type CreateVehicleRequest struct {
	PlateNumber   string  `json:"plate_number"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	VIN           string  `json:"vin"`
	OwnerClientID *string `json:"owner_client_id,omitempty"`
}

// VehicleResponse vehículo.
type VehicleResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	PlateNumber   string    `json:"plate_number"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Year          int       `json:"year,omitempty"`
	VIN           string    `json:"vin,omitempty"`
	OwnerClientID *string   `json:"owner_client_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
