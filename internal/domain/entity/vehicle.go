package entity

import "time"

// Vehicle representa un vehículo registrado por la empresa (talleres automotrices).
type Vehicle struct {
	ID            string
	CompanyID     string
	PlateNumber   string
	Make          string
	Model         string
	Year          int
	VIN           string
	OwnerClientID *string // cliente dueño del vehículo, si aplica
	CreatedAt     time.Time
}
