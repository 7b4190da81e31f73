package entity

import "time"

// Industrias soportadas. La industria selecciona la variante de reglas de
// negocio por tenant (ej: en furniture solo los admins crean órdenes; en
// technical_solutions toda orden requiere asset_code).
const (
	IndustryFurniture          = "furniture"
	IndustryAutomotive         = "automotive"
	IndustryTechnicalSolutions = "technical_solutions"
)

// Company representa una organización/tenant del sistema.
type Company struct {
	ID           string
	Name         string
	Industry     string // ver constantes Industry*
	Description  string
	Address      string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
}
