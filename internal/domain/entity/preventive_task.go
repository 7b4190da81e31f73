package entity

import "time"

// Frecuencias de mantenimiento preventivo. Los intervalos son fijos
// (mensual = 30 días, no mes calendario); ver maintenance.NextDueDate.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Estados de una tarea preventiva.
const (
	PreventiveActive    = "ACTIVE"
	PreventivePaused    = "PAUSED"
	PreventiveCompleted = "COMPLETED"
)

// PreventiveTask representa una tarea de mantenimiento preventivo recurrente.
type PreventiveTask struct {
	ID                  string
	CompanyID           string
	Title               string
	Description         string
	AssetLocation       string
	Frequency           string // ver constantes Frequency*
	NextDueDate         time.Time
	AssignedTechnicians []string
	LastCompletedDate   *time.Time
	Status              string
	CreatedAt           time.Time
}
