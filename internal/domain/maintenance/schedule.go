// Package maintenance contiene la aritmética de fechas SLA del mantenimiento
// preventivo.
package maintenance

import (
	"time"

	"github.com/jhoicas/ServiOrden-api/internal/domain/entity"
)

// Intervalos fijos por frecuencia. Mensual es 30 días exactos (no mes
// calendario) y anual 365; una frecuencia desconocida cae al intervalo mensual.
const (
	intervalDaily   = 24 * time.Hour
	intervalWeekly  = 7 * 24 * time.Hour
	intervalMonthly = 30 * 24 * time.Hour
	intervalYearly  = 365 * 24 * time.Hour
)

// NextDueDate calcula la próxima fecha de vencimiento: base + intervalo(frecuencia).
// Base es "ahora" al crear la tarea, o la fecha de última completación al
// completarla.
func NextDueDate(base time.Time, frequency string) time.Time {
	switch frequency {
	case entity.FrequencyDaily:
		return base.Add(intervalDaily)
	case entity.FrequencyWeekly:
		return base.Add(intervalWeekly)
	case entity.FrequencyYearly:
		return base.Add(intervalYearly)
	case entity.FrequencyMonthly:
		return base.Add(intervalMonthly)
	default:
		return base.Add(intervalMonthly)
	}
}

// ValidFrequency indica si la frecuencia es una de las conocidas.
func ValidFrequency(f string) bool {
	switch f {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly, entity.FrequencyYearly:
		return true
	}
	return false
}
