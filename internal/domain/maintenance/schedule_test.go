package maintenance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiOrden-api/internal/domain/maintenance"
)

// Vector del spec de pruebas: mensual desde 2024-01-01 son 30 días exactos,
// 2024-01-31 (no mes calendario).
func TestNextDueDate_MensualSonTreintaDiasFijos(t *testing.T) {
	base, err := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	next := maintenance.NextDueDate(base, "monthly")
	assert.Equal(t, "2024-01-31T00:00:00Z", next.UTC().Format(time.RFC3339))
}

func TestNextDueDate_TodasLasFrecuencias(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		frequency string
		days      int
	}{
		{"daily", 1},
		{"weekly", 7},
		{"monthly", 30},
		{"yearly", 365},
		{"cada-luna-llena", 30}, // desconocida cae al intervalo mensual
		{"", 30},
	}
	for _, tc := range cases {
		next := maintenance.NextDueDate(base, tc.frequency)
		assert.Equal(t, base.AddDate(0, 0, tc.days), next,
			"frecuencia %q debe sumar %d días", tc.frequency, tc.days)
	}
}

func TestValidFrequency(t *testing.T) {
	for _, f := range []string{"daily", "weekly", "monthly", "yearly"} {
		assert.True(t, maintenance.ValidFrequency(f), f)
	}
	assert.False(t, maintenance.ValidFrequency("quincenal"))
	assert.False(t, maintenance.ValidFrequency(""))
}
