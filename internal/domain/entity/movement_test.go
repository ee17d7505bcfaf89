package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuantities(t *testing.T) {
	cases := []struct {
		name     string
		movType  string
		qty      int64
		prev     int64
		next     int64
		wantRule string // vacío = válido
	}{
		{"entrada consistente", MovementTypeIN, 5, 10, 15, ""},
		{"entrada desde cero", MovementTypeIN, 7, 0, 7, ""},
		{"entrada con suma incorrecta", MovementTypeIN, 5, 10, 14, "previous_quantity + quantity"},
		{"salida consistente", MovementTypeOUT, 3, 10, 7, ""},
		{"salida que agota el stock", MovementTypeOUT, 10, 10, 0, ""},
		{"salida con resta incorrecta", MovementTypeOUT, 3, 10, 8, "previous_quantity - quantity"},
		{"salida mayor al stock", MovementTypeOUT, 11, 10, 0, "stock insuficiente"},
		{"ajuste a valor absoluto", MovementTypeADJUSTMENT, 25, 10, 25, ""},
		{"ajuste inconsistente", MovementTypeADJUSTMENT, 25, 10, 24, "new_quantity == quantity"},
		{"cantidad cero", MovementTypeIN, 0, 10, 10, "quantity debe ser > 0"},
		{"cantidad negativa", MovementTypeOUT, -1, 10, 11, "quantity debe ser > 0"},
		{"previous negativo", MovementTypeIN, 5, -1, 4, "previous_quantity debe ser >= 0"},
		{"new negativo", MovementTypeADJUSTMENT, 5, 10, -5, "new_quantity debe ser >= 0"},
		{"tipo desconocido", "TRANSFER", 5, 10, 15, "tipo de movimiento desconocido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuantities(tc.movType, tc.qty, tc.prev, tc.next)
			if tc.wantRule == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var iv *InvariantViolation
			require.ErrorAs(t, err, &iv)
			assert.Contains(t, iv.Rule, tc.wantRule)
		})
	}
}

// Un OUT que dejaría stock negativo reporta stock insuficiente aunque la
// ecuación sea "consistente" con el negativo.
func TestValidateQuantities_SalidaNegativaReportaStock(t *testing.T) {
	err := ValidateQuantities(MovementTypeOUT, 15, 10, -5)
	require.Error(t, err)
	var iv *InvariantViolation
	require.ErrorAs(t, err, &iv)
	assert.Contains(t, iv.Rule, "new_quantity debe ser >= 0")
}

func TestMovement_Validate(t *testing.T) {
	base := func() *Movement {
		return &Movement{
			ProductID:        1,
			Type:             MovementTypeIN,
			Quantity:         5,
			PreviousQuantity: 0,
			NewQuantity:      5,
			UserID:           1,
		}
	}

	t.Run("válido", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("sin producto", func(t *testing.T) {
		m := base()
		m.ProductID = 0
		assert.Error(t, m.Validate())
	})

	t.Run("sin usuario", func(t *testing.T) {
		m := base()
		m.UserID = 0
		assert.Error(t, m.Validate())
	})

	t.Run("motivo en el límite", func(t *testing.T) {
		m := base()
		m.Reason = strings.Repeat("a", ReasonMaxLen)
		assert.NoError(t, m.Validate())
	})

	t.Run("motivo demasiado largo", func(t *testing.T) {
		m := base()
		m.Reason = strings.Repeat("a", ReasonMaxLen+1)
		assert.Error(t, m.Validate())
	})
}

func TestInvariantViolation_Error(t *testing.T) {
	err := ValidateQuantities(MovementTypeIN, 5, 10, 14)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "IN")
	assert.Contains(t, msg, "esperado 15")
	assert.Contains(t, msg, "actual 14")
}
