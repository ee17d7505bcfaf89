package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedFields(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
		want []string
	}{
		{
			name: "cambio y clave nueva",
			old:  `{"a":1,"b":2}`,
			new:  `{"a":1,"b":3,"c":4}`,
			want: []string{"b", "c"},
		},
		{
			name: "sin cambios",
			old:  `{"a":1,"b":"x"}`,
			new:  `{"b":"x","a":1}`,
			want: []string{},
		},
		{
			name: "clave eliminada",
			old:  `{"a":1,"b":2}`,
			new:  `{"a":1}`,
			want: []string{"b"},
		},
		{
			name: "null difiere de ausente",
			old:  `{"a":null}`,
			new:  `{}`,
			want: []string{"a"},
		},
		{
			name: "old vacío (CREATE)",
			old:  ``,
			new:  `{"a":1,"b":2}`,
			want: []string{"a", "b"},
		},
		{
			name: "anidados comparados por forma serializada",
			old:  `{"attrs":{"color":"rojo"}}`,
			new:  `{"attrs":{"color":"azul"}}`,
			want: []string{"attrs"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var oldRaw, newRaw json.RawMessage
			if tc.old != "" {
				oldRaw = json.RawMessage(tc.old)
			}
			if tc.new != "" {
				newRaw = json.RawMessage(tc.new)
			}
			got, err := ChangedFields(oldRaw, newRaw)
			require.NoError(t, err)
			if len(tc.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestChangedFields_JSONInvalido(t *testing.T) {
	_, err := ChangedFields(json.RawMessage(`{no es json`), nil)
	assert.Error(t, err)
}

func TestAuditLog_Validate(t *testing.T) {
	userID := int64(3)
	base := func() *AuditLog {
		return &AuditLog{
			TableName: "products",
			RecordID:  7,
			Action:    AuditActionCreate,
			UserID:    &userID,
			CreatedAt: time.Now(),
		}
	}

	t.Run("válido", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("sin tabla", func(t *testing.T) {
		a := base()
		a.TableName = ""
		assert.Error(t, a.Validate())
	})

	t.Run("tabla demasiado larga", func(t *testing.T) {
		a := base()
		a.TableName = strings.Repeat("x", TableNameMaxLen+1)
		assert.Error(t, a.Validate())
	})

	t.Run("acción desconocida", func(t *testing.T) {
		a := base()
		a.Action = "TRUNCATE"
		assert.Error(t, a.Validate())
	})

	t.Run("record_id cero rechazado para entidades", func(t *testing.T) {
		a := base()
		a.RecordID = 0
		assert.Error(t, a.Validate())
	})

	t.Run("record_id cero permitido en entradas de sistema", func(t *testing.T) {
		a := base()
		a.RecordID = 0
		assert.NoError(t, a.ValidateSystem())
	})

	t.Run("user_id presente pero inválido", func(t *testing.T) {
		a := base()
		bad := int64(0)
		a.UserID = &bad
		assert.Error(t, a.Validate())
	})

	t.Run("user_id nil es acción de sistema válida", func(t *testing.T) {
		a := base()
		a.UserID = nil
		assert.NoError(t, a.Validate())
	})
}
