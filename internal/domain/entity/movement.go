package entity

import (
	"fmt"
	"time"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste a un valor absoluto
)

// ReasonMaxLen longitud máxima del motivo de un movimiento.
const ReasonMaxLen = 200

// Movement representa un movimiento de stock: un cambio atómico a la cantidad
// de un producto. Es inmutable y append-only; nunca se actualiza ni se borra.
type Movement struct {
	ID               int64
	ProductID        int64
	Type             string
	Quantity         int64 // magnitud del cambio, siempre > 0
	PreviousQuantity int64 // cantidad antes del movimiento
	NewQuantity      int64 // cantidad después del movimiento
	Reason           string
	UserID           int64 // actor que registró el movimiento
	CreatedAt        time.Time
}

// InvariantViolation describe qué ecuación del movimiento falló, con los
// valores esperado y real. Un movimiento que la produce se rechaza completo.
type InvariantViolation struct {
	Type     string
	Rule     string
	Expected int64
	Actual   int64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("movimiento %s inválido: %s (esperado %d, actual %d)",
		e.Type, e.Rule, e.Expected, e.Actual)
}

// ValidateQuantities valida que las cantidades de un movimiento sean
// aritméticamente consistentes con su tipo:
//
//	IN:         new == previous + quantity
//	OUT:        previous >= quantity  y  new == previous - quantity
//	ADJUSTMENT: new == quantity (valor absoluto, no delta)
//
// Función pura, sin efectos; segura para llamadas concurrentes.
func ValidateQuantities(movementType string, quantity, previousQuantity, newQuantity int64) error {
	if quantity <= 0 {
		return &InvariantViolation{Type: movementType, Rule: "quantity debe ser > 0", Expected: 1, Actual: quantity}
	}
	if previousQuantity < 0 {
		return &InvariantViolation{Type: movementType, Rule: "previous_quantity debe ser >= 0", Expected: 0, Actual: previousQuantity}
	}
	if newQuantity < 0 {
		return &InvariantViolation{Type: movementType, Rule: "new_quantity debe ser >= 0", Expected: 0, Actual: newQuantity}
	}
	switch movementType {
	case MovementTypeIN:
		if want := previousQuantity + quantity; newQuantity != want {
			return &InvariantViolation{Type: movementType, Rule: "new_quantity == previous_quantity + quantity", Expected: want, Actual: newQuantity}
		}
	case MovementTypeOUT:
		// Una salida que dejaría stock negativo se rechaza antes de mirar la
		// ecuación: no importa si new_quantity es "consistente" con un negativo.
		if previousQuantity < quantity {
			return &InvariantViolation{Type: movementType, Rule: "stock insuficiente: previous_quantity >= quantity", Expected: quantity, Actual: previousQuantity}
		}
		if want := previousQuantity - quantity; newQuantity != want {
			return &InvariantViolation{Type: movementType, Rule: "new_quantity == previous_quantity - quantity", Expected: want, Actual: newQuantity}
		}
	case MovementTypeADJUSTMENT:
		if newQuantity != quantity {
			return &InvariantViolation{Type: movementType, Rule: "new_quantity == quantity", Expected: quantity, Actual: newQuantity}
		}
	default:
		return &InvariantViolation{Type: movementType, Rule: "tipo de movimiento desconocido"}
	}
	return nil
}

// Validate verifica los invariantes completos del movimiento (referencias y cantidades).
func (m *Movement) Validate() error {
	if m.ProductID <= 0 {
		return &InvariantViolation{Type: m.Type, Rule: "product_id debe ser > 0", Expected: 1, Actual: m.ProductID}
	}
	if m.UserID <= 0 {
		return &InvariantViolation{Type: m.Type, Rule: "user_id debe ser > 0", Expected: 1, Actual: m.UserID}
	}
	if len(m.Reason) > ReasonMaxLen {
		return &InvariantViolation{Type: m.Type, Rule: "reason excede 200 caracteres", Expected: ReasonMaxLen, Actual: int64(len(m.Reason))}
	}
	return ValidateQuantities(m.Type, m.Quantity, m.PreviousQuantity, m.NewQuantity)
}

// AuditSnapshot devuelve la representación del movimiento para el audit trail.
func (m *Movement) AuditSnapshot() map[string]any {
	return map[string]any{
		"product_id":        m.ProductID,
		"type":              m.Type,
		"quantity":          m.Quantity,
		"previous_quantity": m.PreviousQuantity,
		"new_quantity":      m.NewQuantity,
		"reason":            m.Reason,
		"user_id":           m.UserID,
	}
}
