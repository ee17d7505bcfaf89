package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auditable expone la identidad y el snapshot que el audit trail registra
// para una entidad. Lo implementan todas las entidades con mutaciones auditadas.
type Auditable interface {
	AuditTable() string
	AuditID() int64
	AuditSnapshot() map[string]any
}

// Product representa un producto o SKU del inventario.
// Quantity es la cantidad disponible denormalizada: solo la modifica el motor
// del kardex dentro de la misma transacción que inserta el movimiento.
type Product struct {
	ID          int64
	SKU         string // código único
	Name        string
	Description string
	CategoryID  *int64
	SupplierID  *int64
	LocationID  *int64
	Quantity    int64           // unidades en existencia (entero, nunca negativo)
	MinStock    int64           // punto de reorden
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditTable nombre lógico para el audit trail.
func (p *Product) AuditTable() string { return "products" }

// AuditID identificador del registro auditado.
func (p *Product) AuditID() int64 { return p.ID }

// AuditSnapshot snapshot serializable del estado del producto.
// No incluye timestamps: el diff solo reportaría ruido.
func (p *Product) AuditSnapshot() map[string]any {
	return map[string]any{
		"sku":         p.SKU,
		"name":        p.Name,
		"description": p.Description,
		"category_id": p.CategoryID,
		"supplier_id": p.SupplierID,
		"location_id": p.LocationID,
		"quantity":    p.Quantity,
		"min_stock":   p.MinStock,
		"price":       p.Price.String(),
		"cost":        p.Cost.String(),
	}
}

// Touch actualiza los timestamps del producto.
func (p *Product) Touch(now time.Time, created bool) {
	if created {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
