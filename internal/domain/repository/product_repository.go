package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ProductRepository extiende el CRUD genérico con las operaciones que el motor
// del kardex necesita: bloqueo de fila y actualización de cantidad en la misma
// transacción del movimiento.
type ProductRepository interface {
	Crud[entity.Product]
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo producto.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// UpdateQuantity actualiza solo la cantidad denormalizada (uso exclusivo del kardex).
	UpdateQuantity(ctx context.Context, id, quantity int64) error
}
