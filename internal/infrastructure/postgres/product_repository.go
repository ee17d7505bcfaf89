package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El CRUD base lo aporta el CrudRepo genérico; acá van
// las operaciones propias del motor del kardex.
type ProductRepo struct {
	*CrudRepo[entity.Product]
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{CrudRepo: NewCrudRepository(q, productTableSpec())}
}

func productTableSpec() TableSpec[entity.Product] {
	return TableSpec[entity.Product]{
		Name: "products",
		Columns: []string{
			"sku", "name", "description", "category_id", "supplier_id", "location_id",
			"quantity", "min_stock", "price", "cost", "created_at", "updated_at",
		},
		OrderBy: "created_at DESC, id DESC",
		Values: func(p *entity.Product) []any {
			return []any{
				p.SKU, p.Name, p.Description, p.CategoryID, p.SupplierID, p.LocationID,
				p.Quantity, p.MinStock, p.Price, p.Cost, p.CreatedAt, p.UpdatedAt,
			}
		},
		Fields: func(p *entity.Product) []any {
			return []any{
				&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID,
				&p.LocationID, &p.Quantity, &p.MinStock, &p.Price, &p.Cost,
				&p.CreatedAt, &p.UpdatedAt,
			}
		},
	}
}

// GetBySKU obtiene un producto por su código único. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, r.selectSQL+" WHERE sku = $1", sku).Scan(r.spec.Fields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product by sku", err)
	}
	return &p, nil
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
// Serializa movimientos concurrentes sobre el mismo producto: el segundo writer
// espera acá y relee la cantidad ya actualizada. Solo tiene sentido con un
// Querier transaccional.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, r.selectSQL+" WHERE id = $1 FOR UPDATE", id).Scan(r.spec.Fields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("lock product", err)
	}
	return &p, nil
}

// UpdateQuantity actualiza solo la cantidad denormalizada. Uso exclusivo del
// motor del kardex, dentro de la misma transacción que inserta el movimiento.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return storageErr("update product quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return storageErr("update product quantity", pgx.ErrNoRows)
	}
	return nil
}
