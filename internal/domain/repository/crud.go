package repository

import "context"

// Crud es el puerto genérico de persistencia para entidades de catálogo
// (Category, Location, Supplier). Reemplaza la duplicación de un repositorio
// CRUD por entidad: una sola abstracción parametrizada por tipo.
type Crud[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, limit, offset int) ([]*T, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id int64) error
}
