package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementStats contadores agregados del kardex de un producto.
type MovementStats struct {
	TotalMovements   int64
	InCount          int64
	OutCount         int64
	AdjustmentCount  int64
	TotalQuantityIn  int64
	TotalQuantityOut int64
}

// MovementRepository define el puerto de persistencia del kardex.
// El store es append-only: no hay Update ni Delete de movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Movement, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error)
	StatsByProduct(ctx context.Context, productID int64) (*MovementStats, error)
}
