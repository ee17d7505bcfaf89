package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, previous_quantity, new_quantity, reason, user_id, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia del kardex. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna el ID generado por la secuencia.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO product_movements (product_id, type, quantity, previous_quantity, new_quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Type, m.Quantity, m.PreviousQuantity, m.NewQuantity,
		m.Reason, m.UserID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM product_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get movement", err)
	}
	return m, nil
}

// ListByProduct lista el kardex de un producto, más reciente primero.
// limit <= 0 significa sin tope (historia completa).
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM product_movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{productID}
	query, args = appendLimitOffset(query, args, limit, offset)
	return r.list(ctx, "list movements by product", query, args...)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, storageErr("count movements by product", err)
	}
	return n, nil
}

// ListByUser lista los movimientos registrados por un usuario, más reciente primero.
func (r *MovementRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM product_movements WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	query, args = appendLimitOffset(query, args, limit, offset)
	return r.list(ctx, "list movements by user", query, args...)
}

// CountByUser cuenta los movimientos registrados por un usuario.
func (r *MovementRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_movements WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, storageErr("count movements by user", err)
	}
	return n, nil
}

// ListRecent lista los últimos movimientos de todo el inventario.
func (r *MovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM product_movements
		ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.list(ctx, "list recent movements", query, limit)
}

// ListByDateRange lista movimientos con created_at en [from, to], más reciente primero.
func (r *MovementRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM product_movements WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, "list movements by date range", query, from, to)
}

// StatsByProduct calcula los agregados del kardex de un producto en una sola consulta.
func (r *MovementRepo) StatsByProduct(ctx context.Context, productID int64) (*repository.MovementStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE type = 'IN'),
			COUNT(*) FILTER (WHERE type = 'OUT'),
			COUNT(*) FILTER (WHERE type = 'ADJUSTMENT'),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE type = 'OUT'), 0)
		FROM product_movements WHERE product_id = $1`
	var s repository.MovementStats
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&s.TotalMovements, &s.InCount, &s.OutCount, &s.AdjustmentCount,
		&s.TotalQuantityIn, &s.TotalQuantityOut,
	)
	if err != nil {
		return nil, storageErr("movement stats", err)
	}
	return &s, nil
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	movements := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return movements, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity,
		&m.NewQuantity, &m.Reason, &m.UserID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// appendLimitOffset agrega LIMIT/OFFSET a la consulta. limit <= 0 no acota.
func appendLimitOffset(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
