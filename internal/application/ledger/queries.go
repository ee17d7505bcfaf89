package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el kardex.
// Orden garantizado: created_at DESC con desempate por id DESC, determinista.
type MovementQueryUseCase struct {
	movements repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movements repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movements: movements}
}

// Page resultado paginado de movimientos. Las páginas son 1-based.
type Page struct {
	Items      []*entity.Movement
	Page       int
	PageSize   int
	Total      int64
	TotalPages int64
}

// GetByID obtiene un movimiento (nil si no existe).
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.GetByID(ctx, id)
}

// ListByProduct lista los movimientos de un producto, paginados.
// Una página fuera de rango devuelve un slice vacío, nunca un error.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID int64, page, pageSize int) (*Page, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	page, pageSize, offset, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}
	items, err := uc.movements.ListByProduct(ctx, productID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movements.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, pageSize, total), nil
}

// ListByUser lista los movimientos registrados por un usuario, paginados.
func (uc *MovementQueryUseCase) ListByUser(ctx context.Context, userID int64, page, pageSize int) (*Page, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	page, pageSize, offset, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}
	items, err := uc.movements.ListByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movements.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newPage(items, page, pageSize, total), nil
}

// ListRecent devuelve los últimos limit movimientos, el más reciente primero.
func (uc *MovementQueryUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.movements.ListRecent(ctx, limit)
}

// ListByDateRange lista movimientos con created_at dentro de [from, to].
func (uc *MovementQueryUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.ListByDateRange(ctx, from, to)
}

// StatsForProduct agregados del kardex de un producto, consistentes con los
// movimientos visibles al momento de la llamada (sin caché).
func (uc *MovementQueryUseCase) StatsForProduct(ctx context.Context, productID int64) (*repository.MovementStats, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.movements.StatsByProduct(ctx, productID)
}

// normalizePage valida y normaliza la paginación 1-based.
func normalizePage(page, pageSize int) (p, size, offset int, err error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 || pageSize < 1 {
		return 0, 0, 0, domain.ErrInvalidInput
	}
	return page, pageSize, (page - 1) * pageSize, nil
}

func newPage(items []*entity.Movement, page, pageSize int, total int64) *Page {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	if items == nil {
		items = []*entity.Movement{}
	}
	return &Page{Items: items, Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}
