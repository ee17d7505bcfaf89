package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// fakeQueryRepo captura los argumentos de paginación que recibe el store y
// devuelve respuestas enlatadas.
type fakeQueryRepo struct {
	repository.MovementRepository

	items []*entity.Movement
	total int64

	gotLimit  int
	gotOffset int
}

func (f *fakeQueryRepo) ListByProduct(_ context.Context, _ int64, limit, offset int) ([]*entity.Movement, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.items, nil
}

func (f *fakeQueryRepo) CountByProduct(_ context.Context, _ int64) (int64, error) {
	return f.total, nil
}

func (f *fakeQueryRepo) ListRecent(_ context.Context, limit int) ([]*entity.Movement, error) {
	f.gotLimit = limit
	return f.items, nil
}

func (f *fakeQueryRepo) ListByDateRange(_ context.Context, _, _ time.Time) ([]*entity.Movement, error) {
	return f.items, nil
}

func TestListByProduct_Paginacion(t *testing.T) {
	repo := &fakeQueryRepo{
		items: []*entity.Movement{{ID: 3}, {ID: 2}},
		total: 45,
	}
	uc := ledger.NewMovementQueryUseCase(repo)

	page, err := uc.ListByProduct(context.Background(), 1, 3, 20)
	require.NoError(t, err)

	// Página 3 de 20 → offset 40.
	assert.Equal(t, 20, repo.gotLimit)
	assert.Equal(t, 40, repo.gotOffset)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, int64(45), page.Total)
	assert.Equal(t, int64(3), page.TotalPages, "45 elementos en páginas de 20 son 3 páginas")
	assert.Len(t, page.Items, 2)
}

func TestListByProduct_Defaults(t *testing.T) {
	repo := &fakeQueryRepo{total: 5}
	uc := ledger.NewMovementQueryUseCase(repo)

	page, err := uc.ListByProduct(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 0, repo.gotOffset)
	assert.NotNil(t, page.Items, "una página vacía serializa como [], no null")
}

func TestListByProduct_PaginaInvalida(t *testing.T) {
	uc := ledger.NewMovementQueryUseCase(&fakeQueryRepo{})

	_, err := uc.ListByProduct(context.Background(), 1, -1, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListByProduct(context.Background(), 1, 1, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListByProduct(context.Background(), 0, 1, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListRecent_LimiteDefault(t *testing.T) {
	repo := &fakeQueryRepo{}
	uc := ledger.NewMovementQueryUseCase(repo)

	_, err := uc.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotLimit)
}

func TestListByDateRange_RangoInvalido(t *testing.T) {
	uc := ledger.NewMovementQueryUseCase(&fakeQueryRepo{})
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.ListByDateRange(context.Background(), from, from.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListByDateRange(context.Background(), time.Time{}, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
