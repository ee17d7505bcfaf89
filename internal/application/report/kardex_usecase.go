package report

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// KardexPDFGenerator genera la representación en PDF del kardex de un producto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, product *entity.Product, movements []*entity.Movement, stats *repository.MovementStats, generatedAt time.Time) ([]byte, error)
}

// KardexUseCase arma el reporte kardex: historia completa de movimientos de un
// producto más sus agregados, renderizada a PDF.
type KardexUseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	generator KardexPDFGenerator
	now       func() time.Time
}

// NewKardexUseCase construye el caso de uso. now en nil usa time.Now.
func NewKardexUseCase(
	products repository.ProductRepository,
	movements repository.MovementRepository,
	generator KardexPDFGenerator,
	now func() time.Time,
) *KardexUseCase {
	if now == nil {
		now = time.Now
	}
	return &KardexUseCase{products: products, movements: movements, generator: generator, now: now}
}

// GenerateForProduct genera el PDF del kardex del producto y devuelve sus bytes.
func (uc *KardexUseCase) GenerateForProduct(ctx context.Context, productID int64) ([]byte, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	// Historia completa: limit <= 0 significa sin tope.
	movements, err := uc.movements.ListByProduct(ctx, productID, 0, 0)
	if err != nil {
		return nil, err
	}
	stats, err := uc.movements.StatsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateKardexPDF(ctx, product, movements, stats, uc.now())
}
