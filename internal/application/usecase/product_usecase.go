package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad en existencia
// NO se modifica por acá: solo el motor del kardex la toca, vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. now en nil usa time.Now.
func NewProductUseCase(repo repository.ProductRepository, txRunner TxRunner, now func() time.Time) *ProductUseCase {
	if now == nil {
		now = time.Now
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: now}
}

// Create crea un producto con cantidad inicial 0 (el stock entra con movimientos IN).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor audit.ActorContext) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.MinStock < 0 {
		return nil, fmt.Errorf("%w: price, cost y min_stock no pueden ser negativos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	product := &entity.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		LocationID:  in.LocationID,
		Quantity:    0,
		MinStock:    in.MinStock,
		Price:       in.Price,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		_, err := rec.RecordCreate(ctx, product.AuditTable(), product.ID, product.AuditSnapshot(), actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto (nil si no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista productos con paginación y total.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update actualiza los campos editables de un producto. Quantity queda fuera:
// cambiarla requiere un movimiento. Registra UPDATE con snapshots antes/después.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest, actor audit.ActorContext) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		oldSnapshot := product.AuditSnapshot()
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.CategoryID != nil {
			product.CategoryID = in.CategoryID
		}
		if in.SupplierID != nil {
			product.SupplierID = in.SupplierID
		}
		if in.LocationID != nil {
			product.LocationID = in.LocationID
		}
		if in.MinStock != nil {
			if *in.MinStock < 0 {
				return fmt.Errorf("%w: min_stock negativo", domain.ErrInvalidInput)
			}
			product.MinStock = *in.MinStock
		}
		if in.Price != nil {
			if in.Price.LessThan(decimal.Zero) {
				return fmt.Errorf("%w: price negativo", domain.ErrInvalidInput)
			}
			product.Price = *in.Price
		}
		if in.Cost != nil {
			if in.Cost.LessThan(decimal.Zero) {
				return fmt.Errorf("%w: cost negativo", domain.ErrInvalidInput)
			}
			product.Cost = *in.Cost
		}
		product.UpdatedAt = uc.now()
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		if _, err := rec.RecordUpdate(ctx, product.AuditTable(), product.ID, oldSnapshot, product.AuditSnapshot(), actor); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra un producto sin existencias. Con stock distinto de cero se
// rechaza: primero hay que sacar las unidades con movimientos OUT/ADJUSTMENT.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64, actor audit.ActorContext) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity != 0 {
			return fmt.Errorf("%w: el producto aún tiene %d unidades", domain.ErrConflict, product.Quantity)
		}
		if err := r.Products.Delete(ctx, id); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		_, err = rec.RecordDelete(ctx, product.AuditTable(), product.ID, product.AuditSnapshot(), actor)
		return err
	})
}
