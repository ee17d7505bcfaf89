package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CreateProductRequest alta de producto. La cantidad inicial siempre es 0:
// el stock entra con movimientos IN.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	LocationID  *int64          `json:"location_id,omitempty"`
	MinStock    int64           `json:"min_stock,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// UpdateProductRequest actualización parcial. Quantity no es editable por acá.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	SupplierID  *int64           `json:"supplier_id,omitempty"`
	LocationID  *int64           `json:"location_id,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
}

// ProductResponse un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	SupplierID  *int64          `json:"supplier_id,omitempty"`
	LocationID  *int64          `json:"location_id,omitempty"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		LocationID:  p.LocationID,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		Price:       p.Price,
		Cost:        p.Cost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
