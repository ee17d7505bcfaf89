package dto

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// RegisterMovementRequest candidato a movimiento de stock.
type RegisterMovementRequest struct {
	ProductID        int64  `json:"product_id"`
	Type             string `json:"type"` // IN | OUT | ADJUSTMENT
	Quantity         int64  `json:"quantity"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
	Reason           string `json:"reason,omitempty"`
}

// MovementResponse un movimiento del kardex.
type MovementResponse struct {
	ID               int64     `json:"id"`
	ProductID        int64     `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	UserID           int64     `json:"user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementStatsResponse agregados del kardex de un producto.
type MovementStatsResponse struct {
	ProductID        int64 `json:"product_id"`
	TotalMovements   int64 `json:"total_movements"`
	InCount          int64 `json:"in_count"`
	OutCount         int64 `json:"out_count"`
	AdjustmentCount  int64 `json:"adjustment_count"`
	TotalQuantityIn  int64 `json:"total_quantity_in"`
	TotalQuantityOut int64 `json:"total_quantity_out"`
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		UserID:           m.UserID,
		CreatedAt:        m.CreatedAt,
	}
}

// ToMovementList mapea un slice de entidades.
func ToMovementList(items []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

// ToMovementStats mapea los agregados del repositorio.
func ToMovementStats(productID int64, s *repository.MovementStats) MovementStatsResponse {
	return MovementStatsResponse{
		ProductID:        productID,
		TotalMovements:   s.TotalMovements,
		InCount:          s.InCount,
		OutCount:         s.OutCount,
		AdjustmentCount:  s.AdjustmentCount,
		TotalQuantityIn:  s.TotalQuantityIn,
		TotalQuantityOut: s.TotalQuantityOut,
	}
}
