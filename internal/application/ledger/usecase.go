package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// AuditTableMovements nombre lógico de los movimientos en el audit trail.
const AuditTableMovements = "product_movements"

// RegisterMovementUseCase registra movimientos de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), revalida las cantidades
// contra el valor persistido, inserta el movimiento, actualiza la cantidad
// denormalizada del producto y escribe la entrada de auditoría correlacionada.
// Todo dentro de una sola transacción.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. now en nil usa time.Now.
func NewRegisterMovementUseCase(txRunner TxRunner, now func() time.Time) *RegisterMovementUseCase {
	if now == nil {
		now = time.Now
	}
	return &RegisterMovementUseCase{txRunner: txRunner, now: now}
}

// MovementInput candidato a movimiento. PreviousQuantity y NewQuantity son los
// valores que el caller observó y espera; se revalidan contra el store.
type MovementInput struct {
	ProductID        int64
	Type             string
	Quantity         int64
	PreviousQuantity int64
	NewQuantity      int64
	Reason           string
	UserID           int64
}

// Register valida e inserta un movimiento. En caso de violación de invariantes
// no persiste nada; en fallas de storage la transacción se revierte completa,
// así que el caller puede reintentar sin riesgo de estado parcial.
//
// La serialización por producto viene del bloqueo de fila: dos OUT concurrentes
// sobre el mismo producto se encolan en GetForUpdate, y el segundo encuentra la
// cantidad ya descontada, con lo que su PreviousQuantity obsoleto se rechaza
// con ErrConflict. Nunca pueden confirmar ambos.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInput, actor audit.ActorContext) (*entity.Movement, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, input.Type)
	}

	mov := &entity.Movement{
		ProductID:        input.ProductID,
		Type:             input.Type,
		Quantity:         input.Quantity,
		PreviousQuantity: input.PreviousQuantity,
		NewQuantity:      input.NewQuantity,
		Reason:           input.Reason,
		UserID:           input.UserID,
		CreatedAt:        uc.now(),
	}
	// Rechazo síncrono antes de tocar storage: el caller decide si reintenta
	// con datos corregidos.
	if err := mov.Validate(); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Revalidación contra el valor persistido. Protege contra lecturas
		// obsoletas del caller una vez adquirido el lock de fila.
		if product.Quantity != mov.PreviousQuantity {
			return fmt.Errorf("%w: previous_quantity obsoleto (persistido %d, recibido %d)",
				domain.ErrConflict, product.Quantity, mov.PreviousQuantity)
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return err
		}
		if err := r.Products.UpdateQuantity(ctx, product.ID, mov.NewQuantity); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		_, err = rec.RecordCreate(ctx, AuditTableMovements, mov.ID, mov.AuditSnapshot(), actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
