package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento, la cantidad del
// producto y la entrada de auditoría se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}
