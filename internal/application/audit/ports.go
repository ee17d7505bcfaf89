package audit

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La poda de retención lo usa para borrar y
// registrar su meta-auditoría de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}
