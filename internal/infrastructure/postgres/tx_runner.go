package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/application/auth"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Todos los puertos TxRunner de la capa de aplicación comparten la misma forma.
var (
	_ ledger.TxRunner  = (*TxRunner)(nil)
	_ audit.TxRunner   = (*TxRunner)(nil)
	_ usecase.TxRunner = (*TxRunner)(nil)
	_ auth.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, entregando
// el juego completo de repositorios atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma el juego de repositorios sobre un mismo Querier (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Movements:  NewMovementRepository(q),
		Products:   NewProductRepository(q),
		Categories: NewCategoryRepository(q),
		Locations:  NewLocationRepository(q),
		Suppliers:  NewSupplierRepository(q),
		Users:      NewUserRepository(q),
		AuditLogs:  NewAuditLogRepository(q),
	}
}
