package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La mutación de catálogo y su entrada de
// auditoría viajan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repos) error) error
}

// CatalogPtr restringe PT a *T con snapshot de auditoría y timestamps propios.
type CatalogPtr[T any] interface {
	*T
	entity.Auditable
	Touch(now time.Time, created bool)
}

// CatalogUseCase es el caso de uso CRUD genérico para entidades de catálogo
// (Category, Location, Supplier): una sola implementación parametrizada por
// tipo en lugar de un caso de uso casi idéntico por entidad. Toda mutación
// queda auditada dentro de la misma transacción.
type CatalogUseCase[T any, PT CatalogPtr[T]] struct {
	repo     repository.Crud[T]
	pick     func(repository.Repos) repository.Crud[T]
	txRunner TxRunner
	now      func() time.Time
}

// NewCatalogUseCase construye el caso de uso. repo se usa para lecturas fuera
// de transacción; pick selecciona el repositorio equivalente atado a la tx.
func NewCatalogUseCase[T any, PT CatalogPtr[T]](
	repo repository.Crud[T],
	pick func(repository.Repos) repository.Crud[T],
	txRunner TxRunner,
	now func() time.Time,
) *CatalogUseCase[T, PT] {
	if now == nil {
		now = time.Now
	}
	return &CatalogUseCase[T, PT]{repo: repo, pick: pick, txRunner: txRunner, now: now}
}

// Create persiste la entidad y registra la entrada CREATE del audit trail.
func (uc *CatalogUseCase[T, PT]) Create(ctx context.Context, e PT, actor audit.ActorContext) error {
	e.Touch(uc.now(), true)
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := uc.pick(r).Create(ctx, (*T)(e)); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		_, err := rec.RecordCreate(ctx, e.AuditTable(), e.AuditID(), e.AuditSnapshot(), actor)
		return err
	})
}

// GetByID obtiene una entidad (nil si no existe).
func (uc *CatalogUseCase[T, PT]) GetByID(ctx context.Context, id int64) (PT, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return PT(t), nil
}

// List lista entidades con paginación por limit/offset y el total.
func (uc *CatalogUseCase[T, PT]) List(ctx context.Context, limit, offset int) ([]*T, int64, error) {
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

// Update carga la entidad, aplica los cambios y registra el UPDATE con los
// snapshots antes/después, todo en una transacción.
func (uc *CatalogUseCase[T, PT]) Update(ctx context.Context, id int64, apply func(PT) error, actor audit.ActorContext) (PT, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out PT
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		crud := uc.pick(r)
		t, err := crud.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		e := PT(t)
		oldSnapshot := e.AuditSnapshot()
		if err := apply(e); err != nil {
			return err
		}
		e.Touch(uc.now(), false)
		if err := crud.Update(ctx, t); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		if _, err := rec.RecordUpdate(ctx, e.AuditTable(), e.AuditID(), oldSnapshot, e.AuditSnapshot(), actor); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete borra la entidad y registra el DELETE con su último snapshot.
func (uc *CatalogUseCase[T, PT]) Delete(ctx context.Context, id int64, actor audit.ActorContext) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		crud := uc.pick(r)
		t, err := crud.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		e := PT(t)
		if err := crud.Delete(ctx, id); err != nil {
			return err
		}
		rec := audit.NewRecorder(r.AuditLogs, uc.now)
		_, err = rec.RecordDelete(ctx, e.AuditTable(), e.AuditID(), e.AuditSnapshot(), actor)
		return err
	})
}
