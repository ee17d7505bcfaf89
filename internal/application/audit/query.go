package audit

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// QueryUseCase consultas y reportes sobre el audit trail, más las dos únicas
// mutaciones permitidas: marcar revisado y la poda de retención.
type QueryUseCase struct {
	repo     repository.AuditLogRepository
	txRunner TxRunner
	now      func() time.Time
}

// NewQueryUseCase construye el caso de uso. now en nil usa time.Now.
func NewQueryUseCase(repo repository.AuditLogRepository, txRunner TxRunner, now func() time.Time) *QueryUseCase {
	if now == nil {
		now = time.Now
	}
	return &QueryUseCase{repo: repo, txRunner: txRunner, now: now}
}

// GetByID obtiene una entrada por ID (nil si no existe).
func (uc *QueryUseCase) GetByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	return uc.repo.GetByID(ctx, id)
}

// Find busca entradas según el filtro, newest-first. Valida el filtro antes de
// tocar el store.
func (uc *QueryUseCase) Find(ctx context.Context, filter repository.AuditLogFilter) ([]*entity.AuditLog, int64, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}
	list, err := uc.repo.Find(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// FindRecent devuelve las últimas limit entradas.
func (uc *QueryUseCase) FindRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.repo.Find(ctx, repository.AuditLogFilter{Limit: limit})
}

// FindByRecord devuelve la historia completa de un registro concreto.
func (uc *QueryUseCase) FindByRecord(ctx context.Context, table string, recordID int64) ([]*entity.AuditLog, error) {
	if table == "" || recordID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Find(ctx, repository.AuditLogFilter{TableName: table, RecordID: &recordID, Limit: -1})
}

// StatsOverall agregados globales del audit trail.
func (uc *QueryUseCase) StatsOverall(ctx context.Context) (*repository.AuditStats, error) {
	return uc.repo.Stats(ctx, repository.AuditLogFilter{})
}

// StatsForTable agregados de una tabla lógica.
func (uc *QueryUseCase) StatsForTable(ctx context.Context, table string) (*repository.AuditStats, error) {
	if table == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Stats(ctx, repository.AuditLogFilter{TableName: table})
}

// StatsForActor agregados de un actor.
func (uc *QueryUseCase) StatsForActor(ctx context.Context, userID int64) (*repository.AuditStats, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Stats(ctx, repository.AuditLogFilter{UserID: &userID})
}

// MarkReviewed marca una entrada como revisada. Idempotente: marcar una entrada
// ya revisada es un no-op exitoso. Transición one-way Unreviewed → Reviewed.
func (uc *QueryUseCase) MarkReviewed(ctx context.Context, id int64) (*entity.AuditLog, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	log, err := uc.repo.MarkReviewed(ctx, id)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, domain.ErrNotFound
	}
	return log, nil
}

// PruneOlderThan borra las entradas con created_at < cutoff y devuelve el
// conteo exacto. Borrado masivo e irreversible: corre en una transacción que
// también registra una meta-auditoría CREATE sobre "audit_logs", para que la
// poda misma quede visible en el trail. La restricción a rol administrador la
// aplica la capa HTTP.
func (uc *QueryUseCase) PruneOlderThan(ctx context.Context, cutoff time.Time, actor ActorContext) (int64, error) {
	if cutoff.IsZero() {
		return 0, domain.ErrInvalidInput
	}
	var deleted int64
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		n, err := r.AuditLogs.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		deleted = n
		rec := NewRecorder(r.AuditLogs, uc.now)
		_, err = rec.RecordSystem(ctx, "audit_logs", map[string]any{
			"operation": "retention_prune",
			"cutoff":    cutoff.UTC().Format(time.RFC3339),
			"deleted":   n,
		}, actor)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func validateFilter(f repository.AuditLogFilter) error {
	if len(f.TableName) > entity.TableNameMaxLen {
		return domain.ErrInvalidInput
	}
	if f.Action != "" {
		switch f.Action {
		case entity.AuditActionCreate, entity.AuditActionUpdate, entity.AuditActionDelete:
		default:
			return domain.ErrInvalidInput
		}
	}
	if f.RecordID != nil && *f.RecordID <= 0 {
		return domain.ErrInvalidInput
	}
	if f.UserID != nil && *f.UserID <= 0 {
		return domain.ErrInvalidInput
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return domain.ErrInvalidInput
	}
	return nil
}
