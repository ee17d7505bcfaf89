package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ActorContext identifica al actor y su contexto de request. Lo arma la capa
// HTTP (middleware de auth); el core nunca lo infiere. UserID nil = acción de sistema.
type ActorContext struct {
	UserID    *int64
	IPAddress string
	UserAgent string
	Metadata  map[string]any
}

// Recorder registra mutaciones de entidades en el audit trail. Se construye
// sobre un repositorio atado a la transacción de la mutación que describe, de
// modo que mutación y auditoría se confirman o revierten juntas.
type Recorder struct {
	repo repository.AuditLogRepository
	now  func() time.Time
}

// NewRecorder construye el recorder. now en nil usa time.Now.
func NewRecorder(repo repository.AuditLogRepository, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{repo: repo, now: now}
}

// RecordCreate registra la creación de una entidad con su snapshot resultante.
func (r *Recorder) RecordCreate(ctx context.Context, table string, recordID int64, newValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	return r.record(ctx, table, recordID, entity.AuditActionCreate, nil, newValues, actor)
}

// RecordUpdate registra una actualización con snapshots antes y después.
func (r *Recorder) RecordUpdate(ctx context.Context, table string, recordID int64, oldValues, newValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	return r.record(ctx, table, recordID, entity.AuditActionUpdate, oldValues, newValues, actor)
}

// RecordDelete registra un borrado con el snapshot previo.
func (r *Recorder) RecordDelete(ctx context.Context, table string, recordID int64, oldValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	return r.record(ctx, table, recordID, entity.AuditActionDelete, oldValues, nil, actor)
}

func (r *Recorder) record(ctx context.Context, table string, recordID int64, action string, oldValues, newValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	log, err := r.build(table, recordID, action, oldValues, newValues, actor)
	if err != nil {
		return nil, err
	}
	if err := log.Validate(); err != nil {
		return nil, err
	}
	if err := r.repo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// RecordSystem registra una entrada de sistema (sin registro concreto asociado),
// por ejemplo la meta-auditoría de una poda de retención.
func (r *Recorder) RecordSystem(ctx context.Context, table string, newValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	log, err := r.build(table, 0, entity.AuditActionCreate, nil, newValues, actor)
	if err != nil {
		return nil, err
	}
	if err := log.ValidateSystem(); err != nil {
		return nil, err
	}
	if err := r.repo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// build serializa los snapshots en el momento de la llamada: el recorder queda
// dueño de una copia independiente que el caller ya no puede mutar.
func (r *Recorder) build(table string, recordID int64, action string, oldValues, newValues map[string]any, actor ActorContext) (*entity.AuditLog, error) {
	oldRaw, err := marshalSnapshot(oldValues)
	if err != nil {
		return nil, fmt.Errorf("serializar old_values: %w", err)
	}
	newRaw, err := marshalSnapshot(newValues)
	if err != nil {
		return nil, fmt.Errorf("serializar new_values: %w", err)
	}
	metaRaw, err := marshalSnapshot(actor.Metadata)
	if err != nil {
		return nil, fmt.Errorf("serializar metadata: %w", err)
	}
	return &entity.AuditLog{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		OldValues: oldRaw,
		NewValues: newRaw,
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
		Metadata:  metaRaw,
		CreatedAt: r.now(),
	}, nil
}

func marshalSnapshot(values map[string]any) (json.RawMessage, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}
