package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/audit"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de auditoría
// ──────────────────────────────────────────────────────────────────────────────

type fakeAuditStore struct {
	entries  []*entity.AuditLog
	nextID   int64
	lastFind repository.AuditLogFilter
}

var _ repository.AuditLogRepository = (*fakeAuditStore)(nil)

func (f *fakeAuditStore) Create(_ context.Context, log *entity.AuditLog) error {
	f.nextID++
	cp := *log
	cp.ID = f.nextID
	log.ID = f.nextID
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditStore) GetByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	for _, e := range f.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAuditStore) Find(_ context.Context, filter repository.AuditLogFilter) ([]*entity.AuditLog, error) {
	f.lastFind = filter
	var out []*entity.AuditLog
	for _, e := range f.entries {
		if filter.TableName != "" && e.TableName != filter.TableName {
			continue
		}
		if filter.RecordID != nil && e.RecordID != *filter.RecordID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeAuditStore) Count(_ context.Context, filter repository.AuditLogFilter) (int64, error) {
	var n int64
	for _, e := range f.entries {
		if filter.TableName != "" && e.TableName != filter.TableName {
			continue
		}
		if filter.RecordID != nil && e.RecordID != *filter.RecordID {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeAuditStore) Stats(_ context.Context, _ repository.AuditLogFilter) (*repository.AuditStats, error) {
	return &repository.AuditStats{TotalLogs: int64(len(f.entries))}, nil
}

func (f *fakeAuditStore) MarkReviewed(_ context.Context, id int64) (*entity.AuditLog, error) {
	for _, e := range f.entries {
		if e.ID == id {
			e.Reviewed = true
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAuditStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*entity.AuditLog
	var deleted int64
	for _, e := range f.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

type fakeAuditTxRunner struct{ store *fakeAuditStore }

func (r *fakeAuditTxRunner) Run(_ context.Context, fn func(repository.Repos) error) error {
	return fn(repository.Repos{AuditLogs: r.store})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var auditNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func seededStore(ages ...time.Duration) *fakeAuditStore {
	store := &fakeAuditStore{}
	uid := int64(1)
	for _, age := range ages {
		store.nextID++
		store.entries = append(store.entries, &entity.AuditLog{
			ID:        store.nextID,
			TableName: "products",
			RecordID:  store.nextID,
			Action:    entity.AuditActionUpdate,
			UserID:    &uid,
			CreatedAt: auditNow.Add(-age),
		})
	}
	return store
}

func newQueryUC(store *fakeAuditStore) *audit.QueryUseCase {
	return audit.NewQueryUseCase(store, &fakeAuditTxRunner{store: store}, func() time.Time { return auditNow })
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkReviewed
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkReviewed(t *testing.T) {
	store := seededStore(time.Hour)
	uc := newQueryUC(store)

	got, err := uc.MarkReviewed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Reviewed)

	// Idempotente: repetir sobre una entrada ya revisada es un éxito.
	got, err = uc.MarkReviewed(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Reviewed)
}

func TestMarkReviewed_NoEncontrado(t *testing.T) {
	uc := newQueryUC(&fakeAuditStore{})
	_, err := uc.MarkReviewed(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkReviewed_IDInvalido(t *testing.T) {
	uc := newQueryUC(&fakeAuditStore{})
	_, err := uc.MarkReviewed(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PruneOlderThan
// ──────────────────────────────────────────────────────────────────────────────

func TestPruneOlderThan(t *testing.T) {
	// Tres entradas viejas (2 años) y dos recientes.
	store := seededStore(
		17520*time.Hour, 17520*time.Hour, 17520*time.Hour,
		time.Hour, 2*time.Hour,
	)
	uc := newQueryUC(store)

	cutoff := auditNow.AddDate(-1, 0, 0)
	uid := int64(9)
	deleted, err := uc.PruneOlderThan(context.Background(), cutoff, audit.ActorContext{UserID: &uid})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted, "debe reportar el conteo exacto de borrados")

	// Quedan las dos recientes más la meta-auditoría de la poda.
	require.Len(t, store.entries, 3)
	meta := store.entries[len(store.entries)-1]
	assert.Equal(t, "audit_logs", meta.TableName)
	assert.Equal(t, int64(0), meta.RecordID, "la meta-entrada no refiere a un registro concreto")
	assert.Equal(t, entity.AuditActionCreate, meta.Action)
	require.NotNil(t, meta.UserID)
	assert.Equal(t, int64(9), *meta.UserID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(meta.NewValues, &payload))
	assert.Equal(t, "retention_prune", payload["operation"])
	assert.Equal(t, float64(3), payload["deleted"])
	assert.Equal(t, cutoff.UTC().Format(time.RFC3339), payload["cutoff"])
}

func TestPruneOlderThan_CutoffCero(t *testing.T) {
	uc := newQueryUC(&fakeAuditStore{})
	_, err := uc.PruneOlderThan(context.Background(), time.Time{}, audit.ActorContext{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPruneOlderThan_SinEntradasViejas(t *testing.T) {
	store := seededStore(time.Hour)
	uc := newQueryUC(store)

	deleted, err := uc.PruneOlderThan(context.Background(), auditNow.AddDate(-1, 0, 0), audit.ActorContext{})
	require.NoError(t, err)
	assert.Zero(t, deleted)
	// La poda vacía también queda registrada en el trail.
	assert.Len(t, store.entries, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestFind_FiltroInvalido(t *testing.T) {
	uc := newQueryUC(&fakeAuditStore{})
	bad := int64(-1)
	from := auditNow
	to := auditNow.Add(-time.Hour)

	cases := []struct {
		name   string
		filter repository.AuditLogFilter
	}{
		{"acción desconocida", repository.AuditLogFilter{Action: "TRUNCATE"}},
		{"record_id negativo", repository.AuditLogFilter{RecordID: &bad}},
		{"user_id negativo", repository.AuditLogFilter{UserID: &bad}},
		{"rango invertido", repository.AuditLogFilter{From: &from, To: &to}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.Find(context.Background(), tc.filter)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFind_DevuelveTotal(t *testing.T) {
	store := seededStore(time.Hour, 2*time.Hour, 3*time.Hour)
	uc := newQueryUC(store)

	list, total, err := uc.Find(context.Background(), repository.AuditLogFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(3), total, "el total ignora la paginación")
}

func TestFindRecent_LimiteDefault(t *testing.T) {
	store := seededStore(time.Hour)
	uc := newQueryUC(store)

	_, err := uc.FindRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, store.lastFind.Limit)
}

func TestFindByRecord(t *testing.T) {
	store := seededStore(time.Hour, 2*time.Hour)
	uc := newQueryUC(store)

	list, err := uc.FindByRecord(context.Background(), "products", 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].RecordID)
	assert.Equal(t, -1, store.lastFind.Limit, "la historia de un registro no se pagina")

	_, err = uc.FindByRecord(context.Background(), "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
