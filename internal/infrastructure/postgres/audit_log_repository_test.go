package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var auditCols = []string{
	"id", "table_name", "record_id", "action", "old_values", "new_values",
	"user_id", "ip_address", "user_agent", "metadata", "reviewed", "created_at",
}

func auditRow(id int64, now time.Time) []any {
	userID := int64(3)
	return []any{
		id, "products", int64(7), entity.AuditActionUpdate,
		json.RawMessage(`{"name":"a"}`), json.RawMessage(`{"name":"b"}`),
		&userID, "10.0.0.1", "curl/8.0", json.RawMessage(nil), false, now,
	}
}

func TestAuditLogRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	userID := int64(3)
	log := &entity.AuditLog{
		TableName: "products",
		RecordID:  7,
		Action:    entity.AuditActionCreate,
		NewValues: json.RawMessage(`{"name":"tornillo"}`),
		UserID:    &userID,
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8.0",
		CreatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO audit_logs").
		WithArgs(log.TableName, log.RecordID, log.Action, log.OldValues, log.NewValues,
			log.UserID, log.IPAddress, log.UserAgent, log.Metadata, log.Reviewed, log.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	err = repo.Create(context.Background(), log)
	require.NoError(t, err)
	assert.Equal(t, int64(11), log.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_Find_WithFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	recordID := int64(7)

	mock.ExpectQuery(`SELECT .+ FROM audit_logs WHERE table_name = \$1 AND record_id = \$2 ORDER BY created_at DESC, id DESC LIMIT \$3`).
		WithArgs("products", recordID, 10).
		WillReturnRows(pgxmock.NewRows(auditCols).AddRow(auditRow(2, now)...).AddRow(auditRow(1, now.Add(-time.Hour))...))

	list, err := repo.Find(context.Background(), repository.AuditLogFilter{
		TableName: "products",
		RecordID:  &recordID,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "products", list[0].TableName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_Find_NoFilterNoLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)

	// Sin filtros ni tope: la consulta no lleva WHERE ni LIMIT.
	mock.ExpectQuery(`SELECT .+ FROM audit_logs ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(pgxmock.NewRows(auditCols))

	list, err := repo.Find(context.Background(), repository.AuditLogFilter{Limit: -1})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_MarkReviewed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	row := auditRow(5, now)
	row[10] = true // reviewed

	mock.ExpectQuery("UPDATE audit_logs SET reviewed = TRUE WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(auditCols).AddRow(row...))

	log, err := repo.MarkReviewed(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.True(t, log.Reviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_MarkReviewed_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)

	mock.ExpectQuery("UPDATE audit_logs SET reviewed = TRUE WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(auditCols))

	log, err := repo.MarkReviewed(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, log)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_DeleteOlderThan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)
	cutoff := time.Now().AddDate(0, 0, -90)

	mock.ExpectExec("DELETE FROM audit_logs WHERE created_at").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 37))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(37), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepo_Stats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditLogRepository(mock)

	mock.ExpectQuery(`(?s)SELECT .+ FROM audit_logs WHERE table_name = \$1`).
		WithArgs("products").
		WillReturnRows(pgxmock.NewRows([]string{"total", "creates", "updates", "deletes", "actors", "tables"}).
			AddRow(int64(20), int64(8), int64(10), int64(2), int64(4), int64(1)))

	stats, err := repo.Stats(context.Background(), repository.AuditLogFilter{TableName: "products"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), stats.TotalLogs)
	assert.Equal(t, int64(8), stats.CreateLogs)
	assert.Equal(t, int64(10), stats.UpdateLogs)
	assert.Equal(t, int64(2), stats.DeleteLogs)
	assert.Equal(t, int64(4), stats.UniqueActors)
	assert.Equal(t, int64(1), stats.UniqueTables)
	assert.NoError(t, mock.ExpectationsWereMet())
}
