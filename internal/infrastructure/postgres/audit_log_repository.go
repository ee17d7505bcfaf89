package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditLogColumns = `id, table_name, record_id, action, old_values, new_values, user_id, ip_address, user_agent, metadata, reviewed, created_at`

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL
// (usable con pool o tx). Append-only salvo el flag reviewed y la poda.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de persistencia del audit trail. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta la entrada y asigna el ID generado por la secuencia.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (table_name, record_id, action, old_values, new_values, user_id, ip_address, user_agent, metadata, reviewed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		log.TableName, log.RecordID, log.Action, log.OldValues, log.NewValues,
		log.UserID, log.IPAddress, log.UserAgent, log.Metadata, log.Reviewed, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return storageErr("insert audit log", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID. Devuelve nil, nil si no existe.
func (r *AuditLogRepo) GetByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs WHERE id = $1`
	log, err := scanAuditLog(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get audit log", err)
	}
	return log, nil
}

// Find busca entradas según el filtro, más reciente primero.
// filter.Limit <= 0 no acota el resultado.
func (r *AuditLogRepo) Find(ctx context.Context, filter repository.AuditLogFilter) ([]*entity.AuditLog, error) {
	where, args := buildAuditWhere(filter)
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs` + where +
		` ORDER BY created_at DESC, id DESC`
	query, args = appendLimitOffset(query, args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("find audit logs", err)
	}
	defer rows.Close()

	logs := make([]*entity.AuditLog, 0)
	for rows.Next() {
		log, err := scanAuditLog(rows)
		if err != nil {
			return nil, storageErr("find audit logs", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find audit logs", err)
	}
	return logs, nil
}

// Count cuenta las entradas que matchean el filtro (ignora Limit/Offset).
func (r *AuditLogRepo) Count(ctx context.Context, filter repository.AuditLogFilter) (int64, error) {
	where, args := buildAuditWhere(filter)
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&n)
	if err != nil {
		return 0, storageErr("count audit logs", err)
	}
	return n, nil
}

// Stats calcula agregados del audit trail sobre el subconjunto filtrado.
func (r *AuditLogRepo) Stats(ctx context.Context, filter repository.AuditLogFilter) (*repository.AuditStats, error) {
	where, args := buildAuditWhere(filter)
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE action = 'CREATE'),
			COUNT(*) FILTER (WHERE action = 'UPDATE'),
			COUNT(*) FILTER (WHERE action = 'DELETE'),
			COUNT(DISTINCT user_id) FILTER (WHERE user_id IS NOT NULL),
			COUNT(DISTINCT table_name)
		FROM audit_logs` + where
	var s repository.AuditStats
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.TotalLogs, &s.CreateLogs, &s.UpdateLogs, &s.DeleteLogs,
		&s.UniqueActors, &s.UniqueTables,
	)
	if err != nil {
		return nil, storageErr("audit stats", err)
	}
	return &s, nil
}

// MarkReviewed marca la entrada como revisada y la devuelve. Idempotente a
// nivel de fila (re-marcar no cambia nada). Devuelve nil, nil si no existe.
func (r *AuditLogRepo) MarkReviewed(ctx context.Context, id int64) (*entity.AuditLog, error) {
	query := `UPDATE audit_logs SET reviewed = TRUE WHERE id = $1 RETURNING ` + auditLogColumns
	log, err := scanAuditLog(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("mark audit log reviewed", err)
	}
	return log, nil
}

// DeleteOlderThan borra las entradas con created_at anterior al corte y
// devuelve el conteo exacto de filas eliminadas.
func (r *AuditLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, storageErr("prune audit logs", err)
	}
	return cmd.RowsAffected(), nil
}

// buildAuditWhere arma la cláusula WHERE dinámica a partir del filtro.
func buildAuditWhere(f repository.AuditLogFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.TableName != "" {
		add("table_name = $%d", f.TableName)
	}
	if f.RecordID != nil {
		add("record_id = $%d", *f.RecordID)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.IPAddress != "" {
		add("ip_address = $%d", f.IPAddress)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAuditLog(row pgx.Row) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := row.Scan(
		&log.ID, &log.TableName, &log.RecordID, &log.Action, &log.OldValues,
		&log.NewValues, &log.UserID, &log.IPAddress, &log.UserAgent,
		&log.Metadata, &log.Reviewed, &log.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}
