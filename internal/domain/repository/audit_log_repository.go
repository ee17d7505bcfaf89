package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// AuditStats agregados sobre el audit trail (globales o filtrados).
type AuditStats struct {
	TotalLogs    int64
	CreateLogs   int64
	UpdateLogs   int64
	DeleteLogs   int64
	UniqueActors int64
	UniqueTables int64
}

// AuditLogFilter criterios de búsqueda sobre el audit trail. Los campos en nil
// o vacíos no filtran. Los resultados siempre vienen newest-first.
type AuditLogFilter struct {
	TableName string
	RecordID  *int64
	Action    string
	UserID    *int64
	IPAddress string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AuditLogRepository define el puerto de persistencia del audit trail.
// Append-only salvo MarkReviewed (única mutación permitida) y DeleteOlderThan
// (poda administrativa irreversible).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	GetByID(ctx context.Context, id int64) (*entity.AuditLog, error)
	Find(ctx context.Context, filter AuditLogFilter) ([]*entity.AuditLog, error)
	Count(ctx context.Context, filter AuditLogFilter) (int64, error)
	Stats(ctx context.Context, filter AuditLogFilter) (*AuditStats, error)
	MarkReviewed(ctx context.Context, id int64) (*entity.AuditLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
