package dto

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// AuditLogResponse una entrada del audit trail. Para UPDATE incluye la lista
// de campos que cambiaron (diff estructural old vs new).
type AuditLogResponse struct {
	ID            int64           `json:"id"`
	TableName     string          `json:"table_name"`
	RecordID      int64           `json:"record_id"`
	Action        string          `json:"action"`
	OldValues     json.RawMessage `json:"old_values,omitempty"`
	NewValues     json.RawMessage `json:"new_values,omitempty"`
	ChangedFields []string        `json:"changed_fields,omitempty"`
	UserID        *int64          `json:"user_id,omitempty"`
	IPAddress     string          `json:"ip_address,omitempty"`
	UserAgent     string          `json:"user_agent,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Reviewed      bool            `json:"reviewed"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AuditLogListResponse listado paginado de entradas.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AuditStatsResponse agregados del audit trail.
type AuditStatsResponse struct {
	TotalLogs    int64 `json:"total_logs"`
	CreateLogs   int64 `json:"create_logs"`
	UpdateLogs   int64 `json:"update_logs"`
	DeleteLogs   int64 `json:"delete_logs"`
	UniqueActors int64 `json:"unique_actors"`
	UniqueTables int64 `json:"unique_tables"`
}

// PruneResponse resultado de una poda de retención.
type PruneResponse struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}

// ToAuditLogResponse mapea la entidad al DTO. El diff solo aplica a UPDATE;
// si los snapshots no se pueden decodificar se omite (es solo reporte).
func ToAuditLogResponse(a *entity.AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:        a.ID,
		TableName: a.TableName,
		RecordID:  a.RecordID,
		Action:    a.Action,
		OldValues: a.OldValues,
		NewValues: a.NewValues,
		UserID:    a.UserID,
		IPAddress: a.IPAddress,
		UserAgent: a.UserAgent,
		Metadata:  a.Metadata,
		Reviewed:  a.Reviewed,
		CreatedAt: a.CreatedAt,
	}
	if a.Action == entity.AuditActionUpdate {
		if changed, err := entity.ChangedFields(a.OldValues, a.NewValues); err == nil {
			resp.ChangedFields = changed
		}
	}
	return resp
}

// ToAuditLogList mapea un slice de entidades.
func ToAuditLogList(items []*entity.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(items))
	for _, a := range items {
		out = append(out, ToAuditLogResponse(a))
	}
	return out
}

// ToAuditStats mapea los agregados del repositorio.
func ToAuditStats(s *repository.AuditStats) AuditStatsResponse {
	return AuditStatsResponse{
		TotalLogs:    s.TotalLogs,
		CreateLogs:   s.CreateLogs,
		UpdateLogs:   s.UpdateLogs,
		DeleteLogs:   s.DeleteLogs,
		UniqueActors: s.UniqueActors,
		UniqueTables: s.UniqueTables,
	}
}
