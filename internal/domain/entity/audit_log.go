package entity

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Acciones auditables sobre una entidad.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// TableNameMaxLen longitud máxima del nombre lógico de tabla auditada.
const TableNameMaxLen = 100

// AuditLog representa una mutación registrada en el audit trail, con snapshots
// antes/después. Append-only: el único campo mutable después de crear es Reviewed.
type AuditLog struct {
	ID        int64
	TableName string
	RecordID  int64 // > 0 para mutaciones de entidad; 0 solo en entradas de sistema (poda)
	Action    string
	OldValues json.RawMessage // presente en UPDATE/DELETE
	NewValues json.RawMessage // presente en CREATE/UPDATE
	UserID    *int64          // actor; nil para acciones de sistema
	IPAddress string
	UserAgent string
	Metadata  json.RawMessage
	Reviewed  bool
	CreatedAt time.Time
}

// Validate verifica los invariantes de una entrada de auditoría de entidad.
func (a *AuditLog) Validate() error {
	if err := a.validateCommon(); err != nil {
		return err
	}
	if a.RecordID <= 0 {
		return fmt.Errorf("audit log: record_id debe ser > 0: %d", a.RecordID)
	}
	return nil
}

// ValidateSystem verifica una entrada de sistema (ej. meta-auditoría de poda),
// que no referencia un registro concreto.
func (a *AuditLog) ValidateSystem() error {
	if err := a.validateCommon(); err != nil {
		return err
	}
	if a.RecordID < 0 {
		return fmt.Errorf("audit log: record_id negativo: %d", a.RecordID)
	}
	return nil
}

func (a *AuditLog) validateCommon() error {
	if a.TableName == "" || len(a.TableName) > TableNameMaxLen {
		return fmt.Errorf("audit log: table_name vacío o mayor a %d caracteres", TableNameMaxLen)
	}
	switch a.Action {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
	default:
		return fmt.Errorf("audit log: acción desconocida %q", a.Action)
	}
	if a.UserID != nil && *a.UserID <= 0 {
		return fmt.Errorf("audit log: user_id debe ser > 0 si está presente: %d", *a.UserID)
	}
	return nil
}

// ChangedFields calcula el diff estructural entre los snapshots old y new:
// unión de claves de ambos mapas; una clave cambió si su forma serializada
// difiere (incluida la presencia en solo uno de los dos). Solo para reporte;
// no afecta la persistencia. El resultado viene ordenado para ser determinista.
func ChangedFields(oldValues, newValues json.RawMessage) ([]string, error) {
	oldMap, err := decodeSnapshot(oldValues)
	if err != nil {
		return nil, fmt.Errorf("decodificar old_values: %w", err)
	}
	newMap, err := decodeSnapshot(newValues)
	if err != nil {
		return nil, fmt.Errorf("decodificar new_values: %w", err)
	}

	keys := make(map[string]struct{}, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys[k] = struct{}{}
	}
	for k := range newMap {
		keys[k] = struct{}{}
	}

	var changed []string
	for k := range keys {
		oldRaw, inOld := oldMap[k]
		newRaw, inNew := newMap[k]
		if inOld != inNew || string(oldRaw) != string(newRaw) {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

func decodeSnapshot(raw json.RawMessage) (map[string]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
