package entity

import "time"

// Location representa una ubicación física de almacenamiento (bodega, estante).
type Location struct {
	ID          int64
	Name        string
	Description string
	Warehouse   string // bodega a la que pertenece la ubicación
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l *Location) AuditTable() string { return "locations" }
func (l *Location) AuditID() int64     { return l.ID }

func (l *Location) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":        l.Name,
		"description": l.Description,
		"warehouse":   l.Warehouse,
	}
}

// Touch actualiza los timestamps.
func (l *Location) Touch(now time.Time, created bool) {
	if created {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}
