package entity

import "time"

// Supplier representa un proveedor de productos.
type Supplier struct {
	ID          int64
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Supplier) AuditTable() string { return "suppliers" }
func (s *Supplier) AuditID() int64     { return s.ID }

func (s *Supplier) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":         s.Name,
		"contact_name": s.ContactName,
		"email":        s.Email,
		"phone":        s.Phone,
		"address":      s.Address,
	}
}

// Touch actualiza los timestamps.
func (s *Supplier) Touch(now time.Time, created bool) {
	if created {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
