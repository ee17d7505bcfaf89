package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
	RoleStaff   = "staff"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, auditor, staff
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) AuditTable() string { return "users" }
func (u *User) AuditID() int64     { return u.ID }

// AuditSnapshot omite PasswordHash: el hash nunca entra al audit trail.
func (u *User) AuditSnapshot() map[string]any {
	return map[string]any{
		"email":  u.Email,
		"name":   u.Name,
		"role":   u.Role,
		"active": u.Active,
	}
}
