package entity

import "time"

// Category agrupa productos por familia.
type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Category) AuditTable() string { return "categories" }
func (c *Category) AuditID() int64     { return c.ID }

func (c *Category) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":        c.Name,
		"description": c.Description,
	}
}

// Touch actualiza los timestamps.
func (c *Category) Touch(now time.Time, created bool) {
	if created {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
