package dto

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// CategoryRequest alta/edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LocationRequest alta/edición de ubicación.
type LocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Warehouse   string `json:"warehouse,omitempty"`
}

// LocationResponse una ubicación.
type LocationResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Warehouse   string    `json:"warehouse,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierRequest alta/edición de proveedor.
type SupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SupplierResponse un proveedor.
type SupplierResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse mapea la entidad al DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// ToLocationResponse mapea la entidad al DTO.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name, Description: l.Description, Warehouse: l.Warehouse, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
}

// ToSupplierResponse mapea la entidad al DTO.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, ContactName: s.ContactName, Email: s.Email, Phone: s.Phone, Address: s.Address, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}
