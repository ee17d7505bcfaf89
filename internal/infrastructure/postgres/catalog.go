package postgres

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// TableSpecs de las entidades de catálogo. Cada constructor entrega un
// repository.Crud listo para pool o tx.

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(q Querier) *CrudRepo[entity.Category] {
	return NewCrudRepository(q, TableSpec[entity.Category]{
		Name:    "categories",
		Columns: []string{"name", "description", "created_at", "updated_at"},
		OrderBy: "name",
		Values: func(c *entity.Category) []any {
			return []any{c.Name, c.Description, c.CreatedAt, c.UpdatedAt}
		},
		Fields: func(c *entity.Category) []any {
			return []any{&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt}
		},
	})
}

// NewLocationRepository construye el repositorio de ubicaciones.
func NewLocationRepository(q Querier) *CrudRepo[entity.Location] {
	return NewCrudRepository(q, TableSpec[entity.Location]{
		Name:    "locations",
		Columns: []string{"name", "description", "warehouse", "created_at", "updated_at"},
		OrderBy: "name",
		Values: func(l *entity.Location) []any {
			return []any{l.Name, l.Description, l.Warehouse, l.CreatedAt, l.UpdatedAt}
		},
		Fields: func(l *entity.Location) []any {
			return []any{&l.ID, &l.Name, &l.Description, &l.Warehouse, &l.CreatedAt, &l.UpdatedAt}
		},
	})
}

// NewSupplierRepository construye el repositorio de proveedores.
func NewSupplierRepository(q Querier) *CrudRepo[entity.Supplier] {
	return NewCrudRepository(q, TableSpec[entity.Supplier]{
		Name:    "suppliers",
		Columns: []string{"name", "contact_name", "email", "phone", "address", "created_at", "updated_at"},
		OrderBy: "name",
		Values: func(s *entity.Supplier) []any {
			return []any{s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt}
		},
		Fields: func(s *entity.Supplier) []any {
			return []any{&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt}
		},
	})
}
