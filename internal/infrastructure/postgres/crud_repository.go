package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TableSpec describe cómo mapear una entidad a su tabla: nombre, columnas (sin
// id) y los accesors de valores/destinos de scan. Un solo CrudRepo genérico
// reemplaza la duplicación de un repositorio CRUD por entidad de catálogo.
type TableSpec[T any] struct {
	Name    string
	Columns []string            // columnas sin id, en el orden de Values y Fields
	OrderBy string              // orden de List; vacío usa "id"
	Values  func(e *T) []any    // valores para INSERT/UPDATE, en orden de Columns
	Fields  func(e *T) []any    // destinos de Scan para id + Columns
}

// CrudRepo implementación genérica de repository.Crud sobre PostgreSQL
// (usable con pool o tx), parametrizada por un TableSpec.
type CrudRepo[T any] struct {
	q    Querier
	spec TableSpec[T]

	insertSQL string
	selectSQL string
	updateSQL string
	orderBy   string
}

// NewCrudRepository construye el adaptador genérico para la tabla del spec.
func NewCrudRepository[T any](q Querier, spec TableSpec[T]) *CrudRepo[T] {
	cols := strings.Join(spec.Columns, ", ")

	placeholders := make([]string, len(spec.Columns))
	sets := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2) // $1 es el id en UPDATE
	}

	orderBy := spec.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}

	return &CrudRepo[T]{
		q:    q,
		spec: spec,
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			spec.Name, cols, strings.Join(placeholders, ", ")),
		selectSQL: fmt.Sprintf("SELECT id, %s FROM %s", cols, spec.Name),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1",
			spec.Name, strings.Join(sets, ", ")),
		orderBy: orderBy,
	}
}

var _ repository.Crud[struct{}] = (*CrudRepo[struct{}])(nil)

// Create inserta la entidad y asigna el ID generado por la secuencia.
func (r *CrudRepo[T]) Create(ctx context.Context, e *T) error {
	// Fields[0] es el destino del id.
	err := r.q.QueryRow(ctx, r.insertSQL, r.spec.Values(e)...).Scan(r.spec.Fields(e)[0])
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert "+r.spec.Name, err)
	}
	return nil
}

// GetByID obtiene la entidad por ID. Devuelve nil, nil si no existe.
func (r *CrudRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var e T
	err := r.q.QueryRow(ctx, r.selectSQL+" WHERE id = $1", id).Scan(r.spec.Fields(&e)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get "+r.spec.Name, err)
	}
	return &e, nil
}

// List lista entidades paginadas. limit <= 0 no acota.
func (r *CrudRepo[T]) List(ctx context.Context, limit, offset int) ([]*T, error) {
	query := r.selectSQL + " ORDER BY " + r.orderBy
	var args []any
	query, args = appendLimitOffset(query, args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list "+r.spec.Name, err)
	}
	defer rows.Close()

	list := make([]*T, 0)
	for rows.Next() {
		var e T
		if err := rows.Scan(r.spec.Fields(&e)...); err != nil {
			return nil, storageErr("list "+r.spec.Name, err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list "+r.spec.Name, err)
	}
	return list, nil
}

// Count cuenta todas las filas de la tabla.
func (r *CrudRepo[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM "+r.spec.Name).Scan(&n)
	if err != nil {
		return 0, storageErr("count "+r.spec.Name, err)
	}
	return n, nil
}

// Update actualiza todas las columnas mapeadas. ErrNotFound si el id no existe.
func (r *CrudRepo[T]) Update(ctx context.Context, e *T) error {
	args := append([]any{deref(r.spec.Fields(e)[0])}, r.spec.Values(e)...)
	cmd, err := r.q.Exec(ctx, r.updateSQL, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("update "+r.spec.Name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la fila. ErrNotFound si no existe, ErrConflict si otra tabla
// aún la referencia.
func (r *CrudRepo[T]) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, "DELETE FROM "+r.spec.Name+" WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return storageErr("delete "+r.spec.Name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// deref extrae el valor del puntero a id que entrega Fields.
func deref(idPtr any) any {
	if p, ok := idPtr.(*int64); ok {
		return *p
	}
	return idPtr
}
