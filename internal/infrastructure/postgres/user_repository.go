package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	*CrudRepo[entity.User]
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{CrudRepo: NewCrudRepository(q, TableSpec[entity.User]{
		Name: "users",
		Columns: []string{
			"email", "password_hash", "name", "role", "active", "created_at", "updated_at",
		},
		OrderBy: "created_at DESC, id DESC",
		Values: func(u *entity.User) []any {
			return []any{u.Email, u.PasswordHash, u.Name, u.Role, u.Active, u.CreatedAt, u.UpdatedAt}
		},
		Fields: func(u *entity.User) []any {
			return []any{&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt}
		},
	})}
}

// FindByEmail obtiene un usuario por email. Devuelve nil, nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, r.selectSQL+" WHERE email = $1", email).Scan(r.spec.Fields(&u)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user by email", err)
	}
	return &u, nil
}
