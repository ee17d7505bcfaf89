package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Crud[entity.User]
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
