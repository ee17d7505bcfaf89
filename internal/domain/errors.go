package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// StorageError señala una falla de la capa de persistencia (timeout, conectividad).
// Como el TxRunner garantiza que no hay escrituras parciales, el caller puede
// reintentar la operación completa; este core no implementa reintentos.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("almacenamiento: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
