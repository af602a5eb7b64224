package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrAuthorNotFound    = errors.New("author not found")
	ErrInvalidAuthorName = errors.New("author name must not be empty")
)

// ---------- Interfaces (Ports) ----------

// AuthorRepository define las operaciones persistentes para Author.
type AuthorRepository interface {
	Create(ctx context.Context, a *Author) error

	// Debe devolver ErrAuthorNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Debe devolver ErrAuthorNotFound si el autor no existe.
	Update(ctx context.Context, a *Author) error

	// Debe devolver ErrAuthorNotFound si el autor no existe.
	// Participa de la transacción del contexto si la hay.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// List devuelve autores ordenados por nombre, con paginación offset.
	List(ctx context.Context, limit, offset int) ([]*Author, error)

	// DefaultAuthor devuelve el autor por defecto del usuario, o nil si
	// no tiene ninguno configurado.
	DefaultAuthor(ctx context.Context, userID string) (*uuid.UUID, error)

	// SetDefaultAuthor fija (o borra, con nil) el autor por defecto del usuario.
	SetDefaultAuthor(ctx context.Context, userID string, authorID *uuid.UUID) error
}

// AuthorCache cachea lecturas de autores.
type AuthorCache interface {
	// Get intenta poblar dest (puntero) con el valor asociado a la key.
	// Devuelve (true, nil) si hay hit y dest fue rellenado.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa y guarda el valor con TTL en segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete elimina la key del cache.
	Delete(ctx context.Context, key string) error
}

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("author:id:%s", id.String())
}
