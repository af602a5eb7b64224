package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrNewsNotFound       = errors.New("news article not found")
	ErrNewsAlreadyRevoked = errors.New("news article already revoked")
	ErrEmptyRevokeReason  = errors.New("revoke reason must not be empty")
)

// ---------- Interfaces (Ports) ----------

// NewsRepository define las operaciones persistentes para NewsArticle.
// Las escrituras participan de la transacción del contexto si la hay.
type NewsRepository interface {
	// Upsert inserta la noticia o la reemplaza si ya existe.
	Upsert(ctx context.Context, a *NewsArticle) error

	// Debe devolver ErrNewsNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*NewsArticle, error)

	// List devuelve las noticias no revocadas, más reciente primero.
	List(ctx context.Context, limit, offset int) ([]*NewsArticle, error)
}
