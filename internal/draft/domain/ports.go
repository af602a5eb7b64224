package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	shared "github.com/davicafu/hexanews/internal/shared/domain"
)

// ---------- Errores de dominio ----------
var (
	ErrDraftNotFound         = errors.New("draft not found")
	ErrDraftAlreadyPublished = errors.New("draft already published")
	ErrEmptyHeadline         = errors.New("draft headline must not be empty")
	ErrEmptyText             = errors.New("draft text must not be empty")
	ErrMissingImage          = errors.New("draft image must be set")
)

// ---------- Interfaces (Ports) ----------

// DraftRepository define las operaciones persistentes para Draft.
// Todas participan de la transacción del contexto si la hay.
type DraftRepository interface {
	Create(ctx context.Context, d *Draft) error

	// Debe devolver ErrDraftNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Draft, error)

	// Debe devolver ErrDraftNotFound si el borrador no existe.
	Update(ctx context.Context, d *Draft) error

	// Debe devolver ErrDraftNotFound si el borrador no existe.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// ListByAuthor devuelve los borradores del autor, más reciente primero.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Draft, error)

	// DeleteByAuthor borra todos los borradores del autor. Cero borrados
	// no es un error.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
}

// PublishedArticle es lo que el borrador entrega al publicarse.
type PublishedArticle struct {
	ArticleID     *uuid.UUID // nil: noticia nueva
	Headline      string
	AuthorID      uuid.UUID
	Image         shared.Image
	Text          string
	DatePublished time.Time
}

// ArticlePublisher crea o actualiza la noticia que corresponde al
// borrador publicado y devuelve su ID. Lo implementa el módulo news.
type ArticlePublisher interface {
	PublishArticle(ctx context.Context, a PublishedArticle) (uuid.UUID, error)
}
