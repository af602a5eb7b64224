package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/davicafu/hexanews/internal/shared/domain"
)

// Draft es un borrador editorial. Puede nacer desde cero o a partir de
// una noticia ya publicada (NewsArticleID apunta a ella); al publicarlo
// se crea o actualiza la noticia correspondiente.
type Draft struct {
	ID              uuid.UUID    `json:"id"`
	NewsArticleID   *uuid.UUID   `json:"news_article_id,omitempty"`
	Headline        string       `json:"headline"`
	DatePublished   *time.Time   `json:"date_published,omitempty"`
	AuthorID        uuid.UUID    `json:"author_id"`
	Image           shared.Image `json:"image"`
	Text            string       `json:"text"`
	CreatedByUserID string       `json:"created_by_user_id"`
	IsPublished     bool         `json:"is_published"`
}

// NewDraft crea un borrador vacío para el autor indicado.
func NewDraft(authorID uuid.UUID, createdByUserID string) *Draft {
	return &Draft{
		ID:              uuid.New(),
		AuthorID:        authorID,
		CreatedByUserID: createdByUserID,
	}
}

// NewDraftForArticle crea un borrador de edición sobre una noticia existente.
func NewDraftForArticle(newsArticleID, authorID uuid.UUID, createdByUserID string) *Draft {
	d := NewDraft(authorID, createdByUserID)
	d.NewsArticleID = &newsArticleID
	return d
}

// ValidateForPublish comprueba que el borrador está completo para salir
// a portada. Devuelve todos los problemas juntos, no solo el primero.
func (d *Draft) ValidateForPublish() error {
	var problems []error
	if strings.TrimSpace(d.Headline) == "" {
		problems = append(problems, ErrEmptyHeadline)
	}
	if strings.TrimSpace(d.Text) == "" {
		problems = append(problems, ErrEmptyText)
	}
	if d.Image.IsZero() {
		problems = append(problems, ErrMissingImage)
	}
	return errors.Join(problems...)
}

// MarkPublished sella el borrador como publicado en el instante dado.
func (d *Draft) MarkPublished(at time.Time) {
	d.IsPublished = true
	d.DatePublished = &at
}
