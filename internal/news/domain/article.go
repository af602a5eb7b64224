package domain

import (
	"time"

	"github.com/google/uuid"

	shared "github.com/davicafu/hexanews/internal/shared/domain"
)

// NewsArticle es una noticia publicada. Nunca se borra: revocarla le
// pone un motivo y la saca de los listados normales.
type NewsArticle struct {
	ID            uuid.UUID    `json:"id"`
	Headline      string       `json:"headline"`
	DatePublished time.Time    `json:"date_published"`
	AuthorID      uuid.UUID    `json:"author_id"`
	Image         shared.Image `json:"image"`
	Text          string       `json:"text"`
	RevokeReason  string       `json:"revoke_reason,omitempty"`
}

// IsRevoked indica si la noticia fue retirada.
func (a *NewsArticle) IsRevoked() bool {
	return a.RevokeReason != ""
}

// Revoke retira la noticia con el motivo dado.
func (a *NewsArticle) Revoke(reason string) {
	a.RevokeReason = reason
}
