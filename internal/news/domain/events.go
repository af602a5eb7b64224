package domain

import (
	"encoding/json"
	"time"

	"github.com/davicafu/hexanews/internal/shared/domain/events"
)

const (
	// KindNewsPublished se emite cuando un borrador sale a portada.
	KindNewsPublished = "news.published"
	// KindNewsRevoked se emite cuando una noticia se retira.
	KindNewsRevoked = "news.revoked"
)

// NewsPublished indica que una noticia quedó publicada desde un borrador.
type NewsPublished struct {
	events.Base
	NewsID   string `json:"news_id"`
	DraftID  string `json:"draft_id"`
	AuthorID string `json:"author_id"`
}

func NewNewsPublished(newsID, draftID, authorID string) NewsPublished {
	return NewsPublished{Base: events.NewBase(), NewsID: newsID, DraftID: draftID, AuthorID: authorID}
}

func (NewsPublished) Kind() string { return KindNewsPublished }

// NewsRevoked indica que una noticia fue retirada con un motivo.
type NewsRevoked struct {
	events.Base
	NewsID string `json:"news_id"`
	Reason string `json:"reason"`
}

func NewNewsRevoked(newsID, reason string) NewsRevoked {
	return NewsRevoked{Base: events.NewBase(), NewsID: newsID, Reason: reason}
}

func (NewsRevoked) Kind() string { return KindNewsRevoked }

// EventCodec aporta los decoders de los eventos de este módulo.
func EventCodec() *events.Codec {
	c := events.NewCodec()
	c.Register(KindNewsPublished, func(eventID string, occurredAt time.Time, body []byte) (events.DomainEvent, error) {
		var e NewsPublished
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, err
		}
		e.Base = events.Base{ID: eventID, Date: occurredAt}
		return e, nil
	})
	c.Register(KindNewsRevoked, func(eventID string, occurredAt time.Time, body []byte) (events.DomainEvent, error) {
		var e NewsRevoked
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, err
		}
		e.Base = events.Base{ID: eventID, Date: occurredAt}
		return e, nil
	})
	return c
}

// Verificación estática
var (
	_ events.DomainEvent = NewsPublished{}
	_ events.DomainEvent = NewsRevoked{}
)
