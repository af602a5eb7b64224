package domain

import (
	"encoding/json"
	"time"

	"github.com/davicafu/hexanews/internal/shared/domain/events"
)

// KindAuthorDeleted se emite al borrar un autor; dispara la cascada
// sobre sus borradores.
const KindAuthorDeleted = "author.deleted"

// AuthorDeleted indica que un autor dejó de existir.
type AuthorDeleted struct {
	events.Base
	AuthorID string `json:"author_id"`
}

func NewAuthorDeleted(authorID string) AuthorDeleted {
	return AuthorDeleted{Base: events.NewBase(), AuthorID: authorID}
}

func (AuthorDeleted) Kind() string { return KindAuthorDeleted }

// EventCodec aporta los decoders de los eventos de este módulo.
func EventCodec() *events.Codec {
	c := events.NewCodec()
	c.Register(KindAuthorDeleted, func(eventID string, occurredAt time.Time, body []byte) (events.DomainEvent, error) {
		var e AuthorDeleted
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, err
		}
		e.Base = events.Base{ID: eventID, Date: occurredAt}
		return e, nil
	})
	return c
}

// Verificación estática
var _ events.DomainEvent = AuthorDeleted{}
