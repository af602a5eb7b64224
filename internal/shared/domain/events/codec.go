package events

import (
	"fmt"
	"time"
)

// DecodeFunc reconstruye la variante concreta a partir de la identidad
// persistida y del body con los campos propios del kind.
type DecodeFunc func(eventID string, occurredAt time.Time, body []byte) (DomainEvent, error)

// Codec mapea kind → decoder. Cada módulo de dominio aporta el suyo y
// en el arranque se funden en uno solo, igual que los handler registries.
type Codec struct {
	decoders map[string]DecodeFunc
}

func NewCodec() *Codec {
	return &Codec{decoders: make(map[string]DecodeFunc)}
}

func (c *Codec) Register(kind string, fn DecodeFunc) {
	c.decoders[kind] = fn
}

// Merge incorpora los decoders de otro codec.
func (c *Codec) Merge(other *Codec) {
	for kind, fn := range other.decoders {
		c.decoders[kind] = fn
	}
}

func (c *Codec) Decode(kind, eventID string, occurredAt time.Time, body []byte) (DomainEvent, error) {
	fn, ok := c.decoders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown domain event kind %q", kind)
	}
	return fn(eventID, occurredAt, body)
}
