package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainEvent es un hecho inmutable del dominio: algo que ya ocurrió.
// Dos eventos son el mismo solo si comparten EventID.
type DomainEvent interface {
	EventID() string
	OccurredAt() time.Time
	Kind() string
}

// Base agrupa la identidad común de todos los eventos de dominio.
// Los campos van con `json:"-"` porque Encode los escribe él mismo
// en orden canónico (event_type, event_id, date_occurred, extras).
type Base struct {
	ID   string    `json:"-"`
	Date time.Time `json:"-"`
}

func NewBase() Base {
	return Base{
		ID:   uuid.NewString(),
		Date: time.Now().UTC(),
	}
}

func (b Base) EventID() string       { return b.ID }
func (b Base) OccurredAt() time.Time { return b.Date }

// Encode serializa el evento a su JSON canónico de transporte:
// {"event_type":...,"event_id":...,"date_occurred":...,<extras>}
// en ese orden fijo. Los extras salen de los tags json del evento concreto.
func Encode(e DomainEvent) ([]byte, error) {
	body, err := Body(e)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"event_type":`)
	writeJSONString(&buf, e.Kind())
	buf.WriteString(`,"event_id":`)
	writeJSONString(&buf, e.EventID())
	buf.WriteString(`,"date_occurred":`)
	writeJSONString(&buf, e.OccurredAt().Format(time.RFC3339))

	// body siempre es un objeto JSON; lo empalmamos sin las llaves
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 2 {
		buf.WriteByte(',')
		buf.Write(trimmed[1 : len(trimmed)-1])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Body serializa solo los campos propios de la variante (sin la identidad),
// tal como se persisten en la columna body del event store.
func Body(e DomainEvent) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event body %s: %w", e.Kind(), err)
	}
	return data, nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	data, _ := json.Marshal(s)
	buf.Write(data)
}

// wireEnvelope es la cabecera del JSON canónico, usada al decodificar.
type wireEnvelope struct {
	EventType    string `json:"event_type"`
	EventID      string `json:"event_id"`
	DateOccurred string `json:"date_occurred"`
}

// DecodeWire reconstruye un evento desde su JSON canónico usando el codec.
// Los decoders ignoran las claves de la cabecera, así que el mismo body
// sirve para la fila del store y para el mensaje del broker.
func DecodeWire(c *Codec, data []byte) (DomainEvent, error) {
	var env wireEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid event envelope: %w", err)
	}
	occurred, err := time.Parse(time.RFC3339, env.DateOccurred)
	if err != nil {
		return nil, fmt.Errorf("invalid date_occurred in event %s: %w", env.EventID, err)
	}
	return c.Decode(env.EventType, env.EventID, occurred, data)
}
