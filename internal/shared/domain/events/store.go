package events

import "context"

// Store es el log durable de eventos de dominio (tabla outbox).
//
// Append debe poder ejecutarse dentro de la misma transacción que la
// mutación de negocio que produjo el evento, para que ambas cosas
// commiteen atómicamente. NotSent devuelve hasta limit eventos con
// is_sent = false en orden estable de inserción. AckSend es idempotente:
// marcar un evento ya enviado (o inexistente, si otro publisher ganó la
// carrera) no es un error.
type Store interface {
	Append(ctx context.Context, e DomainEvent) error
	NotSent(ctx context.Context, limit int) ([]DomainEvent, error)
	AckSend(ctx context.Context, e DomainEvent) error
}
