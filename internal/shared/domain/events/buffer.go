package events

import (
	"context"
	"errors"
)

// ErrBufferCompleted indica un bug de ciclo de vida en el llamante:
// se intentó añadir un evento después de sellar el buffer.
var ErrBufferCompleted = errors.New("domain event buffer already completed")

// Buffer acumula los eventos emitidos durante una unidad de trabajo.
// Es de un solo uso: una transacción, un buffer. Sin sincronización
// interna; el dueño es una única gorutina.
type Buffer struct {
	events    []DomainEvent
	completed bool
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append añade el evento al final, conservando el orden de inserción.
func (b *Buffer) Append(e DomainEvent) error {
	if b.completed {
		return ErrBufferCompleted
	}
	b.events = append(b.events, e)
	return nil
}

// Complete sella el buffer y devuelve los eventos acumulados en orden.
// También los drena: una segunda llamada devuelve vacío, así que el
// dispatch solo puede ocurrir una vez por unidad de trabajo.
func (b *Buffer) Complete() []DomainEvent {
	b.completed = true
	events := b.events
	b.events = nil
	return events
}

type bufferKey struct{}

// WithBuffer cuelga el buffer de la unidad de trabajo en el contexto.
func WithBuffer(ctx context.Context, b *Buffer) context.Context {
	return context.WithValue(ctx, bufferKey{}, b)
}

// BufferFrom recupera el buffer de la transacción en curso, o nil.
func BufferFrom(ctx context.Context) *Buffer {
	b, _ := ctx.Value(bufferKey{}).(*Buffer)
	return b
}

// Emit añade el evento al buffer de la transacción en curso.
// Fuera de una transacción es un error de programación.
func Emit(ctx context.Context, e DomainEvent) error {
	b := BufferFrom(ctx)
	if b == nil {
		return errors.New("no domain event buffer in context: Emit called outside a unit of work")
	}
	return b.Append(e)
}
