package events

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dispatcher drena un buffer al commit de la transacción e invoca los
// handlers locales de cada evento. Los handlers de un mismo evento corren
// concurrentes; los eventos se recorren en orden de inserción.
//
// Un handler que falla hace fallar el dispatch completo: el cambio de
// negocio ya está commiteado, pero el llamante ve el error del side effect
// (la copia durable del evento se reintenta por el outbox de todos modos).
type Dispatcher struct {
	registry *HandlerRegistry
	log      *zap.Logger
}

func NewDispatcher(registry *HandlerRegistry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch sella el buffer y ejecuta todos los handlers registrados para
// cada evento, esperando a que terminen antes de devolver.
func (d *Dispatcher) Dispatch(ctx context.Context, buf *Buffer) error {
	for _, e := range buf.Complete() {
		handlers := d.registry.Handlers(e.Kind())
		if len(handlers) == 0 {
			continue
		}

		g, gctx := errgroup.WithContext(ctx)
		for name, h := range handlers {
			name, h := name, h
			g.Go(func() error {
				if err := h(gctx, e); err != nil {
					d.log.Error("Handler de evento falló en commit",
						zap.String("handler", name),
						zap.String("event_kind", e.Kind()),
						zap.String("event_id", e.EventID()),
						zap.Error(err),
					)
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}
