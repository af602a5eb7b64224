package relayer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// DefaultSendBatchSize es el máximo de eventos por lote de publicación.
const DefaultSendBatchSize = 50

// PublishChannel publica un único evento serializado hacia un sink externo.
// Un fallo de transporte debe invalidar la conexión cacheada y re-lanzar
// el error para que el publisher no haga ack del evento.
type PublishChannel interface {
	Publish(ctx context.Context, e sharedEvents.DomainEvent) error
}

// Publisher drena los eventos no enviados del store hacia todos los
// channels configurados, con entrega at-least-once: solo hace ack cuando
// todos los channels aceptaron el evento.
type Publisher struct {
	store     sharedEvents.Store
	channels  []PublishChannel
	batchSize int
	log       *zap.Logger
}

func NewPublisher(store sharedEvents.Store, channels []PublishChannel, batchSize int, log *zap.Logger) *Publisher {
	if batchSize <= 0 {
		batchSize = DefaultSendBatchSize
	}
	return &Publisher{store: store, channels: channels, batchSize: batchSize, log: log}
}

// Publish procesa lotes hasta vaciar el backlog. Cada evento del lote se
// intenta en paralelo y de forma independiente: que uno falle no frena a
// los demás. Si en una pasada completa no progresó ningún evento (todos
// fallaron), devuelve sin error y se reintentará con la próxima señal.
func (p *Publisher) Publish(ctx context.Context) error {
	for {
		batch, err := p.store.NotSent(ctx, p.batchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch unsent events: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		var acked atomic.Int64
		var wg sync.WaitGroup
		for _, e := range batch {
			wg.Add(1)
			go func(e sharedEvents.DomainEvent) {
				defer wg.Done()
				if p.publishEvent(ctx, e) {
					acked.Add(1)
				}
			}(e)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return err
		}
		if acked.Load() == 0 {
			// nada progresó; evitamos un bucle caliente contra un sink caído
			return nil
		}
	}
}

// publishEvent empuja el evento a todos los channels en paralelo y hace
// ack solo si todos aceptaron. Devuelve si el evento quedó enviado.
func (p *Publisher) publishEvent(ctx context.Context, e sharedEvents.DomainEvent) bool {
	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range p.channels {
		ch := ch
		g.Go(func() error {
			return ch.Publish(gctx, e)
		})
	}

	if err := g.Wait(); err != nil {
		// sin ack: el evento sigue no-enviado y se reintenta en la próxima pasada
		p.log.Warn("⚠️ No se pudo publicar evento",
			zap.String("event_id", e.EventID()),
			zap.String("event_kind", e.Kind()),
			zap.Error(err),
		)
		return false
	}

	if err := p.store.AckSend(ctx, e); err != nil {
		// se re-publicará; entrega at-least-once
		p.log.Warn("⚠️ No se pudo marcar evento como enviado",
			zap.String("event_id", e.EventID()),
			zap.Error(err),
		)
		return false
	}

	p.log.Info("✅ Evento publicado y marcado",
		zap.String("event_id", e.EventID()),
		zap.String("event_kind", e.Kind()),
	)
	return true
}
