package relayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// EventStream es una secuencia asíncrona de eventos entrantes (suscripción
// al broker, replay, canal en memoria). Next bloquea hasta el siguiente
// evento, devuelve io.EOF si la secuencia terminó, o el error del contexto
// si se canceló.
type EventStream interface {
	Next(ctx context.Context) (sharedEvents.DomainEvent, error)
}

// ListenServer consume un EventStream y re-despacha cada evento a los
// handlers locales registrados.
//
// Al contrario que el dispatcher de commit, aquí un handler que falla (o
// que entra en pánico) se aísla: se loguea y el consumo continúa. La
// cancelación sí corta: Stop espera a los handlers en vuelo antes de
// volver.
type ListenServer struct {
	stream   EventStream
	registry *sharedEvents.HandlerRegistry
	log      *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup // handlers en vuelo
}

func NewListenServer(stream EventStream, registry *sharedEvents.HandlerRegistry, log *zap.Logger) *ListenServer {
	return &ListenServer{stream: stream, registry: registry, log: log}
}

// Start lanza el bucle de consumo si no existe ya (idempotente).
func (s *ListenServer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	s.log.Info("🎧 Listener de eventos iniciado")
}

// Stop cancela el bucle y espera a que tanto el consumo como los handlers
// en vuelo terminen. Idempotente.
func (s *ListenServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.wg.Wait()
	s.cancel = nil
	s.done = nil
	s.log.Info("🛑 Listener de eventos detenido")
}

func (s *ListenServer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		e, err := s.stream.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			s.log.Error("Error leyendo del stream de eventos", zap.Error(err))
			continue
		}

		// no esperamos a los handlers de un evento para consumir el siguiente
		for name, h := range s.registry.Handlers(e.Kind()) {
			s.wg.Add(1)
			go s.runHandler(ctx, name, h, e)
		}
	}
}

func (s *ListenServer) runHandler(ctx context.Context, name string, h sharedEvents.Handler, e sharedEvents.DomainEvent) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Pánico en handler de evento",
				zap.String("handler", name),
				zap.String("event_kind", e.Kind()),
				zap.String("event_id", e.EventID()),
				zap.Error(fmt.Errorf("panic: %v", r)),
			)
		}
	}()

	if err := h(ctx, e); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.Error("Handler de evento falló",
			zap.String("handler", name),
			zap.String("event_kind", e.Kind()),
			zap.String("event_id", e.EventID()),
			zap.Error(err),
		)
	}
}
