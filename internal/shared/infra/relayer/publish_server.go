package relayer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// PublishServer ejecuta al Publisher en segundo plano cada vez que alguien
// lo despierta. La señal es por nivel: despertar varias veces durante una
// pasada equivale a despertar una; una señal puesta durante la pasada no
// se pierde.
//
// No hay intervalo de polling fijo: el commit de cada transacción llama a
// Wake, y Start ya prima la señal para drenar el backlog inicial.
type PublishServer struct {
	publisher *Publisher
	log       *zap.Logger

	mu     sync.Mutex
	flag   chan struct{} // buffer 1: señal level-triggered
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPublishServer(publisher *Publisher, log *zap.Logger) *PublishServer {
	return &PublishServer{
		publisher: publisher,
		log:       log,
		flag:      make(chan struct{}, 1),
	}
}

// Start lanza la tarea de fondo si no existe (idempotente) y pone la
// señal para que la primera pasada ocurra de inmediato.
func (s *PublishServer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	s.wakeLocked()
	s.log.Info("🚀 Publish server iniciado")
}

// Wake pone la señal de "hay que publicar". Seguro desde cualquier
// gorutina, también con el server parado (la señal se drena en Stop).
func (s *PublishServer) Wake() {
	s.wakeLocked()
}

func (s *PublishServer) wakeLocked() {
	select {
	case s.flag <- struct{}{}:
	default:
	}
}

// Stop cancela la tarea de fondo y espera a que termine, incluida la
// pasada en vuelo: al volver no queda actividad de publicación. Parar un
// server ya parado es un no-op; la señal queda limpia.
func (s *PublishServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil

	select {
	case <-s.flag:
	default:
	}
	s.log.Info("🛑 Publish server detenido")
}

func (s *PublishServer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.flag:
			// recibir limpia la señal; una nueva durante la pasada
			// vuelve a llenar el buffer y el próximo wait no bloquea
			if err := s.publisher.Publish(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Warn("⚠️ Pasada de publicación abortada", zap.Error(err))
			}
		}
	}
}
