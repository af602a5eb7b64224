package relayer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/tests/mocks"
)

func TestListenServer_DispatchesStreamToHandlers(t *testing.T) {
	// ARRANGE
	e1 := newNoteEvent("a")
	e2 := newNoteEvent("b")
	stream := mocks.NewSliceStream(e1, e2)

	var mu sync.Mutex
	var seen []string
	reg := sharedEvents.NewHandlerRegistry()
	reg.Register("test.noted", "collector", func(ctx context.Context, e sharedEvents.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.EventID())
		return nil
	})

	server := NewListenServer(stream, reg, zap.NewNop())

	// ACT
	server.Start()
	defer server.Stop()

	// ASSERT
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestListenServer_HandlerPanicDoesNotStopConsumption(t *testing.T) {
	e1 := newNoteEvent("explosivo")
	e2 := newNoteEvent("normal")
	stream := mocks.NewSliceStream(e1, e2)

	var handled atomic.Int64
	reg := sharedEvents.NewHandlerRegistry()
	reg.Register("test.noted", "flaky", func(ctx context.Context, e sharedEvents.DomainEvent) error {
		if e.EventID() == e1.EventID() {
			panic("boom")
		}
		handled.Add(1)
		return nil
	})

	server := NewListenServer(stream, reg, zap.NewNop())
	server.Start()
	defer server.Stop()

	assert.Eventually(t, func() bool {
		return handled.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestListenServer_HandlerErrorIsIsolated(t *testing.T) {
	e1 := newNoteEvent("a")
	e2 := newNoteEvent("b")
	stream := mocks.NewSliceStream(e1, e2)

	var okCount atomic.Int64
	reg := sharedEvents.NewHandlerRegistry()
	reg.Register("test.noted", "failing", func(ctx context.Context, e sharedEvents.DomainEvent) error {
		return errors.New("handler failed")
	})
	reg.Register("test.noted", "healthy", func(ctx context.Context, e sharedEvents.DomainEvent) error {
		okCount.Add(1)
		return nil
	})

	server := NewListenServer(stream, reg, zap.NewNop())
	server.Start()
	defer server.Stop()

	// el handler que falla no impide que el sano procese ambos eventos
	assert.Eventually(t, func() bool {
		return okCount.Load() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestListenServer_StopAwaitsInFlightHandlers(t *testing.T) {
	e := newNoteEvent("lento")
	stream := mocks.NewSliceStream(e)

	var finished atomic.Bool
	started := make(chan struct{})
	reg := sharedEvents.NewHandlerRegistry()
	reg.Register("test.noted", "slow", func(ctx context.Context, ev sharedEvents.DomainEvent) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	server := NewListenServer(stream, reg, zap.NewNop())
	server.Start()

	<-started
	server.Stop()

	// Stop no vuelve hasta que el handler en vuelo terminó
	assert.True(t, finished.Load())
}

func TestListenServer_StartAndStopAreIdempotent(t *testing.T) {
	server := NewListenServer(mocks.NewSliceStream(), sharedEvents.NewHandlerRegistry(), zap.NewNop())
	server.Start()
	server.Start()
	server.Stop()
	server.Stop()
}
