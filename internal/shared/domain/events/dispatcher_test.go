package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcher_RunsAllHandlersPerEvent(t *testing.T) {
	// ARRANGE
	reg := NewHandlerRegistry()
	var mu sync.Mutex
	seen := make(map[string][]string) // handler → event IDs

	record := func(name string) Handler {
		return func(ctx context.Context, e DomainEvent) error {
			mu.Lock()
			defer mu.Unlock()
			seen[name] = append(seen[name], e.EventID())
			return nil
		}
	}
	reg.Register("test.noted", "first", record("first"))
	reg.Register("test.noted", "second", record("second"))

	buf := NewBuffer()
	e1 := newTestEvent("a")
	e2 := newTestEvent("b")
	require.NoError(t, buf.Append(e1))
	require.NoError(t, buf.Append(e2))

	// ACT
	err := NewDispatcher(reg, zap.NewNop()).Dispatch(context.Background(), buf)

	// ASSERT: cada handler vio ambos eventos, en orden de inserción
	require.NoError(t, err)
	assert.Equal(t, []string{e1.EventID(), e2.EventID()}, seen["first"])
	assert.Equal(t, []string{e1.EventID(), e2.EventID()}, seen["second"])
}

func TestDispatcher_HandlerErrorPropagates(t *testing.T) {
	reg := NewHandlerRegistry()
	boom := errors.New("boom")
	reg.Register("test.noted", "failing", func(ctx context.Context, e DomainEvent) error {
		return boom
	})

	buf := NewBuffer()
	require.NoError(t, buf.Append(newTestEvent("a")))

	err := NewDispatcher(reg, zap.NewNop()).Dispatch(context.Background(), buf)
	assert.ErrorIs(t, err, boom)
}

func TestDispatcher_NoHandlersIsFine(t *testing.T) {
	buf := NewBuffer()
	require.NoError(t, buf.Append(newTestEvent("a")))

	err := NewDispatcher(NewHandlerRegistry(), zap.NewNop()).Dispatch(context.Background(), buf)
	assert.NoError(t, err)
}

func TestDispatcher_WaitsForConcurrentHandlers(t *testing.T) {
	reg := NewHandlerRegistry()
	done := make(chan struct{})
	reg.Register("test.noted", "slow", func(ctx context.Context, e DomainEvent) error {
		close(done)
		return nil
	})

	buf := NewBuffer()
	require.NoError(t, buf.Append(newTestEvent("a")))

	require.NoError(t, NewDispatcher(reg, zap.NewNop()).Dispatch(context.Background(), buf))

	select {
	case <-done:
	default:
		t.Fatal("dispatch volvió antes de que el handler terminara")
	}
}
