package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// MockChannel simula un PublishChannel.
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(ctx context.Context, e sharedEvents.DomainEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// RecordingChannel acumula los eventos publicados, en orden de llegada.
type RecordingChannel struct {
	mu     sync.Mutex
	Events []sharedEvents.DomainEvent
	Err    error // si no es nil, Publish falla con este error
}

func (c *RecordingChannel) Publish(ctx context.Context, e sharedEvents.DomainEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Events = append(c.Events, e)
	return nil
}

func (c *RecordingChannel) Published() []sharedEvents.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sharedEvents.DomainEvent, len(c.Events))
	copy(out, c.Events)
	return out
}

// SliceStream entrega una secuencia fija de eventos y después io.EOF.
type SliceStream struct {
	mu     sync.Mutex
	events []sharedEvents.DomainEvent
}

func NewSliceStream(events ...sharedEvents.DomainEvent) *SliceStream {
	return &SliceStream{events: events}
}

func (s *SliceStream) Next(ctx context.Context) (sharedEvents.DomainEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil, io.EOF
	}
	e := s.events[0]
	s.events = s.events[1:]
	return e, nil
}
