package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
)

// InMemoryEventStore simula el event store conservando el orden de
// inserción, como hacen los stores reales.
type InMemoryEventStore struct {
	mu     sync.Mutex
	events []storedEvent
}

type storedEvent struct {
	event  sharedEvents.DomainEvent
	isSent bool
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) Append(ctx context.Context, e sharedEvents.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, storedEvent{event: e})
	return nil
}

func (s *InMemoryEventStore) NotSent(ctx context.Context, limit int) ([]sharedEvents.DomainEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sharedEvents.DomainEvent
	for _, se := range s.events {
		if se.isSent {
			continue
		}
		out = append(out, se.event)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryEventStore) AckSend(ctx context.Context, e sharedEvents.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].event.EventID() == e.EventID() {
			s.events[i].isSent = true
			return nil
		}
	}
	// ack de un evento desconocido es un no-op
	return nil
}

// All devuelve todos los eventos guardados, enviados o no.
func (s *InMemoryEventStore) All() []sharedEvents.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sharedEvents.DomainEvent, len(s.events))
	for i, se := range s.events {
		out[i] = se.event
	}
	return out
}

// SentIDs devuelve los IDs ya marcados como enviados.
func (s *InMemoryEventStore) SentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, se := range s.events {
		if se.isSent {
			ids = append(ids, se.event.EventID())
		}
	}
	return ids
}

// MockEventStore simula el store con testify para verificar llamadas.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Append(ctx context.Context, e sharedEvents.DomainEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEventStore) NotSent(ctx context.Context, limit int) ([]sharedEvents.DomainEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sharedEvents.DomainEvent), args.Error(1)
}

func (m *MockEventStore) AckSend(ctx context.Context, e sharedEvents.DomainEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
