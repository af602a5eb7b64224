package relayer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/tests/mocks"
)

type noteEvent struct {
	sharedEvents.Base
	Note string `json:"note"`
}

func (noteEvent) Kind() string { return "test.noted" }

func newNoteEvent(note string) noteEvent {
	return noteEvent{Base: sharedEvents.NewBase(), Note: note}
}

func TestPublisher_PublishAndAck(t *testing.T) {
	// ARRANGE
	store := mocks.NewInMemoryEventStore()
	e1 := newNoteEvent("a")
	e2 := newNoteEvent("b")
	require.NoError(t, store.Append(context.Background(), e1))
	require.NoError(t, store.Append(context.Background(), e2))

	channel := &mocks.RecordingChannel{}
	publisher := NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop())

	// ACT
	err := publisher.Publish(context.Background())

	// ASSERT
	require.NoError(t, err)
	assert.Len(t, channel.Published(), 2)
	assert.ElementsMatch(t, []string{e1.EventID(), e2.EventID()}, store.SentIDs())

	// una segunda pasada no re-publica nada
	require.NoError(t, publisher.Publish(context.Background()))
	assert.Len(t, channel.Published(), 2)
}

func TestPublisher_ChannelFailureLeavesUnsent(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	require.NoError(t, store.Append(context.Background(), newNoteEvent("a")))

	channel := &mocks.RecordingChannel{Err: errors.New("kafka is down")}
	publisher := NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop())

	err := publisher.Publish(context.Background())

	require.NoError(t, err) // la pasada termina sin progreso, no con error
	assert.Empty(t, store.SentIDs())
}

func TestPublisher_AckOnlyWhenAllChannelsSucceed(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	require.NoError(t, store.Append(context.Background(), newNoteEvent("a")))

	good := &mocks.RecordingChannel{}
	bad := &mocks.RecordingChannel{Err: errors.New("clickhouse is down")}
	publisher := NewPublisher(store, []PublishChannel{good, bad}, 10, zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background()))

	// el canal sano pudo recibirlo, pero sin ack se reintentará
	assert.Empty(t, store.SentIDs())
}

func TestPublisher_OneFailureDoesNotBlockTheRest(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	poison := newNoteEvent("poison")
	healthy := newNoteEvent("healthy")
	require.NoError(t, store.Append(context.Background(), poison))
	require.NoError(t, store.Append(context.Background(), healthy))

	channel := &selectiveChannel{failID: poison.EventID()}
	publisher := NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background()))

	assert.Equal(t, []string{healthy.EventID()}, store.SentIDs())
}

func TestPublisher_DrainsInBatches(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), newNoteEvent("e")))
	}

	channel := &mocks.RecordingChannel{}
	publisher := NewPublisher(store, []PublishChannel{channel}, 2, zap.NewNop())

	require.NoError(t, publisher.Publish(context.Background()))

	// batchSize 2, pero la pasada repite hasta vaciar el backlog
	assert.Len(t, store.SentIDs(), 5)
	assert.Len(t, channel.Published(), 5)
}

func TestPublisher_StoreFetchErrorAbortsPass(t *testing.T) {
	store := new(mocks.MockEventStore)
	store.On("NotSent", mock.Anything, 10).
		Return([]sharedEvents.DomainEvent(nil), errors.New("db is down")).Once()

	publisher := NewPublisher(store, nil, 10, zap.NewNop())
	err := publisher.Publish(context.Background())

	assert.Error(t, err)
	store.AssertExpectations(t)
}

// selectiveChannel falla solo para un event ID concreto.
type selectiveChannel struct {
	failID string
}

func (c *selectiveChannel) Publish(ctx context.Context, e sharedEvents.DomainEvent) error {
	if e.EventID() == c.failID {
		return errors.New("transient failure")
	}
	return nil
}
