package relayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexanews/tests/mocks"
)

func TestPublishServer_StartDrainsBacklog(t *testing.T) {
	// ARRANGE: hay un evento pendiente antes de arrancar
	store := mocks.NewInMemoryEventStore()
	require.NoError(t, store.Append(context.Background(), newNoteEvent("backlog")))

	channel := &mocks.RecordingChannel{}
	server := NewPublishServer(NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop()), zap.NewNop())

	// ACT
	server.Start()
	defer server.Stop()

	// ASSERT: Start prima la señal, el backlog sale sin Wake explícito
	assert.Eventually(t, func() bool {
		return len(channel.Published()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPublishServer_WakeTriggersPublish(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	channel := &mocks.RecordingChannel{}
	server := NewPublishServer(NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop()), zap.NewNop())

	server.Start()
	defer server.Stop()

	// llega un evento después del arranque
	require.NoError(t, store.Append(context.Background(), newNoteEvent("later")))
	server.Wake()

	assert.Eventually(t, func() bool {
		return len(channel.Published()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestPublishServer_RepeatedWakesCoalesce(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	channel := &mocks.RecordingChannel{}
	server := NewPublishServer(NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop()), zap.NewNop())

	server.Start()
	defer server.Stop()

	require.NoError(t, store.Append(context.Background(), newNoteEvent("a")))
	for i := 0; i < 10; i++ {
		server.Wake()
	}

	assert.Eventually(t, func() bool {
		return len(channel.Published()) == 1
	}, time.Second, 5*time.Millisecond)
	// ninguna señal acumulada re-publica el evento ya enviado
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, channel.Published(), 1)
}

func TestPublishServer_NoPublishAfterStop(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	channel := &mocks.RecordingChannel{}
	server := NewPublishServer(NewPublisher(store, []PublishChannel{channel}, 10, zap.NewNop()), zap.NewNop())

	server.Start()
	server.Stop()

	require.NoError(t, store.Append(context.Background(), newNoteEvent("late")))
	server.Wake()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, channel.Published())
}

func TestPublishServer_StartAndStopAreIdempotent(t *testing.T) {
	store := mocks.NewInMemoryEventStore()
	server := NewPublishServer(NewPublisher(store, nil, 10, zap.NewNop()), zap.NewNop())

	server.Start()
	server.Start()
	server.Stop()
	server.Stop()

	// re-arrancar tras Stop funciona
	server.Start()
	server.Stop()
}
