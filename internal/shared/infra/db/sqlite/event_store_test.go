package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedEvents "github.com/davicafu/hexanews/internal/shared/domain/events"
	"github.com/davicafu/hexanews/internal/shared/infra/tx"
)

type noteEvent struct {
	sharedEvents.Base
	Note string `json:"note"`
}

func (noteEvent) Kind() string { return "test.noted" }

func testCodec() *sharedEvents.Codec {
	c := sharedEvents.NewCodec()
	c.Register("test.noted", func(eventID string, occurredAt time.Time, body []byte) (sharedEvents.DomainEvent, error) {
		var e noteEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return nil, err
		}
		e.Base = sharedEvents.Base{ID: eventID, Date: occurredAt}
		return e, nil
	})
	return c
}

func openStore(t *testing.T) (*sql.DB, *EventStoreSQLite) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// cada conexión del pool vería una BD en memoria distinta
	db.SetMaxOpenConns(1)
	require.NoError(t, InitEventSchema(db))
	t.Cleanup(func() { db.Close() })
	return db, NewEventStoreSQLite(db, testCodec())
}

func eventAt(note string, at time.Time) noteEvent {
	return noteEvent{
		Base: sharedEvents.Base{ID: sharedEvents.NewBase().ID, Date: at},
		Note: note,
	}
}

func TestEventStore_AppendAndFetchInOrder(t *testing.T) {
	// ARRANGE
	_, store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	second := eventAt("second", base.Add(time.Minute))
	first := eventAt("first", base)
	require.NoError(t, store.Append(ctx, second))
	require.NoError(t, store.Append(ctx, first))

	// ACT
	pending, err := store.NotSent(ctx, 10)

	// ASSERT: orden estable por fecha de ocurrencia
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.EventID(), pending[0].EventID())
	assert.Equal(t, second.EventID(), pending[1].EventID())
	assert.Equal(t, "first", pending[0].(noteEvent).Note)
}

func TestEventStore_NotSentHonorsLimit(t *testing.T) {
	_, store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, eventAt("e", base.Add(time.Duration(i)*time.Second))))
	}

	pending, err := store.NotSent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestEventStore_AckSendHidesEvent(t *testing.T) {
	_, store := openStore(t)
	ctx := context.Background()

	e := eventAt("done", time.Now().UTC())
	require.NoError(t, store.Append(ctx, e))
	require.NoError(t, store.AckSend(ctx, e))

	pending, err := store.NotSent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEventStore_AckSendIsIdempotent(t *testing.T) {
	_, store := openStore(t)
	ctx := context.Background()

	e := eventAt("done", time.Now().UTC())
	require.NoError(t, store.Append(ctx, e))
	require.NoError(t, store.AckSend(ctx, e))
	require.NoError(t, store.AckSend(ctx, e))

	// incluso para un evento que nunca existió
	assert.NoError(t, store.AckSend(ctx, eventAt("ghost", time.Now().UTC())))
}

func TestEventStore_AppendJoinsContextTransaction(t *testing.T) {
	db, store := openStore(t)
	ctx := context.Background()

	t1, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	e := eventAt("tx", time.Now().UTC())
	require.NoError(t, store.Append(tx.With(ctx, t1), e))
	require.NoError(t, t1.Rollback())

	// el rollback se llevó el evento: no hubo insert fuera de la tx
	pending, err := store.NotSent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
