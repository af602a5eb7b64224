package events

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_CanonicalKeyOrder(t *testing.T) {
	// ARRANGE
	occurred := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	e := testEvent{
		Base: Base{ID: "11111111-2222-3333-4444-555555555555", Date: occurred},
		Note: "hola",
	}

	// ACT
	data, err := Encode(e)
	require.NoError(t, err)

	// ASSERT: orden fijo event_type, event_id, date_occurred, extras
	want := `{"event_type":"test.noted",` +
		`"event_id":"11111111-2222-3333-4444-555555555555",` +
		`"date_occurred":"2025-03-14T09:26:53Z",` +
		`"note":"hola"}`
	assert.Equal(t, want, string(data))
}

type bareEvent struct {
	Base
}

func (bareEvent) Kind() string { return "test.bare" }

func TestEncode_NoExtras(t *testing.T) {
	occurred := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	e := bareEvent{Base: Base{ID: "abc", Date: occurred}}

	data, err := Encode(e)
	require.NoError(t, err)

	want := `{"event_type":"test.bare","event_id":"abc","date_occurred":"2025-03-14T09:26:53Z"}`
	assert.Equal(t, want, string(data))
}

func TestDecodeWire_RoundTrip(t *testing.T) {
	codec := NewCodec()
	codec.Register("test.noted", func(eventID string, occurredAt time.Time, body []byte) (DomainEvent, error) {
		e := testEvent{Base: Base{ID: eventID, Date: occurredAt}}
		if err := unmarshalNote(body, &e.Note); err != nil {
			return nil, err
		}
		return e, nil
	})

	original := newTestEvent("round trip")
	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := DecodeWire(codec, data)
	require.NoError(t, err)

	assert.Equal(t, original.EventID(), decoded.EventID())
	assert.Equal(t, original.Kind(), decoded.Kind())
	assert.Equal(t, original.OccurredAt().Format(time.RFC3339), decoded.OccurredAt().Format(time.RFC3339))
	assert.Equal(t, original.Note, decoded.(testEvent).Note)
}

func TestDecodeWire_UnknownKind(t *testing.T) {
	codec := NewCodec()
	_, err := DecodeWire(codec, []byte(`{"event_type":"nope","event_id":"x","date_occurred":"2025-03-14T09:26:53Z"}`))
	assert.Error(t, err)
}

func TestCodec_MergeBringsDecoders(t *testing.T) {
	a := NewCodec()
	a.Register("test.noted", func(eventID string, occurredAt time.Time, body []byte) (DomainEvent, error) {
		return testEvent{Base: Base{ID: eventID, Date: occurredAt}}, nil
	})

	merged := NewCodec()
	merged.Merge(a)

	e, err := merged.Decode("test.noted", "id-1", time.Now(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "id-1", e.EventID())
}

func unmarshalNote(body []byte, dest *string) error {
	var payload struct {
		Note string `json:"note"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("invalid note body: %w", err)
	}
	*dest = payload.Note
	return nil
}
