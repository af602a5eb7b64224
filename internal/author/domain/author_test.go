package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexanews/internal/shared/domain/events"
)

func TestNewAuthor_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"nombre normal", "Jorge Luis Borges", false},
		{"con espacios alrededor", "  Silvina Ocampo  ", false},
		{"vacío", "", true},
		{"solo espacios", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			author, err := NewAuthor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthorName)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, author.ID)
			assert.NotEmpty(t, author.Name)
		})
	}
}

func TestAuthorDeleted_EncodeAndDecode(t *testing.T) {
	evt := NewAuthorDeleted("some-author-id")

	data, err := events.Encode(evt)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_type":"author.deleted"`)
	assert.Contains(t, string(data), `"author_id":"some-author-id"`)

	decoded, err := events.DecodeWire(EventCodec(), data)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID(), decoded.EventID())
	assert.Equal(t, "some-author-id", decoded.(AuthorDeleted).AuthorID)
}

func TestAuthorDeleted_BodyHasOnlyExtras(t *testing.T) {
	evt := AuthorDeleted{
		Base:     events.Base{ID: "id-1", Date: time.Now().UTC()},
		AuthorID: "a-1",
	}

	body, err := events.Body(evt)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, map[string]any{"author_id": "a-1"}, payload)
}
