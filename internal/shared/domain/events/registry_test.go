package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerRegistry_RegisterIsIdempotentPerName(t *testing.T) {
	reg := NewHandlerRegistry()
	h := func(ctx context.Context, e DomainEvent) error { return nil }

	reg.Register("test.noted", "handler-a", h)
	reg.Register("test.noted", "handler-a", h)

	assert.Len(t, reg.Handlers("test.noted"), 1)
}

func TestHandlerRegistry_DistinctNamesAccumulate(t *testing.T) {
	reg := NewHandlerRegistry()
	h := func(ctx context.Context, e DomainEvent) error { return nil }

	reg.Register("test.noted", "handler-a", h)
	reg.Register("test.noted", "handler-b", h)
	reg.Register("test.other", "handler-a", h)

	assert.Len(t, reg.Handlers("test.noted"), 2)
	assert.Len(t, reg.Handlers("test.other"), 1)
}

func TestHandlerRegistry_UnknownKindIsEmpty(t *testing.T) {
	reg := NewHandlerRegistry()
	assert.Empty(t, reg.Handlers("nunca.registrado"))
}

func TestHandlerRegistry_OnReturnsHandlerUnchanged(t *testing.T) {
	reg := NewHandlerRegistry()
	called := false
	h := reg.On("test.noted", "handler-a", func(ctx context.Context, e DomainEvent) error {
		called = true
		return nil
	})

	require.NoError(t, h(context.Background(), newTestEvent("x")))
	assert.True(t, called)
	assert.Len(t, reg.Handlers("test.noted"), 1)
}

func TestHandlerRegistry_ExtendMergesSets(t *testing.T) {
	h := func(ctx context.Context, e DomainEvent) error { return nil }

	a := NewHandlerRegistry()
	a.Register("test.noted", "handler-a", h)
	a.Register("test.noted", "shared", h)

	b := NewHandlerRegistry()
	b.Register("test.noted", "handler-b", h)
	b.Register("test.noted", "shared", h) // mismo nombre, no duplica
	b.Register("test.other", "handler-c", h)

	a.Extend(b)

	assert.Len(t, a.Handlers("test.noted"), 3)
	assert.Len(t, a.Handlers("test.other"), 1)
}
