package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Base
	Note string `json:"note"`
}

func (testEvent) Kind() string { return "test.noted" }

func newTestEvent(note string) testEvent {
	return testEvent{Base: NewBase(), Note: note}
}

func TestBuffer_PreservesInsertionOrder(t *testing.T) {
	// ARRANGE
	buf := NewBuffer()
	first := newTestEvent("a")
	second := newTestEvent("b")
	third := newTestEvent("c")

	// ACT
	require.NoError(t, buf.Append(first))
	require.NoError(t, buf.Append(second))
	require.NoError(t, buf.Append(third))
	drained := buf.Complete()

	// ASSERT
	require.Len(t, drained, 3)
	assert.Equal(t, first.EventID(), drained[0].EventID())
	assert.Equal(t, second.EventID(), drained[1].EventID())
	assert.Equal(t, third.EventID(), drained[2].EventID())
}

func TestBuffer_AppendAfterCompleteFails(t *testing.T) {
	buf := NewBuffer()
	require.NoError(t, buf.Append(newTestEvent("a")))
	buf.Complete()

	err := buf.Append(newTestEvent("b"))
	assert.ErrorIs(t, err, ErrBufferCompleted)
}

func TestBuffer_SecondCompleteIsEmpty(t *testing.T) {
	buf := NewBuffer()
	require.NoError(t, buf.Append(newTestEvent("a")))

	assert.Len(t, buf.Complete(), 1)
	assert.Empty(t, buf.Complete())
}

func TestBuffer_CompleteWithoutEvents(t *testing.T) {
	buf := NewBuffer()
	assert.Empty(t, buf.Complete())
}

func TestEmit_RequiresBufferInContext(t *testing.T) {
	err := Emit(context.Background(), newTestEvent("a"))
	assert.Error(t, err)
}

func TestEmit_AppendsToContextBuffer(t *testing.T) {
	buf := NewBuffer()
	ctx := WithBuffer(context.Background(), buf)

	e := newTestEvent("a")
	require.NoError(t, Emit(ctx, e))

	drained := buf.Complete()
	require.Len(t, drained, 1)
	assert.Equal(t, e.EventID(), drained[0].EventID())
}
