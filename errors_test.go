package emitter

import (
	"bytes"
	"errors"
	"io"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryContinuesDispatch(t *testing.T) {
	var reported []error
	emitter := New[string](WithRecovery(func(err error) { reported = append(reported, err) }))
	rec := &recorder{}

	emitter.OnAny(rec.listener("G1"))
	emitter.OnAny(func(*Event[string], ...any) { panic("boom") })
	emitter.On("x", rec.listener("S1"))

	require.NotPanics(t, func() { emitter.Emit("x") })

	assert.Equal(t, []string{"G1", "S1"}, rec.calls)
	require.Len(t, reported, 1)

	var panicErr *ListenerPanicError
	require.ErrorAs(t, reported[0], &panicErr)
	assert.Equal(t, "x", panicErr.Event)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.ListenerID)
	assert.ErrorIs(t, reported[0], ErrListenerPanic)
	assert.Equal(t, ErrListenerPanic, panicErr.Cause())
	assert.Contains(t, panicErr.Error(), "boom")
}

func TestRecoveryKeepsPanickedError(t *testing.T) {
	var reported error
	emitter := New[string](WithRecovery(func(err error) { reported = err }))

	emitter.On("x", func(*Event[string], ...any) { panic(io.ErrUnexpectedEOF) })
	emitter.Emit("x")

	require.Error(t, reported)
	assert.ErrorIs(t, reported, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, reported, ErrListenerPanic)
	assert.Equal(t, io.ErrUnexpectedEOF, pkgerrors.Cause(reported.(*ListenerPanicError)))
}

func TestRecoveryOfOnceListener(t *testing.T) {
	calls := 0
	emitter := New[string](WithRecovery(func(error) {}))

	emitter.Once("x", func(*Event[string], ...any) {
		calls++
		panic("once")
	})
	emitter.Emit("x")
	emitter.Emit("x")

	assert.Equal(t, 1, calls)
	assert.Zero(t, emitter.ListenerCount("x"))
}

func TestRecoveryLogsError(t *testing.T) {
	var buf bytes.Buffer
	emitter := New[string](
		WithName("orders"),
		WithLogger(NewWriterLogger(&buf)),
		WithRecovery(func(error) {}),
	)

	emitter.On("x", func(*Event[string], ...any) { panic("kaput") })
	emitter.Emit("x")

	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "emitter=orders")
	assert.Contains(t, buf.String(), "listener panic recovered: kaput")
}

func TestWithoutRecoveryErrorPanicsUnwrapped(t *testing.T) {
	emitter := New[string]()
	emitter.On("x", func(*Event[string], ...any) { panic(io.EOF) })

	defer func() {
		v := recover()
		err, ok := v.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, io.EOF))
		assert.False(t, errors.Is(err, ErrListenerPanic))
	}()

	emitter.Emit("x")
}
