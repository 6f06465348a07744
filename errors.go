package emitter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrListenerPanic = errors.New("listener panicked")
)

// ListenerPanicError is reported to the WithRecovery callback when a listener panics.
type ListenerPanicError struct {
	Event      any
	ListenerID ListenerID
	Value      any
	err        error
}

func (e *ListenerPanicError) Error() string {
	return fmt.Sprintf("listener %s panicked on event %v: %v", e.ListenerID, e.Event, e.Value)
}

func (e *ListenerPanicError) Unwrap() error { return e.err }

// Cause is the recovered value when it was an error, ErrListenerPanic otherwise.
func (e *ListenerPanicError) Cause() error { return errors.Cause(e.err) }

func newListenerPanicError(event any, id ListenerID, value any) *ListenerPanicError {
	var err error
	if cause, ok := value.(error); ok {
		err = errors.WithStack(&panicCause{cause: cause})
	} else {
		err = errors.WithStack(ErrListenerPanic)
	}

	return &ListenerPanicError{
		Event:      event,
		ListenerID: id,
		Value:      value,
		err:        err,
	}
}

// panicCause keeps a panicked error reachable through errors.Is/As while still matching
// ErrListenerPanic.
type panicCause struct {
	cause error
}

func (p *panicCause) Error() string { return p.cause.Error() }

func (p *panicCause) Cause() error { return p.cause }

func (p *panicCause) Unwrap() []error { return []error{ErrListenerPanic, p.cause} }
