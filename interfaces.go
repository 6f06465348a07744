package emitter

import "context"

// EventEmitter is the surface offered by *Emitter. Components that only publish or subscribe can
// depend on it instead of the concrete type.
type EventEmitter[K comparable] interface {
	// On registers a persistent listener for the given event.
	On(name K, listener Listener[K]) Unsubscribe

	// OnAny registers a persistent listener for every event.
	OnAny(listener Listener[K]) Unsubscribe

	// Once registers a listener that is removed before its first invocation.
	Once(name K, listener Listener[K]) Unsubscribe

	// Emit synchronously triggers global listeners and then the listeners of name.
	Emit(name K, data ...any)

	// EmitContext is Emit with a parent context for tracing.
	EmitContext(ctx context.Context, name K, data ...any)

	// RemoveAllListeners removes every listener.
	RemoveAllListeners()
}

var (
	_ EventEmitter[string] = (*Emitter[string])(nil)
	_ EventEmitter[any]    = (*Emitter[any])(nil)
)
