package emitter

import "context"

// Topic binds an event name to a payload type so that publishers and listeners of that name agree
// on T at compile time. It is a thin view over the emitter: topic listeners are ordinary scoped
// listeners and keep the same ordering and removal rules.
type Topic[K comparable, T any] struct {
	emitter *Emitter[K]
	name    K
}

// NewTopic returns a Topic for name on e.
func NewTopic[K comparable, T any](e *Emitter[K], name K) *Topic[K, T] {
	return &Topic[K, T]{emitter: e, name: name}
}

// Name returns the event name of the topic.
func (t *Topic[K, T]) Name() K {
	return t.name
}

// On registers a persistent listener for the topic.
func (t *Topic[K, T]) On(listener func(ev *Event[K], data T)) Unsubscribe {
	return t.emitter.On(t.name, t.adapt(listener))
}

// Once registers a one-shot listener for the topic.
func (t *Topic[K, T]) Once(listener func(ev *Event[K], data T)) Unsubscribe {
	return t.emitter.Once(t.name, t.adapt(listener))
}

// Emit emits the topic name with data as the only positional value.
func (t *Topic[K, T]) Emit(data T) {
	t.emitter.Emit(t.name, data)
}

// EmitContext is Emit with a parent context for tracing.
func (t *Topic[K, T]) EmitContext(ctx context.Context, data T) {
	t.emitter.EmitContext(ctx, t.name, data)
}

// adapt skips emissions of the same name whose first value is not a T, which can only come from
// raw Emit calls on the underlying emitter. A one-shot topic listener is still consumed by such
// an emission.
func (t *Topic[K, T]) adapt(listener func(ev *Event[K], data T)) Listener[K] {
	return func(ev *Event[K], data ...any) {
		if len(data) == 0 {
			t.skip(ev, nil)
			return
		}

		typed, ok := data[0].(T)
		if !ok {
			t.skip(ev, data[0])
			return
		}

		listener(ev, typed)
	}
}

func (t *Topic[K, T]) skip(ev *Event[K], got any) {
	t.emitter.logger.
		WithField("event", ev.Name).
		Debugf("topic listener skipped payload of type %T", got)
}
