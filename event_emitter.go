// Package emitter is a synchronous publish/subscribe event dispatcher.
//
// Listeners are registered against an event name with On or Once, or against every event with
// OnAny, and are invoked in registration order when Emit is called. Global listeners always run
// before the listeners of the emitted name.
//
//	e := emitter.New[string]()
//	off := e.On("user.created", func(ev *emitter.Event[string], data ...any) {
//		fmt.Println(ev.Name, data)
//	})
//	e.Emit("user.created", 42)
//	off()
//
// Names of different kinds can share one emitter by instantiating it with any:
//
//	e := emitter.New[any]()
//	e.On(1, l1)   // not triggered by Emit("1")
//	e.On("1", l2) // not triggered by Emit(1)
package emitter

import (
	"context"
	"fmt"
	"sync"
)

type (
	// Event is handed to every listener of a single Emit call. All listeners of that call share the
	// same pointer and should treat it as read-only.
	Event[K comparable] struct {
		Name   K
		Source *Emitter[K]
	}

	// Listener receives the event and the positional data passed to Emit.
	Listener[K comparable] func(ev *Event[K], data ...any)

	// Unsubscribe removes the listener it was returned for. Calling it more than once, or after
	// RemoveAllListeners, does nothing.
	Unsubscribe func()

	listenerScope[K comparable] struct {
		name   K
		global bool
	}
)

// Emitter maps event names (of type K) to ordered listener collections and dispatches emitted
// events to them synchronously.
// The internal lock is never held while a listener runs, so listeners are free to register,
// unsubscribe, clear or emit from within their own invocation.
type Emitter[K comparable] struct {
	scoped    map[K]*listenerSet[K]
	global    *listenerSet[K]
	lock      sync.Mutex
	name      string
	logger    Logger
	ids       IDGenerator
	onRecover func(error)
	telemetry *telemetry
}

// New creates a new Emitter and returns a pointer to it.
func New[K comparable](opts ...Option) *Emitter[K] {
	o := newOptions(opts...)

	return &Emitter[K]{
		scoped:    make(map[K]*listenerSet[K]),
		global:    newListenerSet[K](),
		name:      o.name,
		logger:    o.logger.WithField("emitter", o.name),
		ids:       o.ids,
		onRecover: o.onRecover,
		telemetry: newTelemetry(o),
	}
}

// Name returns the name the emitter was configured with.
func (e *Emitter[K]) Name() string {
	return e.name
}

// On registers a persistent listener for the given event.
func (e *Emitter[K]) On(name K, listener Listener[K]) Unsubscribe {
	return e.register(modePersistent, listener, listenerScope[K]{name: name})
}

// OnAny registers a persistent listener that observes every emitted event. Global listeners are
// invoked before the listeners registered for the emitted name.
func (e *Emitter[K]) OnAny(listener Listener[K]) Unsubscribe {
	return e.register(modePersistent, listener, listenerScope[K]{global: true})
}

// Once registers a listener for the given event that is removed right before its first
// invocation.
func (e *Emitter[K]) Once(name K, listener Listener[K]) Unsubscribe {
	return e.register(modeOneShot, listener, listenerScope[K]{name: name})
}

// Emit triggers the global listeners and then the listeners registered for the given event,
// each group in registration order. It returns once every listener has run.
//
// A listener registered while a group is being dispatched is not invoked by that group. A
// listener removed while a group is being dispatched is not invoked if it has not been reached
// yet. Panics raised by listeners are not recovered unless the emitter was built WithRecovery.
func (e *Emitter[K]) Emit(name K, data ...any) {
	e.EmitContext(context.Background(), name, data...)
}

// EmitContext behaves like Emit. ctx is only used as the parent of the emit span.
func (e *Emitter[K]) EmitContext(ctx context.Context, name K, data ...any) {
	ev := &Event[K]{Name: name, Source: e}
	eventName := fmt.Sprint(name)

	ctx, span := e.telemetry.startEmit(ctx, e.name, eventName)
	defer span.End()

	e.lock.Lock()
	global := e.global
	e.lock.Unlock()

	visited := e.dispatch(ctx, global, ev, data)

	// The scoped collection is looked up after the global phase: listeners added for this name
	// by a global listener are part of the second phase.
	e.lock.Lock()
	scoped := e.scoped[name]
	e.lock.Unlock()

	if scoped != nil {
		visited += e.dispatch(ctx, scoped, ev, data)
	}

	e.telemetry.emitted(ctx, span, eventName, visited)
}

// dispatch visits the ids present in set when called. Each record is resolved again right before
// its invocation so removals made by earlier listeners are honoured.
func (e *Emitter[K]) dispatch(ctx context.Context, set *listenerSet[K], ev *Event[K], data []any) int {
	e.lock.Lock()
	if set.len() == 0 {
		e.lock.Unlock()
		return 0
	}
	ids := set.snapshot()
	e.lock.Unlock()

	visited := 0
	for _, id := range ids {
		e.lock.Lock()
		record, found := set.get(id)
		if found && record.mode == modeOneShot {
			set.remove(id)
		}
		e.lock.Unlock()

		if !found {
			continue
		}

		visited++
		e.invoke(ctx, record, ev, data)
	}

	return visited
}

func (e *Emitter[K]) invoke(ctx context.Context, record *listenerRecord[K], ev *Event[K], data []any) {
	e.telemetry.invoked(ctx)

	if e.onRecover == nil {
		record.callback(ev, data...)
		return
	}

	defer func() {
		if v := recover(); v != nil {
			err := newListenerPanicError(ev.Name, record.id, v)

			e.logger.
				WithField("event", ev.Name).
				WithField("listener", record.id).
				Errorf("listener panic recovered: %v", v)
			e.telemetry.panicked(ctx, err)

			e.onRecover(err)
		}
	}()

	record.callback(ev, data...)
}

func (e *Emitter[K]) register(mode listenerMode, listener Listener[K], scope listenerScope[K]) Unsubscribe {
	record := &listenerRecord[K]{
		id:       e.ids.NewID(),
		mode:     mode,
		callback: listener,
	}

	e.lock.Lock()
	if scope.global {
		e.global.add(record)
	} else {
		set, ok := e.scoped[scope.name]
		if !ok {
			set = newListenerSet[K]()
			e.scoped[scope.name] = set
		}
		set.add(record)
	}
	e.lock.Unlock()

	e.telemetry.registered(mode)
	e.scopeLogger(scope).
		WithField("listener", record.id).
		Debugf("registered %s listener", mode)

	return func() { e.removeListener(record.id, scope) }
}

func (e *Emitter[K]) removeListener(id ListenerID, scope listenerScope[K]) {
	e.lock.Lock()
	var removed bool
	if scope.global {
		removed = e.global.remove(id)
	} else if set, ok := e.scoped[scope.name]; ok {
		removed = set.remove(id)
	}
	e.lock.Unlock()

	if removed {
		e.scopeLogger(scope).
			WithField("listener", id).
			Debug("unsubscribed listener")
	}
}

// RemoveAllListeners removes every scoped and global listener, leaving the emitter as if it had
// just been created. Handles returned before the call become no-ops.
func (e *Emitter[K]) RemoveAllListeners() {
	e.lock.Lock()
	// Collections are emptied in place first so that a dispatch in progress stops resolving
	// records from them.
	for _, set := range e.scoped {
		set.clear()
	}
	clearAll(e.scoped)
	e.global.clear()

	e.scoped = make(map[K]*listenerSet[K])
	e.global = newListenerSet[K]()
	e.lock.Unlock()

	e.logger.Debug("removed all listeners")
}

// ListenerCount returns the number of listeners registered for the given event, global listeners
// excluded.
func (e *Emitter[K]) ListenerCount(name K) int {
	e.lock.Lock()
	defer e.lock.Unlock()

	if set, ok := e.scoped[name]; ok {
		return set.len()
	}
	return 0
}

// GlobalListenerCount returns the number of listeners registered with OnAny.
func (e *Emitter[K]) GlobalListenerCount() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.global.len()
}

// EventNames returns the names that currently have at least one listener, in no particular order.
func (e *Emitter[K]) EventNames() []K {
	e.lock.Lock()
	defer e.lock.Unlock()

	names := make([]K, 0, len(e.scoped))
	for name, set := range e.scoped {
		if set.len() > 0 {
			names = append(names, name)
		}
	}
	return names
}

func (e *Emitter[K]) scopeLogger(scope listenerScope[K]) Logger {
	if scope.global {
		return e.logger.WithField("scope", "global")
	}
	return e.logger.WithField("event", scope.name)
}
