package emitter

import (
	"github.com/stretchr/testify/mock"
)

// mockListener records invocations through testify's mock so tests can assert call counts and
// arguments.
type mockListener[K comparable] struct {
	mock.Mock

	tap func(ev *Event[K], data ...any)
}

func (m *mockListener[K]) Listener() Listener[K] {
	return func(ev *Event[K], data ...any) {
		if m.tap != nil {
			m.tap(ev, data...)
		}
		m.MethodCalled("Handle", ev.Name, data)
	}
}

// recorder collects labels in invocation order.
type recorder struct {
	calls []string
}

func (r *recorder) listener(label string) Listener[string] {
	return func(*Event[string], ...any) {
		r.calls = append(r.calls, label)
	}
}

func (r *recorder) anyListener(label string) Listener[any] {
	return func(*Event[any], ...any) {
		r.calls = append(r.calls, label)
	}
}
