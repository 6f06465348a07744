package emitter

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultName is used for log fields and telemetry when no name is configured.
const DefaultName = "emitter"

type (
	options struct {
		name             string
		logger           Logger
		ids              IDGenerator
		onRecover        func(error)
		telemetryEnabled bool
		tracerProvider   trace.TracerProvider
		meterProvider    metric.MeterProvider
	}

	// Option configures an Emitter.
	Option func(*options)
)

func newOptions(opts ...Option) *options {
	o := &options{
		name:             DefaultName,
		logger:           noopLogger{},
		ids:              NewAlphabetIDGenerator(DefaultIDPrefix, DefaultIDLength),
		telemetryEnabled: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	return o
}

// WithName sets the name reported in log fields, span names and metric attributes.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIDGenerator sets the source of listener ids.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		if g != nil {
			o.ids = g
		}
	}
}

// WithRecovery isolates listeners from each other: a panicking listener is recovered, reported to
// fn as a *ListenerPanicError and the dispatch goes on with the next listener.
// Without this option panics unwind through Emit.
func WithRecovery(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.onRecover = fn
		}
	}
}

// WithTelemetry enables/disables tracing and metrics. Enabled by default.
func WithTelemetry(enabled bool) Option {
	return func(o *options) {
		o.telemetryEnabled = enabled
	}
}

// WithTracerProvider sets the tracer provider used for emit spans. Defaults to the otel global.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithMeterProvider sets the meter provider used for counters. Defaults to the otel global.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}
