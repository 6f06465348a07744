package emitter

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/sonirico/emitter"

const (
	attrEmitterName   = "emitter.name"
	attrEventName     = "event.name"
	attrListenerMode  = "listener.mode"
	attrListenerCount = "emitter.listeners"
)

type telemetry struct {
	enabled    bool
	tracer     trace.Tracer
	attrs      metric.MeasurementOption
	emits      metric.Int64Counter
	invokes    metric.Int64Counter
	registers  metric.Int64Counter
	panics     metric.Int64Counter
	emitterKey attribute.KeyValue
}

func newTelemetry(o *options) *telemetry {
	if !o.telemetryEnabled {
		return &telemetry{
			tracer: tracenoop.NewTracerProvider().Tracer(instrumentationName),
		}
	}

	meter := o.meterProvider.Meter(instrumentationName)
	emitterKey := attribute.String(attrEmitterName, o.name)

	return &telemetry{
		enabled:    true,
		tracer:     o.tracerProvider.Tracer(instrumentationName),
		attrs:      metric.WithAttributes(emitterKey),
		emitterKey: emitterKey,
		emits: newCounter(meter, o.logger, "emitter.emitted",
			"Total number of emitted events"),
		invokes: newCounter(meter, o.logger, "emitter.listener.invoked",
			"Total number of listener invocations"),
		registers: newCounter(meter, o.logger, "emitter.listener.registered",
			"Total number of registered listeners"),
		panics: newCounter(meter, o.logger, "emitter.listener.panics",
			"Total number of recovered listener panics"),
	}
}

func newCounter(meter metric.Meter, l Logger, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		l.WithField("instrument", name).Warnf("cannot create counter: %s", err)
		return metricnoop.Int64Counter{}
	}
	return c
}

func (t *telemetry) startEmit(ctx context.Context, emitterName, eventName string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, emitterName+".emit",
		trace.WithAttributes(
			attribute.String(attrEmitterName, emitterName),
			attribute.String(attrEventName, eventName)),
		trace.WithSpanKind(trace.SpanKindInternal))
}

func (t *telemetry) emitted(ctx context.Context, span trace.Span, eventName string, listeners int) {
	span.SetAttributes(attribute.Int(attrListenerCount, listeners))

	if !t.enabled {
		return
	}
	t.emits.Add(ctx, 1, metric.WithAttributes(t.emitterKey, attribute.String(attrEventName, eventName)))
}

func (t *telemetry) invoked(ctx context.Context) {
	if !t.enabled {
		return
	}
	t.invokes.Add(ctx, 1, t.attrs)
}

func (t *telemetry) registered(mode listenerMode) {
	if !t.enabled {
		return
	}
	t.registers.Add(context.Background(), 1,
		metric.WithAttributes(t.emitterKey, attribute.String(attrListenerMode, mode.String())))
}

func (t *telemetry) panicked(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if !t.enabled {
		return
	}
	t.panics.Add(ctx, 1, t.attrs)
}
