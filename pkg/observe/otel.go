package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/vtree"
)

// Default tracer name for vtree runtimes.
const defaultTracerName = "vtree"

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "vtree").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter determines which components are traced. If nil, all are.
	Filter func(component string) bool

	// Context is the parent of every span. Default: context.Background().
	Context context.Context
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) { c.TracerName = name }
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) { c.Provider = p }
}

// WithComponentFilter sets a filter function for components.
func WithComponentFilter(filter func(component string) bool) TracerOption {
	return func(c *TracerConfig) { c.Filter = filter }
}

// WithParentContext sets the context spans are started from.
func WithParentContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) { c.Context = ctx }
}

// Tracing is a vtree.Observer emitting one span per render and per flush.
// Spans carry the measured start and end times. Mounts and unmounts are
// recorded as events on a zero-length span.
type Tracing struct {
	tracer trace.Tracer
	filter func(string) bool
	ctx    context.Context
}

// Tracer creates a Tracing observer.
//
// The tracer uses the global OpenTelemetry tracer provider unless one is
// passed with WithTracerProvider. Configure it in main() before creating
// runtimes:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func Tracer(opts ...TracerOption) *Tracing {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Tracing{
		tracer: provider.Tracer(config.TracerName),
		filter: config.Filter,
		ctx:    ctx,
	}
}

func (t *Tracing) traced(component string) bool {
	return t.filter == nil || t.filter(component)
}

// Rendered implements vtree.Observer.
func (t *Tracing) Rendered(info vtree.RenderInfo) {
	if !t.traced(info.Component) {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("vtree.component", info.Component),
	}
	if info.Delay > 0 {
		attrs = append(attrs, attribute.Int64("vtree.delay_ms", info.Delay.Milliseconds()))
	}

	_, span := t.tracer.Start(t.ctx, "vtree.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(info.Start),
	)
	if info.Err != nil {
		span.RecordError(info.Err)
		span.SetStatus(codes.Error, info.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(info.Start.Add(info.Duration)))
}

// Mounted implements vtree.Observer.
func (t *Tracing) Mounted(component string) { t.lifecycle("vtree.mount", component) }

// Unmounted implements vtree.Observer.
func (t *Tracing) Unmounted(component string) { t.lifecycle("vtree.unmount", component) }

func (t *Tracing) lifecycle(name, component string) {
	if !t.traced(component) {
		return
	}
	now := time.Now()
	_, span := t.tracer.Start(t.ctx, name,
		trace.WithAttributes(attribute.String("vtree.component", component)),
		trace.WithTimestamp(now),
	)
	span.End(trace.WithTimestamp(now))
}

// Flushed implements vtree.Observer.
func (t *Tracing) Flushed(info vtree.FlushInfo) {
	_, span := t.tracer.Start(t.ctx, "vtree.flush",
		trace.WithAttributes(
			attribute.Int("vtree.rendered", info.Rendered),
			attribute.Int("vtree.failed", info.Failed),
		),
		trace.WithTimestamp(info.Start),
	)
	if info.Failed > 0 {
		span.SetStatus(codes.Error, "flush had failing renders")
	}
	span.End(trace.WithTimestamp(info.Start.Add(info.Duration)))
}
