package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vtree/pkg/vtree"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render and flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// flushSizeBuckets cover one to a few hundred components per flush.
var flushSizeBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250}

// Metrics is a vtree.Observer recording Prometheus metrics.
//
// Metrics collected:
//   - vtree_renders_total: renders by component and status
//   - vtree_render_duration_seconds: render and patch duration by component
//   - vtree_render_delay_seconds: time between SetState and the batched render
//   - vtree_mounts_total, vtree_unmounts_total: lifecycle transitions by component
//   - vtree_mounted_components: components currently mounted
//   - vtree_flushes_total: scheduler flushes that rendered or failed
//   - vtree_flush_size: components rendered per flush
//   - vtree_flush_duration_seconds: flush duration
type Metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderDelay    prometheus.Histogram
	mountsTotal    *prometheus.CounterVec
	unmountsTotal  *prometheus.CounterVec
	mounted        prometheus.Gauge
	flushesTotal   prometheus.Counter
	flushSize      prometheus.Histogram
	flushDuration  prometheus.Histogram
}

// Prometheus creates a Metrics observer registered with the configured
// registry. Registering twice with the same registry panics, so tests should
// pass a fresh prometheus.NewRegistry().
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterOpts := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}
	histogramOpts := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     buckets,
		}
	}

	return &Metrics{
		rendersTotal: factory.NewCounterVec(
			counterOpts("renders_total", "Total number of component renders"),
			[]string{"component", "status"}),
		renderDuration: factory.NewHistogramVec(
			histogramOpts("render_duration_seconds", "Component render and patch duration in seconds", config.Buckets),
			[]string{"component"}),
		renderDelay: factory.NewHistogram(
			histogramOpts("render_delay_seconds", "Delay between a state change and its batched render", config.Buckets)),
		mountsTotal: factory.NewCounterVec(
			counterOpts("mounts_total", "Total number of component mounts"),
			[]string{"component"}),
		unmountsTotal: factory.NewCounterVec(
			counterOpts("unmounts_total", "Total number of component unmounts"),
			[]string{"component"}),
		mounted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_components",
			Help:        "Number of currently mounted components",
			ConstLabels: config.ConstLabels,
		}),
		flushesTotal: factory.NewCounter(
			counterOpts("flushes_total", "Total number of dirty queue flushes")),
		flushSize: factory.NewHistogram(
			histogramOpts("flush_size", "Components rendered per flush", flushSizeBuckets)),
		flushDuration: factory.NewHistogram(
			histogramOpts("flush_duration_seconds", "Dirty queue flush duration in seconds", config.Buckets)),
	}
}

// Rendered implements vtree.Observer.
func (m *Metrics) Rendered(info vtree.RenderInfo) {
	status := "success"
	if info.Err != nil {
		status = "error"
	}
	m.rendersTotal.WithLabelValues(info.Component, status).Inc()
	m.renderDuration.WithLabelValues(info.Component).Observe(info.Duration.Seconds())
	if info.Delay > 0 {
		m.renderDelay.Observe(info.Delay.Seconds())
	}
}

// Mounted implements vtree.Observer.
func (m *Metrics) Mounted(component string) {
	m.mountsTotal.WithLabelValues(component).Inc()
	m.mounted.Inc()
}

// Unmounted implements vtree.Observer.
func (m *Metrics) Unmounted(component string) {
	m.unmountsTotal.WithLabelValues(component).Inc()
	m.mounted.Dec()
}

// Flushed implements vtree.Observer.
func (m *Metrics) Flushed(info vtree.FlushInfo) {
	m.flushesTotal.Inc()
	m.flushSize.Observe(float64(info.Rendered))
	m.flushDuration.Observe(info.Duration.Seconds())
}
