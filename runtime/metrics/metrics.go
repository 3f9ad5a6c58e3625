// Package metrics exports render statistics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/odvcencio/furry-reactive/runtime"
)

// Config configures the render collector.
type Config struct {
	// Namespace is the metrics namespace (default: "furry").
	Namespace string

	// Subsystem is the metrics subsystem (default: "render").
	Subsystem string

	// Buckets are the histogram buckets for frame durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the render collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "furry",
		Subsystem: "render",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records frame statistics. It implements runtime.RenderObserver.
type Collector struct {
	frames        prometheus.Counter
	fullRedraws   prometheus.Counter
	flushedCells  prometheus.Counter
	dirtyCells    prometheus.Histogram
	frameDuration *prometheus.HistogramVec
	layers        prometheus.Gauge
}

var _ runtime.RenderObserver = (*Collector)(nil)

// New registers render metrics and returns a collector.
// It panics if the metrics are already registered with the registry.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "frames_total",
			Help:      "Total number of rendered frames",
		}),
		fullRedraws: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "full_redraws_total",
			Help:      "Frames flushed as a full redraw",
		}),
		flushedCells: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "flushed_cells_total",
			Help:      "Cells written to the backend",
		}),
		dirtyCells: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "dirty_cells",
			Help:      "Dirty cells per frame",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		frameDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "duration_seconds",
			Help:      "Frame phase duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"phase"}),
		layers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "layers",
			Help:      "Layers on screen at the last frame",
		}),
	}
}

// ObserveRender records one frame.
func (c *Collector) ObserveRender(stats runtime.RenderStats) {
	if c == nil {
		return
	}
	c.frames.Inc()
	if stats.FullRedraw {
		c.fullRedraws.Inc()
	}
	c.flushedCells.Add(float64(stats.FlushedCells))
	c.dirtyCells.Observe(float64(stats.DirtyCells))
	c.frameDuration.WithLabelValues("render").Observe(stats.RenderDuration.Seconds())
	c.frameDuration.WithLabelValues("flush").Observe(stats.FlushDuration.Seconds())
	c.frameDuration.WithLabelValues("total").Observe(stats.TotalDuration.Seconds())
	c.layers.Set(float64(stats.LayerCount))
}
