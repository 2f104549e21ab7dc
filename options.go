package meshgo

import (
	"github.com/hupe1980/meshgo/geom"
	"github.com/hupe1980/meshgo/triangle"
)

type options struct {
	triangulator     triangle.Triangulator
	switches         triangle.Switches
	mergeTolerance   float64
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		triangulator:     triangle.NewDelaunay(),
		switches:         triangle.DefaultSwitches(),
		mergeTolerance:   geom.DefaultRelTolerance,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Factory or a loaded System.
type Option func(*options)

// WithTriangulator replaces the built-in Bowyer-Watson engine.
//
// If nil is passed, the built-in engine is used.
func WithTriangulator(t triangle.Triangulator) Option {
	return func(o *options) {
		if t == nil {
			t = triangle.NewDelaunay()
		}
		o.triangulator = t
	}
}

// WithSwitches replaces the triangulator switches (default "pcezvQ").
func WithSwitches(sw triangle.Switches) Option {
	return func(o *options) {
		o.switches = sw
	}
}

// WithMaxArea requests a maximum triangle area (the "a" switch).
// The built-in engine does not refine and rejects it.
func WithMaxArea(area float64) Option {
	return func(o *options) {
		o.switches.MaxArea = area
	}
}

// WithMergeTolerance sets the tolerance used to match recovered boundary
// endpoints, relative to the diagonal of the output point cloud.
func WithMergeTolerance(rel float64) Option {
	return func(o *options) {
		if rel > 0 {
			o.mergeTolerance = rel
		}
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
