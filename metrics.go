package meshgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    reconstructions prometheus.Counter
//	    duration        prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordReconstruct(st meshgo.ReconstructStats, d time.Duration, err error) {
//	    p.reconstructions.Inc()
//	    p.duration.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordReconstruct is called after each Factory.Create.
	// st holds the counts gathered so far, err is nil if successful.
	RecordReconstruct(st ReconstructStats, duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save ("save") or
	// load ("load"). bytes is the size of the stored blob.
	RecordSnapshot(op string, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReconstruct(ReconstructStats, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshot(string, int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReconstructCount      atomic.Int64
	ReconstructErrors     atomic.Int64
	ReconstructTotalNanos atomic.Int64
	UnrecoveredBoundaries atomic.Int64
	VoronoiRays           atomic.Int64
	SaveCount             atomic.Int64
	LoadCount             atomic.Int64
	SnapshotErrors        atomic.Int64
	SnapshotBytes         atomic.Int64
}

// RecordReconstruct implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReconstruct(st ReconstructStats, duration time.Duration, err error) {
	b.ReconstructCount.Add(1)
	b.ReconstructTotalNanos.Add(duration.Nanoseconds())
	b.UnrecoveredBoundaries.Add(int64(st.Unrecovered))
	b.VoronoiRays.Add(int64(st.VoronoiRays))
	if err != nil {
		b.ReconstructErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, bytes int, _ time.Duration, err error) {
	switch op {
	case "save":
		b.SaveCount.Add(1)
	case "load":
		b.LoadCount.Add(1)
	}
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReconstructCount:      b.ReconstructCount.Load(),
		ReconstructErrors:     b.ReconstructErrors.Load(),
		ReconstructAvgNanos:   b.getAvgReconstructNanos(),
		UnrecoveredBoundaries: b.UnrecoveredBoundaries.Load(),
		VoronoiRays:           b.VoronoiRays.Load(),
		SaveCount:             b.SaveCount.Load(),
		LoadCount:             b.LoadCount.Load(),
		SnapshotErrors:        b.SnapshotErrors.Load(),
		SnapshotBytes:         b.SnapshotBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReconstructNanos() int64 {
	count := b.ReconstructCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReconstructTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReconstructCount      int64
	ReconstructErrors     int64
	ReconstructAvgNanos   int64
	UnrecoveredBoundaries int64
	VoronoiRays           int64
	SaveCount             int64
	LoadCount             int64
	SnapshotErrors        int64
	SnapshotBytes         int64
}
