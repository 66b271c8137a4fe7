// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the cleaning pipeline.
//
// It exposes a narrow Backend interface (counters plus duration
// observations) behind a global, pluggable backend that defaults to a
// no-op, so instrumentation calls are always safe even when no real
// metrics system is configured. Concrete systems live in subpackages
// (see prompush) and are installed with SetBackend.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveDuration records a duration-style value in seconds.
	ObserveDuration(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)      {}
func (nopBackend) ObserveDuration(string, float64, Labels) {}
func (nopBackend) Flush() error                            { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the current one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error { return backend.Flush() }

// RecordStep measures one pipeline stage: latency plus success/failure.
func RecordStep(run, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"run": run, "stage": stage, "status": status}
	backend.IncCounter("salesetl_stage_total", 1, lbls)
	backend.ObserveDuration("salesetl_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given run and
// kind. Typical kinds mirror the cleaning summary, e.g.
// "missing_values_dropped", "dates_dropped", "duplicates_dropped",
// "output", "loaded".
func RecordRow(run, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("salesetl_records_total", float64(delta), Labels{"run": run, "kind": kind})
}
