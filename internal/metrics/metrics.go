// Package metrics exports run counters in the Prometheus text format so a
// node_exporter textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// Recorder accumulates metrics for one or more runs on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	files    *prometheus.CounterVec
	ids      *prometheus.CounterVec
	existing prometheus.Counter
	skipped  prometheus.Counter
	duration prometheus.Histogram
	runs     prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locators_files_total",
			Help: "Files processed by outcome",
		}, []string{"status"}),
		ids: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locators_ids_assigned_total",
			Help: "Identifiers assigned by tag",
		}, []string{"tag"}),
		existing: factory.NewCounter(prometheus.CounterOpts{
			Name: "locators_ids_existing_total",
			Help: "Target tags that already carried an identifier",
		}),
		skipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "locators_tags_skipped_total",
			Help: "Unterminated target tags left untouched",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "locators_file_duration_seconds",
			Help:    "Time spent processing one file",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Name: "locators_runs_total",
			Help: "Completed runs",
		}),
	}
}

// Record adds run to the counters.
func (r *Recorder) Record(run *model.RunReport) {
	r.runs.Inc()
	for _, f := range run.Files {
		r.files.WithLabelValues(f.Status.String()).Inc()
		r.existing.Add(float64(f.Existing))
		r.skipped.Add(float64(f.Skipped))
		r.duration.Observe(f.Duration.Seconds())
		for _, a := range f.Assignments {
			r.ids.WithLabelValues(a.Tag).Inc()
		}
	}
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes the current values to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
