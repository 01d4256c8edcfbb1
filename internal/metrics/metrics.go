package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the run metrics of one generator invocation. A one-shot
// CLI has nothing to scrape, so they are exported through the node
// exporter textfile collector format instead of an HTTP handler.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsGenerated *prometheus.CounterVec
	BytesWritten     *prometheus.CounterVec
	RunDuration      prometheus.Gauge
	LastRunTimestamp prometheus.Gauge
}

// New creates the metrics on a private registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RecordsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landdeeds_records_generated_total",
			Help: "Deed records generated, by deed type",
		}, []string{"deed_type"}),
		BytesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "landdeeds_output_bytes_total",
			Help: "Bytes written per output format",
		}, []string{"format"}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "landdeeds_run_duration_seconds",
			Help: "Wall time of the last generate run",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "landdeeds_last_run_timestamp_seconds",
			Help: "Unix time the last generate run finished",
		}),
	}
}

// ObserveRecord counts one generated record
func (m *Metrics) ObserveRecord(deedType string) {
	m.RecordsGenerated.WithLabelValues(deedType).Inc()
}

// ObserveWrite counts bytes written for a format
func (m *Metrics) ObserveWrite(format string, n int64) {
	m.BytesWritten.WithLabelValues(format).Add(float64(n))
}

// ObserveRun records the duration and completion time of a run
func (m *Metrics) ObserveRun(d time.Duration, finished time.Time) {
	m.RunDuration.Set(d.Seconds())
	m.LastRunTimestamp.Set(float64(finished.Unix()))
}

// WriteTextfile writes the registry to path atomically
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
