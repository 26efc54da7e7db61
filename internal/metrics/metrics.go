package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hyperex/internal/engine"
)

// Metrics counts what one extraction run did. It has its own registry so
// repeated runs in one process (tests) never collide.
type Metrics struct {
	reg *prometheus.Registry

	// Records processed, by alphabet ("dna", "rna", "unknown")
	Records *prometheus.CounterVec

	// Per (record, pair) outcomes by region label and outcome name
	Outcomes *prometheus.CounterVec

	// Bases written to the cropped FASTA
	ExtractedBases prometheus.Counter

	ShortRecords prometheus.Counter

	RunDuration prometheus.Gauge
}

// New creates a Metrics instance with all run metrics registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hyperex_records_total",
			Help: "Sequence records processed by detected alphabet",
		}, []string{"alphabet"}),

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hyperex_region_outcomes_total",
			Help: "Primer pair outcomes by region label and outcome",
		}, []string{"region", "outcome"}),

		ExtractedBases: f.NewCounter(prometheus.CounterOpts{
			Name: "hyperex_extracted_bases_total",
			Help: "Bases written to the cropped-sequence output",
		}),

		ShortRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "hyperex_short_records_total",
			Help: "Records at or below the reliable length threshold",
		}),

		RunDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "hyperex_run_duration_seconds",
			Help: "Wall time of the extraction run",
		}),
	}
}

// ObserveReport records every outcome of one record.
func (m *Metrics) ObserveReport(rep engine.Report) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues(rep.Alphabet.String()).Inc()
	if rep.Short {
		m.ShortRecords.Inc()
	}
	for _, res := range rep.Results {
		m.Outcomes.WithLabelValues(res.Pair.DisplayName(), res.Outcome.String()).Inc()
		if res.Region != nil {
			m.ExtractedBases.Add(float64(res.Region.Len()))
		}
	}
}

// ObserveRunDuration sets the total run time.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Set(d.Seconds())
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteFile dumps all metrics in the Prometheus text format, suitable for the
// node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
