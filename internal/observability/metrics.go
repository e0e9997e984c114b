// Package observability provides build metrics and trace export.
package observability

import (
	"time"

	"github.com/mvp-joe/fileicons/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records one build into its own registry. It implements
// pipeline.ProgressReporter so it can ride along with the CLI reporter.
type Metrics struct {
	registry *prometheus.Registry

	EntriesListed        prometheus.Gauge
	Directories          prometheus.Gauge
	DirectoriesProcessed prometheus.Counter
	RecordsExtracted     prometheus.Counter
	Records              *prometheus.GaugeVec
	Extensions           prometheus.Gauge
	UndefinedSlots       prometheus.Gauge
	Overwritten          prometheus.Gauge
	BuildDuration        prometheus.Gauge
	LastSuccess          prometheus.Gauge
}

// NewMetrics creates the build metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		EntriesListed: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_listing_entries",
			Help: "Entries returned by the directory listing.",
		}),
		Directories: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_language_directories",
			Help: "Directories selected for extraction.",
		}),
		DirectoriesProcessed: f.NewCounter(prometheus.CounterOpts{
			Name: "fileicons_directories_processed_total",
			Help: "Directories fetched and parsed.",
		}),
		RecordsExtracted: f.NewCounter(prometheus.CounterOpts{
			Name: "fileicons_records_extracted_total",
			Help: "registerLanguage calls found.",
		}),
		Records: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fileicons_records",
			Help: "Registration records by outcome in the last build.",
		}, []string{"outcome"}),
		Extensions: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_extensions",
			Help: "Extensions in the generated lookup table.",
		}),
		UndefinedSlots: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_undefined_extension_slots",
			Help: "Extension list entries that were not literals.",
		}),
		Overwritten: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_overwritten_extensions",
			Help: "Table writes that replaced an earlier language id.",
		}),
		BuildDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_build_duration_seconds",
			Help: "Wall time of the last successful build.",
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "fileicons_last_success_timestamp_seconds",
			Help: "Unix time of the last successful build.",
		}),
	}
}

// Registry returns the registry holding the build metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnListStart(root string) {}

func (m *Metrics) OnListComplete(entries, directories int) {
	m.EntriesListed.Set(float64(entries))
	m.Directories.Set(float64(directories))
}

func (m *Metrics) OnDirectoryProcessed(name string, records int) {
	m.DirectoriesProcessed.Inc()
	m.RecordsExtracted.Add(float64(records))
}

func (m *Metrics) OnIconThemeFetch() {}

func (m *Metrics) OnWriting(dir string) {}

func (m *Metrics) OnComplete(result *pipeline.Result) {
	m.Records.WithLabelValues("accepted").Set(float64(result.Stats.Accepted))
	m.Records.WithLabelValues("rejected").Set(float64(result.Stats.Rejected))
	m.Extensions.Set(float64(result.Table.Len()))
	m.UndefinedSlots.Set(float64(result.Stats.Undefined))
	m.Overwritten.Set(float64(result.Stats.Overwritten))
	m.BuildDuration.Set(result.Duration.Seconds())
	m.LastSuccess.Set(float64(time.Now().Unix()))
}
