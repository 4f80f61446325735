package scanner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ilexum-group/browserscan/pkg/models"
)

// Metrics holds the Prometheus metrics of the scanner
type Metrics struct {
	RecordsTotal        prometheus.Counter
	BrowsersTotal       *prometheus.CounterVec
	UnclassifiableTotal prometheus.Counter
	NonBrowsersTotal    prometheus.Counter
	EmitFailuresTotal   prometheus.Counter
	BrowserBytesTotal   prometheus.Counter
	ScanDuration        prometheus.Histogram
}

// NewMetrics registers the scanner metrics on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		RecordsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browserscan_records_total",
				Help: "Total number of inventory records enumerated",
			},
		),
		BrowsersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browserscan_browsers_total",
				Help: "Total number of browsers detected by engine family",
			},
			[]string{"engine"},
		),
		UnclassifiableTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browserscan_unclassifiable_total",
				Help: "Total number of records without a usable install directory",
			},
		),
		NonBrowsersTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browserscan_non_browsers_total",
				Help: "Total number of install directories without browser markers",
			},
		),
		EmitFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browserscan_emit_failures_total",
				Help: "Total number of reports the sink refused",
			},
		),
		BrowserBytesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browserscan_browser_bytes_total",
				Help: "Total on-disk size of detected browsers in bytes",
			},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "browserscan_scan_duration_seconds",
				Help:    "Scan duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
	}

	// Every engine is exported from the first scrape, zero until seen
	for _, engine := range models.EngineFamilies() {
		if engine != models.EngineUnknown {
			m.BrowsersTotal.WithLabelValues(engine.String())
		}
	}
	return m
}

func (m *Metrics) recordBrowser(engine models.EngineFamily, size uint64) {
	m.BrowsersTotal.WithLabelValues(engine.String()).Inc()
	m.BrowserBytesTotal.Add(float64(size))
}

func (m *Metrics) recordScan(installed int, duration time.Duration) {
	m.RecordsTotal.Add(float64(installed))
	m.ScanDuration.Observe(duration.Seconds())
}
