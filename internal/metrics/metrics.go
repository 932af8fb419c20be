package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	gridBuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quicklook_grid_build_duration_seconds",
			Help:    "Time to build one geomagnetic latitude grid.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	gridCellsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quicklook_grid_cells_total",
			Help: "Total number of grid cells transformed.",
		},
	)

	extractedRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "quicklook_extracted_rows",
			Help: "Records extracted in the last run, by instrument.",
		},
		[]string{"instrument"},
	)

	renderSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quicklook_render_duration_seconds",
			Help:    "Time to render all panels of one orbit.",
			Buckets: prometheus.DefBuckets,
		},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicklook_runs_total",
			Help: "Quicklook runs by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(gridBuildSeconds)
	prometheus.MustRegister(gridCellsTotal)
	prometheus.MustRegister(extractedRows)
	prometheus.MustRegister(renderSeconds)
	prometheus.MustRegister(runsTotal)
}

// ObserveGrid records one finished grid build.
func ObserveGrid(d time.Duration, cells int) {
	gridBuildSeconds.Observe(d.Seconds())
	gridCellsTotal.Add(float64(cells))
}

// SetExtractedRows records how many records an instrument yielded.
func SetExtractedRows(instrument string, rows int) {
	extractedRows.WithLabelValues(instrument).Set(float64(rows))
}

// ObserveRender records the duration of a render pass.
func ObserveRender(d time.Duration) {
	renderSeconds.Observe(d.Seconds())
}

// RecordRun counts a finished run under status, e.g. "ok" or an error kind.
func RecordRun(status string) {
	runsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile dumps the default registry in the text exposition format,
// for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
