package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "alignverify"

// Outcome labels for RunsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeIOError      = "io_error"
	OutcomeFormatError  = "format_error"
	OutcomeIncomplete   = "mapping_incomplete"
	OutcomeNotInjective = "mapping_not_injective"
	OutcomeError        = "error"
)

// Registry holds the metrics of verification runs
type Registry struct {
	// Run metrics
	RunsTotal         *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	MappingViolations *prometheus.CounterVec
	LastRunTimestamp  prometheus.Gauge
	LastRunSuccess    prometheus.Gauge

	// Score metrics
	AlignmentScore    prometheus.Gauge
	MaxAlignmentScore prometheus.Gauge
	ScoreRatio        prometheus.Gauge
	EdgesByOutcome    *prometheus.GaugeVec

	// Load metrics
	RowsLoaded      *prometheus.CounterVec
	RowsOverwritten *prometheus.CounterVec
	GraphNodes      *prometheus.GaugeVec
	GraphEdges      *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initRunMetrics()
	r.initScoreMetrics()
	r.initLoadMetrics()

	return r
}
