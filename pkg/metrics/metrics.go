package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/cluso-align/pkg/align"
)

// RecordStage records how long a run stage took
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordLoad records the rows read from one input
func (r *Registry) RecordLoad(input string, rows, overwritten int) {
	r.RowsLoaded.WithLabelValues(input).Add(float64(rows))
	r.RowsOverwritten.WithLabelValues(input).Add(float64(overwritten))
}

// RecordResult records a successful run
func (r *Registry) RecordResult(result *align.Result, finished time.Time) {
	r.RunsTotal.WithLabelValues(OutcomeSuccess).Inc()
	r.LastRunTimestamp.Set(float64(finished.Unix()))
	r.LastRunSuccess.Set(1)

	r.AlignmentScore.Set(float64(result.Score))
	r.MaxAlignmentScore.Set(float64(result.MaxScore))
	r.ScoreRatio.Set(result.Ratio())

	r.EdgesByOutcome.WithLabelValues("preserved").Set(float64(result.PreservedEdges))
	r.EdgesByOutcome.WithLabelValues("partial").Set(float64(result.PartialEdges))
	r.EdgesByOutcome.WithLabelValues("missing").Set(float64(result.MissingEdges))

	r.GraphNodes.WithLabelValues("source").Set(float64(result.SourceNodes))
	r.GraphNodes.WithLabelValues("target").Set(float64(result.TargetNodes))
	r.GraphEdges.WithLabelValues("source").Set(float64(result.SourceEdges))
	r.GraphEdges.WithLabelValues("target").Set(float64(result.TargetEdges))
}

// RecordFailure records a failed run under the given outcome label
func (r *Registry) RecordFailure(outcome string, finished time.Time) {
	r.RunsTotal.WithLabelValues(outcome).Inc()
	r.LastRunTimestamp.Set(float64(finished.Unix()))
	r.LastRunSuccess.Set(0)
}

// RecordViolations counts the node ids named by a mapping error
func (r *Registry) RecordViolations(kind string, n int) {
	r.MappingViolations.WithLabelValues(kind).Add(float64(n))
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable
// for the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
