// Package runner drives one verification: load both edge tables and the
// mapping, validate, score. Stages run strictly in order and the first
// failure ends the run.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-align/pkg/align"
	"github.com/dd0wney/cluso-align/pkg/loader"
	"github.com/dd0wney/cluso-align/pkg/logging"
	"github.com/dd0wney/cluso-align/pkg/metrics"
	"github.com/dd0wney/cluso-align/pkg/report"
)

// Stage is the last step a run reached.
type Stage string

const (
	StageStart     Stage = "start"
	StageLoaded    Stage = "loaded"
	StageValidated Stage = "validated"
	StageScored    Stage = "scored"
)

// Input roles, used as log fields and metric labels.
const (
	InputSourceEdges = "source_edges"
	InputTargetEdges = "target_edges"
	InputMapping     = "mapping"
)

// Inputs names the three files of a run.
type Inputs struct {
	Name        string
	SourceEdges string
	TargetEdges string
	Mapping     string
}

// Outcome describes a finished run. Summary is set only on success and Err
// only on failure.
type Outcome struct {
	RunID    string
	Inputs   Inputs
	Stage    Stage
	Summary  *report.Summary
	Err      error
	Duration time.Duration
}

// OK reports whether the run verified the mapping.
func (o *Outcome) OK() bool {
	return o.Err == nil
}

// Runner executes verification runs.
type Runner struct {
	loader  *loader.Loader
	logger  logging.Logger
	metrics *metrics.Registry
	newID   func() string
	now     func() time.Time
}

// New creates a Runner. reg may be nil to skip metrics.
func New(l *loader.Loader, logger logging.Logger, reg *metrics.Registry) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{
		loader:  l,
		logger:  logger,
		metrics: reg,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Run performs one verification. The returned error is also stored in the
// outcome.
func (r *Runner) Run(ctx context.Context, in Inputs) (*Outcome, error) {
	start := r.now()
	out := &Outcome{RunID: r.newID(), Inputs: in, Stage: StageStart}
	log := r.logger.With(logging.RunID(out.RunID))
	if in.Name != "" {
		log = log.With(logging.String("name", in.Name))
	}

	log.Info("verification started",
		logging.String(InputSourceEdges, in.SourceEdges),
		logging.String(InputTargetEdges, in.TargetEdges),
		logging.String(InputMapping, in.Mapping),
	)

	summary, err := r.run(ctx, log, in, out)
	out.Duration = r.now().Sub(start)

	if err != nil {
		out.Err = err
		r.recordFailure(err)
		log.Error("verification failed",
			logging.Stage(string(out.Stage)),
			logging.Error(err),
			logging.Latency(out.Duration),
		)
		return out, err
	}

	summary.RunID = out.RunID
	summary.Name = in.Name
	summary.Duration = out.Duration
	out.Summary = summary

	if r.metrics != nil {
		r.metrics.RecordResult(summary.Result, r.now())
	}
	log.Info("verification succeeded",
		logging.Score(summary.Result.Score),
		logging.Int64("max_score", summary.Result.MaxScore),
		logging.Float64("ratio", summary.Result.Ratio()),
		logging.Latency(out.Duration),
	)
	return out, nil
}

func (r *Runner) run(ctx context.Context, log logging.Logger, in Inputs, out *Outcome) (*report.Summary, error) {
	loadOp := logging.StartTimer(log, "load inputs", logging.Stage("load"))
	source, target, mapping, err := r.loadInputs(ctx, log, in)
	if err != nil {
		r.observe("load", loadOp.EndError(err))
		return nil, err
	}
	r.observe("load", loadOp.End())
	out.Stage = StageLoaded

	verifyOp := logging.StartTimer(log, "verify mapping", logging.Stage("verify"))
	result, err := align.Verify(source.Table, target.Table, mapping.Mapping)
	r.observe("verify", verifyOp.Elapsed())
	if err != nil {
		if align.IsMappingError(err) {
			r.recordViolations(err)
		} else {
			out.Stage = StageValidated
		}
		return nil, err
	}
	out.Stage = StageScored
	verifyOp.End(logging.Count(result.SourceEdges))

	if result.UnusedMappings > 0 {
		log.Warn("mapping has rows for nodes outside the source graph", logging.Count(result.UnusedMappings))
	}
	if result.MaxScoreCapped {
		log.Warn("total source weight exceeds int64, max_score is clamped",
			logging.Int64("max_score", result.MaxScore))
	}

	return &report.Summary{
		Result:      result,
		SourceEdges: report.Input{Path: source.Path, Rows: source.Rows, Overwritten: source.Overwritten, Digest: source.Digest},
		TargetEdges: report.Input{Path: target.Path, Rows: target.Rows, Overwritten: target.Overwritten, Digest: target.Digest},
		Mapping:     report.Input{Path: mapping.Path, Rows: mapping.Rows, Overwritten: mapping.Overwritten, Digest: mapping.Digest},
	}, nil
}

func (r *Runner) loadInputs(ctx context.Context, log logging.Logger, in Inputs) (source, target *loader.EdgeLoad, mapping *loader.MappingLoad, err error) {
	if source, err = r.loadEdges(ctx, log, InputSourceEdges, in.SourceEdges); err != nil {
		return nil, nil, nil, err
	}
	if target, err = r.loadEdges(ctx, log, InputTargetEdges, in.TargetEdges); err != nil {
		return nil, nil, nil, err
	}
	if mapping, err = r.loadMapping(ctx, log, in.Mapping); err != nil {
		return nil, nil, nil, err
	}
	return source, target, mapping, nil
}

func (r *Runner) loadEdges(ctx context.Context, log logging.Logger, role, path string) (*loader.EdgeLoad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	load, err := r.loader.ReadEdges(ctx, path)
	if err != nil {
		return nil, err
	}
	r.loaded(log, role, path, load.Rows, load.Overwritten, load.Digest)
	log.Debug("edge table built", logging.Input(role), logging.Int("edges", len(load.Table)))
	return load, nil
}

func (r *Runner) loadMapping(ctx context.Context, log logging.Logger, path string) (*loader.MappingLoad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	load, err := r.loader.ReadMapping(ctx, path)
	if err != nil {
		return nil, err
	}
	r.loaded(log, InputMapping, path, load.Rows, load.Overwritten, load.Digest)
	return load, nil
}

func (r *Runner) loaded(log logging.Logger, role, path string, rows, overwritten int, digest string) {
	log.Info("input loaded",
		logging.Input(role),
		logging.Path(path),
		logging.Count(rows),
		logging.Digest(digest),
	)
	if overwritten > 0 {
		log.Warn("duplicate rows overwrote earlier rows",
			logging.Input(role),
			logging.Path(path),
			logging.Int("overwritten", overwritten),
		)
	}
	if r.metrics != nil {
		r.metrics.RecordLoad(role, rows, overwritten)
	}
}

func (r *Runner) observe(stage string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordStage(stage, d)
	}
}

func (r *Runner) recordFailure(err error) {
	if r.metrics != nil {
		r.metrics.RecordFailure(Classify(err), r.now())
	}
}

func (r *Runner) recordViolations(err error) {
	if r.metrics == nil {
		return
	}
	var incomplete *align.MappingIncompleteError
	if errors.As(err, &incomplete) {
		r.metrics.RecordViolations("unmapped_node", len(incomplete.Missing))
	}
	var notInjective *align.MappingNotInjectiveError
	if errors.As(err, &notInjective) {
		r.metrics.RecordViolations("shared_target", len(notInjective.Collisions))
	}
}

// Classify maps a run error to its metrics outcome label.
func Classify(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, align.ErrMappingIncomplete):
		return metrics.OutcomeIncomplete
	case errors.Is(err, align.ErrMappingNotInjective):
		return metrics.OutcomeNotInjective
	case loader.IsFormat(err):
		return metrics.OutcomeFormatError
	case loader.IsIO(err):
		return metrics.OutcomeIOError
	default:
		return metrics.OutcomeError
	}
}
