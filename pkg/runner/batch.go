package runner

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-align/pkg/logging"
)

// BatchResult collects the outcomes of RunBatch in input order.
type BatchResult struct {
	Outcomes []*Outcome
	Failed   int
}

// RunBatch verifies each input set, running up to workers of them at once.
// A failed entry does not stop the others; cancelling ctx stops entries that
// have not started. Outcomes keep the order of runs.
func (r *Runner) RunBatch(ctx context.Context, runs []Inputs, workers int) (*BatchResult, error) {
	if workers > len(runs) {
		workers = len(runs)
	}
	outcomes := make([]*Outcome, len(runs))

	pool := newWorkerPool(workers, r.logger)
	for i, in := range runs {
		if ctx.Err() != nil {
			break
		}
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			outcomes[i] = r.runSafe(ctx, in)
		})
	}
	pool.Close()

	res := &BatchResult{Outcomes: make([]*Outcome, 0, len(runs))}
	for i, out := range outcomes {
		if out == nil {
			continue
		}
		res.Outcomes = append(res.Outcomes, out)
		if !out.OK() {
			res.Failed++
			r.logger.Warn("batch entry failed",
				logging.Int("index", i),
				logging.String("name", out.Inputs.Name),
				logging.String("outcome", Classify(out.Err)),
			)
		}
	}

	r.logger.Info("batch complete",
		logging.Count(len(runs)),
		logging.Int("finished", len(res.Outcomes)),
		logging.Int("failed", res.Failed),
	)
	return res, ctx.Err()
}

// runSafe turns a panic inside one run into a failed outcome for that entry.
func (r *Runner) runSafe(ctx context.Context, in Inputs) (out *Outcome) {
	start := r.now()
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("run panicked: %v", p)
			out = &Outcome{
				RunID:    r.newID(),
				Inputs:   in,
				Stage:    StageStart,
				Err:      err,
				Duration: r.now().Sub(start),
			}
			r.recordFailure(err)
			r.logger.Error("verification failed",
				logging.RunID(out.RunID),
				logging.String("name", in.Name),
				logging.Error(err),
				logging.Latency(out.Duration),
			)
		}
	}()
	out, _ = r.Run(ctx, in)
	return out
}
