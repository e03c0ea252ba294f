package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-align/pkg/config"
	"github.com/dd0wney/cluso-align/pkg/report"
	"github.com/dd0wney/cluso-align/pkg/runner"
)

func newBatchCmd(f *flags) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Verify every run listed in a YAML manifest",
		Long: `batch verifies several submissions in one invocation. The manifest sets
the shared options and lists the runs:

  format: json
  duplicates: reject
  parallel: 4
  runs:
    - name: team-a
      source_edges: male.csv
      target_edges: female.csv
      mapping: submissions/team-a.csv

Relative paths are resolved against the manifest's directory. A failed run
does not stop the others; the command exits 1 if any run failed.`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.LoadManifest(args[0])
			if err != nil {
				return usage(err)
			}
			m.Config.ApplyEnv()
			f.apply(cmd, &m.Config)
			if cmd.Flags().Changed("parallel") {
				m.Parallel = parallel
			}
			if err := m.Validate(); err != nil {
				return usage(fmt.Errorf("%s: %w", args[0], err))
			}

			s, err := newSession(m.Config, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runs := make([]runner.Inputs, len(m.Runs))
			for i, r := range m.Runs {
				runs[i] = runner.Inputs{
					Name:        r.Name,
					SourceEdges: r.SourceEdges,
					TargetEdges: r.TargetEdges,
					Mapping:     r.Mapping,
				}
			}

			res, err := s.runner.RunBatch(cmd.Context(), runs, m.Parallel)
			if err != nil {
				return s.finish(err)
			}
			return s.finish(renderBatch(cmd, s, res))
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 1, "number of runs to verify at once (overrides the manifest)")
	return cmd
}

// renderBatch prints each successful run's report and each failure's error.
func renderBatch(cmd *cobra.Command, s *session, res *runner.BatchResult) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	for _, out := range res.Outcomes {
		if !out.OK() {
			fmt.Fprintf(stderr, "Error: %s: %v\n", out.Inputs.Name, out.Err)
			continue
		}
		if s.cfg.Format == report.FormatText || s.cfg.Format == "" {
			fmt.Fprintf(stdout, "== %s\n", out.Inputs.Name)
		}
		if err := s.renderer.Render(stdout, out.Summary); err != nil {
			return err
		}
	}

	if res.Failed > 0 {
		return &batchError{failed: res.Failed, total: len(res.Outcomes)}
	}
	return nil
}
