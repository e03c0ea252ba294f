package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-align/pkg/config"
	"github.com/dd0wney/cluso-align/pkg/loader"
	"github.com/dd0wney/cluso-align/pkg/logging"
	"github.com/dd0wney/cluso-align/pkg/metrics"
	"github.com/dd0wney/cluso-align/pkg/report"
	"github.com/dd0wney/cluso-align/pkg/runner"
)

// flags holds the command line overrides shared by every subcommand.
type flags struct {
	format           string
	strictDuplicates bool
	logLevel         string
	metricsFile      string
	s3Region         string
	s3Endpoint       string
	s3PathStyle      bool
}

// apply overlays the flags the user actually set.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags()
	if set.Changed("format") {
		cfg.Format = f.format
	}
	if set.Changed("strict-duplicates") {
		cfg.Duplicates = loader.DuplicateOverwrite.String()
		if f.strictDuplicates {
			cfg.Duplicates = loader.DuplicateReject.String()
		}
	}
	if set.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if set.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if set.Changed("s3-region") {
		cfg.S3.Region = f.s3Region
	}
	if set.Changed("s3-endpoint") {
		cfg.S3.Endpoint = f.s3Endpoint
	}
	if set.Changed("s3-path-style") {
		cfg.S3.PathStyle = f.s3PathStyle
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "align-verify <source-edges> <target-edges> <mapping>",
		Short: "Verify a graph alignment and print its score",
		Long: `align-verify checks that a mapping from the source graph's nodes to the
target graph's nodes covers every source node and is one-to-one, then scores
it as the sum over source edges of min(source weight, mapped target weight).

Edge files are CSV with a header and rows of source,target,weight. The
mapping file is CSV with a header and rows of source node,target node.
Paths may be local files or s3://bucket/key objects; a .sz suffix marks
snappy-compressed input.`,
		Args:          usageArgs(cobra.ExactArgs(3)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.ApplyEnv()
			f.apply(cmd, &cfg)

			s, err := newSession(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out, err := s.runner.Run(cmd.Context(), runner.Inputs{
				SourceEdges: args[0],
				TargetEdges: args[1],
				Mapping:     args[2],
			})
			if err == nil {
				err = s.renderer.Render(cmd.OutOrStdout(), out.Summary)
			}
			return s.finish(err)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usage(err)
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.format, "format", "o", report.FormatText, "report format: text, json or pretty")
	pf.BoolVar(&f.strictDuplicates, "strict-duplicates", false, "reject repeated edge or mapping keys instead of keeping the last row")
	pf.StringVar(&f.logLevel, "log-level", "", "log level on stderr: debug, info, warn or error (default $"+logging.LevelEnv+" or info)")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file after the run")
	pf.StringVar(&f.s3Region, "s3-region", "", "region for s3:// inputs (default $"+config.EnvS3Region+")")
	pf.StringVar(&f.s3Endpoint, "s3-endpoint", "", "endpoint for s3:// inputs, for S3-compatible stores")
	pf.BoolVar(&f.s3PathStyle, "s3-path-style", false, "use path-style addressing for s3:// inputs")

	cmd.AddCommand(newBatchCmd(f))
	return cmd
}

// session is the wiring shared by the single and batch commands.
type session struct {
	cfg      config.Config
	logger   logging.Logger
	metrics  *metrics.Registry
	runner   *runner.Runner
	renderer report.Renderer
}

func newSession(cfg config.Config, logs io.Writer) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, usage(err)
	}

	logger := logging.NewJSONLogger(logs, cfg.Level())
	opts, err := cfg.LoaderOptions(logger)
	if err != nil {
		return nil, usage(err)
	}
	renderer, err := report.New(cfg.Format)
	if err != nil {
		return nil, usage(err)
	}

	logger.Debug("session configured",
		logging.String("format", cfg.Format),
		logging.String("duplicates", opts.Duplicates.String()),
		logging.Bool("strict_duplicates", opts.Duplicates == loader.DuplicateReject),
		logging.Bool("s3_path_style", cfg.S3.PathStyle),
	)

	reg := metrics.NewRegistry()
	return &session{
		cfg:      cfg,
		logger:   logger,
		metrics:  reg,
		runner:   runner.New(loader.New(opts), logger, reg),
		renderer: renderer,
	}, nil
}

// finish writes the metrics file, if one was requested, and returns the
// error that decides the exit status. A run error takes precedence.
func (s *session) finish(runErr error) error {
	if s.cfg.MetricsFile == "" {
		return runErr
	}
	if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
		s.logger.Error("metrics not written", logging.Path(s.cfg.MetricsFile), logging.Error(err))
		return errors.Join(runErr, err)
	}
	s.logger.Debug("metrics written", logging.Path(s.cfg.MetricsFile))
	return runErr
}
