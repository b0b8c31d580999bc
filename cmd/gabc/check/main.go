package check

import (
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/gabcls/pkg/config"
	"github.com/walteh/gabcls/pkg/finder"
	"github.com/walteh/gabcls/pkg/lint"
	"github.com/walteh/gabcls/pkg/report"
	"github.com/walteh/gabcls/pkg/validation"
)

// ErrFailed is returned when a file has a diagnostic at or above the
// failure threshold. The report has already been written.
var ErrFailed = errors.Base("lint failed")

type Handler struct {
	fs  afero.Fs
	out io.Writer

	format     string
	configPath string
	failOn     string
	jobs       int
}

func NewCheckCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:          "check [paths or globs...]",
		Short:        "lint gabc scores and report diagnostics",
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&me.format, "format", report.FormatText, "output format: text, json or vscode")
	cmd.Flags().StringVar(&me.configPath, "config", "", "configuration file (default: .gabclint.* in the working directory)")
	cmd.Flags().StringVar(&me.failOn, "fail-on", "", "lowest severity that fails the run: error, warning, info or never")
	cmd.Flags().IntVar(&me.jobs, "jobs", runtime.GOMAXPROCS(0), "number of files linted at once")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.out = cmd.OutOrStdout()
		if len(args) == 0 {
			args = []string{"."}
		}
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *Handler) loadConfig() (*config.Config, error) {
	path := me.configPath
	if path == "" {
		found, ok := config.Find(me.fs, ".")
		if !ok {
			return me.override(config.Default())
		}
		path = found
	}

	cfg, err := config.Load(me.fs, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return me.override(cfg)
}

func (me *Handler) override(cfg *config.Config) (*config.Config, error) {
	if me.failOn != "" {
		cfg.FailOn = me.failOn
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (me *Handler) Run(ctx context.Context, args []string) error {
	logger := zerolog.Ctx(ctx)

	cfg, err := me.loadConfig()
	if err != nil {
		return err
	}

	formatter, err := report.New(me.format, !color.NoColor)
	if err != nil {
		return err
	}

	files, err := finder.NewDefaultFinder(me.fs).FindScores(ctx, args, cfg.Matches)
	if err != nil {
		return errors.Errorf("finding scores: %w", err)
	}

	reg := validation.DefaultRegistry()
	results := make([]report.File, len(files))
	failed := make([]bool, len(files))

	var (
		mu       sync.Mutex
		failures *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(me.jobs, 1))

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := lint.Check(gctx, string(file.Content), lint.Options{Config: cfg, Registry: reg})
			results[i] = report.File{Path: file.Path, Source: string(file.Content), Diagnostics: res.Diagnostics}
			failed[i] = res.Failed(cfg)

			if res.Err != nil {
				logger.Error().Err(res.Err).Str("file", file.Path).Msg("lint checks failed")
				mu.Lock()
				failures = multierror.Append(failures, errors.Errorf("%s: %w", file.Path, res.Err))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("checking scores: %w", err)
	}

	if err := formatter.Format(me.out, results); err != nil {
		return err
	}

	logger.Debug().Int("files", len(files)).Msg("check finished")

	if err := failures.ErrorOrNil(); err != nil {
		return errors.Errorf("internal failures: %w", err)
	}

	for _, f := range failed {
		if f {
			return ErrFailed
		}
	}
	return nil
}
