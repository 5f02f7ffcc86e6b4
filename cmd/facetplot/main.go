// Command facetplot renders the figures of a named task into image
// files.
//
//	facetplot [flags] <task>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vdobler/facetplot"
	"github.com/vdobler/facetplot/task"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	dir     string
	out     string
	format  string
	config  string
	list    bool
	watch   bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	var (
		opts   options
		logger = zap.NewNop()
	)

	cmd := &cobra.Command{
		Use:   "facetplot [flags] <task>",
		Short: "Plot grouped mean and standard deviation of measurements",
		Long: `facetplot reads <task>.json, a JSON array of measurement records, and
draws the figures of the named task: one panel per row and column value,
one line per series with a band of plus/minus one standard deviation.

Built-in tasks are tainted-admin, tainted-dist, multicast-size and
multicast-prob. More tasks can be defined in a YAML file (--config).`,
		SilenceUsage: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			facetplot.SetLogger(logger)
			task.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), logger, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dir, "dir", ".", "directory of the input JSON files")
	flags.StringVar(&opts.out, "out", ".", "output directory")
	flags.StringVar(&opts.format, "format", "png", "image format: png, svg, pdf, eps, jpg, tif")
	flags.StringVar(&opts.config, "config", "", "YAML file with additional tasks")
	flags.BoolVar(&opts.list, "list", false, "list the known tasks and exit")
	flags.BoolVar(&opts.watch, "watch", false, "redraw when the input file changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, w io.Writer, logger *zap.Logger, opts options, args []string) error {
	var extra []task.Task
	if opts.config != "" {
		var err error
		if extra, err = task.Load(opts.config); err != nil {
			return err
		}
	}

	if opts.list {
		for _, name := range task.Names(extra) {
			fmt.Fprintln(w, name)
		}
		return nil
	}

	t, err := task.Lookup(args[0], extra)
	if err != nil {
		return err
	}
	topts := task.Options{Dir: opts.dir, Out: opts.out, Format: opts.format}
	draw := func() error {
		paths, err := task.Run(ctx, t, topts)
		for _, p := range paths {
			fmt.Fprintln(w, p)
		}
		return err
	}

	if err := draw(); err != nil {
		if !opts.watch {
			return err
		}
		logger.Error("drawing failed", zap.String("task", t.Name), zap.Error(err))
	}
	if !opts.watch {
		return nil
	}

	input := filepath.Join(opts.dir, t.InputFile())
	logger.Info("watching input", zap.String("path", input))
	return watchFile(ctx, logger, input, 500*time.Millisecond, draw)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
