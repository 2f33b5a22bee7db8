package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"edsmover/internal/clock"
	"edsmover/internal/config"
	"edsmover/internal/daemon"
	"edsmover/internal/journal"
	"edsmover/internal/logging"
	"edsmover/internal/mover"
	"edsmover/internal/preflight"
	"edsmover/internal/watch"
)

type runOptions struct {
	watch   bool
	journal string
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.watch, "watch", false, "Wake early when a matching file is created in the source directory")
	cmd.Flags().StringVar(&o.journal, "journal", "", "Record completed moves in this SQLite database")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan the source directory until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(cmd, ctx, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newOnceCommand(ctx *commandContext) *cobra.Command {
	var journalPath string
	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single pass and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cmd, cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			m, closeJournal, err := buildMover(cfg, journalPath, clock.Real{}, logger)
			if err != nil {
				return err
			}
			defer closeJournal()

			summary, err := daemon.New(daemon.WithMover(m), daemon.WithLogger(logger)).RunOnce(signalCtx, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d of %d candidate(s), %d failed\n",
				summary.Moved, summary.Candidates, summary.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&journalPath, "journal", "", "Record completed moves in this SQLite database")
	return cmd
}

func runLoop(cmd *cobra.Command, ctx *commandContext, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger, err := ctx.newLogger(cmd, cfg, logging.String(logging.FieldRunID, runID))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	for _, result := range preflight.Failed(preflight.RunAll(cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "create the directory or fix its permissions"),
		)
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var sleeper clock.Sleeper = clock.Real{}
	if opts.watch {
		matcher, err := mover.NewMatcher(cfg.Pattern)
		if err != nil {
			return err
		}
		watched, err := watch.NewSleeper(cfg.SourceDir, matcher.Match, logger)
		if err != nil {
			return err
		}
		defer watched.Close()
		sleeper = watched
	}

	// Lock waits keep the plain interval; only the idle sleep wakes early.
	m, closeJournal, err := buildMover(cfg, opts.journal, clock.Real{}, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	d := daemon.New(
		daemon.WithMover(m),
		daemon.WithSleeper(sleeper),
		daemon.WithLogger(logger),
	)
	if err := d.Run(signalCtx, cfg); err != nil {
		logging.ErrorWithContext(logger, "loop stopped", "daemon_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the source directory exists and no other instance holds its lock"),
		)
		return err
	}
	return nil
}

func buildMover(cfg *config.Config, journalPath string, sleeper clock.Sleeper, logger *slog.Logger) (*mover.Mover, func(), error) {
	matcher, err := mover.NewMatcher(cfg.Pattern)
	if err != nil {
		return nil, nil, err
	}
	opts := []mover.Option{
		mover.WithMatcher(matcher),
		mover.WithSleeper(sleeper),
		mover.WithLogger(logger),
	}

	closeJournal := func() {}
	if path := strings.TrimSpace(journalPath); path != "" {
		store, err := journal.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		closeJournal = func() { _ = store.Close() }
		opts = append(opts, mover.WithRecorder(store))
	}
	return mover.New(opts...), closeJournal, nil
}

