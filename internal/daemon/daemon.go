package daemon

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"edsmover/internal/clock"
	"edsmover/internal/config"
	"edsmover/internal/logging"
	"edsmover/internal/mover"
)

// lockFilePrefix names the lock files kept in the system temp directory, one
// per absolute source directory. The lock must never live in the source
// directory, where a pass could select it.
const lockFilePrefix = "edsmover-"

// ErrAlreadyRunning is returned when another instance holds the lock for the
// same source directory.
var ErrAlreadyRunning = errors.New("another edsmover instance is already running")

// Daemon drives repeated mover passes.
type Daemon struct {
	mover    *mover.Mover
	sleeper  clock.Sleeper
	base     *slog.Logger
	logger   *slog.Logger
	lockPath string
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithMover supplies a preconfigured mover. Without it one is built from the
// configuration passed to Run.
func WithMover(m *mover.Mover) Option { return func(d *Daemon) { d.mover = m } }

// WithSleeper replaces the wall clock used between passes.
func WithSleeper(s clock.Sleeper) Option { return func(d *Daemon) { d.sleeper = s } }

func WithLogger(l *slog.Logger) Option { return func(d *Daemon) { d.base = l } }

// WithLockPath overrides the default per-source lock file in os.TempDir().
func WithLockPath(path string) Option { return func(d *Daemon) { d.lockPath = path } }

func New(opts ...Option) *Daemon {
	d := &Daemon{sleeper: clock.Real{}}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.base, "daemon")
	return d
}

// LockPath returns the lock file used for cfg. Two configurations naming the
// same source directory share a lock.
func (d *Daemon) LockPath(cfg *config.Config) string {
	if d.lockPath != "" {
		return d.lockPath
	}
	return DefaultLockPath(cfg.SourceDir)
}

// DefaultLockPath derives the lock file for sourceDir from its absolute,
// cleaned path.
func DefaultLockPath(sourceDir string) string {
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		abs = filepath.Clean(sourceDir)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), lockFilePrefix+hex.EncodeToString(sum[:8])+".lock")
}

// Run loops until ctx is cancelled, returning nil in that case. Any error a
// pass returns ends the loop and is handed back to the caller.
func (d *Daemon) Run(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return errors.New("daemon requires configuration")
	}
	m, err := d.moverFor(cfg)
	if err != nil {
		return err
	}

	lockPath := d.LockPath(cfg)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(d.logger, "failed to release lock", "lock_release_failed",
				logging.String("lock", lockPath),
				logging.Error(err),
				logging.String(logging.FieldImpact, "a stale lock file may remain until the next start"),
			)
		}
	}()

	d.logger.Info("watching for files",
		logging.String("source", cfg.SourceDir),
		logging.String("target", cfg.TargetDir),
		logging.Duration("interval", cfg.CheckInterval),
		logging.String("pattern", patternOf(cfg)),
		logging.String("lock", lockPath),
		logging.String(logging.FieldEventType, "daemon_started"),
	)

	for passes := 1; ; passes++ {
		if _, err := m.MoveAll(ctx, cfg.SourceDir, cfg.TargetDir, cfg.CheckInterval); err != nil {
			if ctx.Err() != nil {
				d.stopped(passes)
				return nil
			}
			return err
		}
		if err := d.sleeper.Sleep(ctx, cfg.CheckInterval); err != nil {
			if ctx.Err() != nil {
				d.stopped(passes)
				return nil
			}
			return fmt.Errorf("sleep between passes: %w", err)
		}
	}
}

// RunOnce performs a single pass without taking the lock.
func (d *Daemon) RunOnce(ctx context.Context, cfg *config.Config) (mover.Summary, error) {
	if cfg == nil {
		return mover.Summary{}, errors.New("daemon requires configuration")
	}
	m, err := d.moverFor(cfg)
	if err != nil {
		return mover.Summary{}, err
	}
	return m.MoveAll(ctx, cfg.SourceDir, cfg.TargetDir, cfg.CheckInterval)
}

func (d *Daemon) moverFor(cfg *config.Config) (*mover.Mover, error) {
	if d.mover != nil {
		return d.mover, nil
	}
	matcher, err := mover.NewMatcher(patternOf(cfg))
	if err != nil {
		return nil, err
	}
	d.mover = mover.New(
		mover.WithMatcher(matcher),
		mover.WithSleeper(d.sleeper),
		mover.WithLogger(d.base),
	)
	return d.mover, nil
}

func (d *Daemon) stopped(passes int) {
	d.logger.Info("stopped", logging.Int("passes", passes), logging.String(logging.FieldEventType, "daemon_stopped"))
}

func patternOf(cfg *config.Config) string {
	if cfg.Pattern == "" {
		return config.DefaultPattern
	}
	return cfg.Pattern
}
