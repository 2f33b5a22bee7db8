package mover

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"edsmover/internal/clock"
	"edsmover/internal/config"
	"edsmover/internal/fileutil"
	"edsmover/internal/lockprobe"
	"edsmover/internal/logging"
)

// Move describes one completed relocation.
type Move struct {
	Source  string
	Target  string
	Size    int64
	Method  fileutil.Method
	MovedAt time.Time
}

// Recorder is told about every completed move.
type Recorder interface {
	Record(ctx context.Context, move Move) error
}

// Summary counts what a pass did.
type Summary struct {
	Candidates int
	Moved      int
	Failed     int
}

// Mover runs scan passes. The zero value is not usable; call New.
type Mover struct {
	prober   lockprobe.Prober
	sleeper  clock.Sleeper
	matcher  *Matcher
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Mover.
type Option func(*Mover)

func WithProber(p lockprobe.Prober) Option { return func(m *Mover) { m.prober = p } }

func WithSleeper(s clock.Sleeper) Option { return func(m *Mover) { m.sleeper = s } }

func WithMatcher(match *Matcher) Option { return func(m *Mover) { m.matcher = match } }

func WithRecorder(r Recorder) Option { return func(m *Mover) { m.recorder = r } }

func WithLogger(l *slog.Logger) Option { return func(m *Mover) { m.logger = l } }

// New builds a Mover probing the real filesystem, sleeping on the wall clock
// and selecting *.eds files unless overridden.
func New(opts ...Option) *Mover {
	m := &Mover{
		prober:  lockprobe.Default,
		sleeper: clock.Real{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.matcher == nil {
		m.matcher = MustMatcher(config.DefaultPattern)
	}
	m.logger = logging.NewComponentLogger(m.logger, "mover")
	return m
}

// MoveAll runs one pass over sourceDir. interval is the wait between lock
// probes of a busy file. The returned error is non-nil only when the source
// directory cannot be listed or ctx is done; per-file failures are counted in
// the summary.
func (m *Mover) MoveAll(ctx context.Context, sourceDir, targetDir string, interval time.Duration) (Summary, error) {
	var summary Summary

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return summary, fmt.Errorf("list source directory %s: %w", sourceDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !m.matcher.Match(name) {
			continue
		}
		if entry.IsDir() {
			m.logger.Debug("skipping directory matching pattern", logging.String("file", name))
			continue
		}
		summary.Candidates++

		moved, err := m.moveOne(ctx, sourceDir, targetDir, name, interval)
		if err != nil {
			return summary, err
		}
		if moved {
			summary.Moved++
		} else {
			summary.Failed++
		}
	}

	level := slog.LevelDebug
	if summary.Moved > 0 || summary.Failed > 0 {
		level = slog.LevelInfo
	}
	m.logger.Log(ctx, level, "pass complete",
		logging.String("source", sourceDir),
		logging.Int("candidates", summary.Candidates),
		logging.Int("moved", summary.Moved),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

// moveOne reports false for a relocation failure; err is reserved for
// cancellation.
func (m *Mover) moveOne(ctx context.Context, sourceDir, targetDir, name string, interval time.Duration) (bool, error) {
	src := filepath.Join(sourceDir, name)
	targetName := UniqueTargetName(targetDir, name)
	dst := filepath.Join(targetDir, targetName)

	for attempt := 1; m.prober.InUse(src); attempt++ {
		m.logger.Info("file in use, waiting",
			logging.String("file", name),
			logging.Int("attempt", attempt),
			logging.Duration("retry_in", interval),
			logging.String(logging.FieldEventType, "file_in_use"),
		)
		if err := m.sleeper.Sleep(ctx, interval); err != nil {
			return false, err
		}
	}

	var size int64
	if info, err := os.Lstat(src); err == nil {
		size = info.Size()
	}

	method, err := fileutil.Move(src, dst)
	if err != nil {
		logging.ErrorWithContext(m.logger, "file move failed", "file_move_failed",
			logging.String("file", name),
			logging.String("target", targetName),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the source and target directories"),
		)
		return false, nil
	}

	m.logger.Info("file moved",
		logging.String("file", name),
		logging.String("target", targetName),
		logging.String("method", string(method)),
		logging.String(logging.FieldEventType, "file_moved"),
	)

	if m.recorder != nil {
		record := Move{Source: src, Target: dst, Size: size, Method: method, MovedAt: m.now()}
		if err := m.recorder.Record(ctx, record); err != nil {
			logging.WarnWithContext(m.logger, "journal write failed", "journal_write_failed",
				logging.String("file", name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the journal database path and disk space"),
				logging.String(logging.FieldImpact, "move completed but is missing from history"),
			)
		}
	}
	return true, nil
}
